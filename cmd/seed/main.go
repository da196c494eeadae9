package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/soumith2105/atomic-ticket-booking/internal/events"
	"github.com/soumith2105/atomic-ticket-booking/internal/seats"
	"github.com/soumith2105/atomic-ticket-booking/internal/shared/config"
	"github.com/soumith2105/atomic-ticket-booking/internal/shared/database"
	"github.com/soumith2105/atomic-ticket-booking/internal/users"
	"github.com/soumith2105/atomic-ticket-booking/internal/venues"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting ticketing database seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_seats",
		"bookings",
		"seats",
		"events",
		"venues",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds users, a venue with a seat grid, and sale-ready events
func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	venueID, seatCount, err := s.SeedVenueWithSeats()
	if err != nil {
		return fmt.Errorf("failed to seed venue: %w", err)
	}

	if err := s.SeedEvents(venueID, seatCount); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	return nil
}

// SeedUsers creates a handful of test buyers
func (s *Seeder) SeedUsers() error {
	testUsers := []users.User{
		{ID: uuid.New(), FirstName: "Alice", LastName: "Nguyen", Email: "alice@example.com"},
		{ID: uuid.New(), FirstName: "Bob", LastName: "Martinez", Email: "bob@example.com"},
		{ID: uuid.New(), FirstName: "Carol", LastName: "Okafor", Email: "carol@example.com"},
		{ID: uuid.New(), FirstName: "Dan", LastName: "Kowalski", Email: "dan@example.com"},
	}

	if err := s.db.PostgreSQL.Create(&testUsers).Error; err != nil {
		return err
	}

	fmt.Printf("  Seeded %d users\n", len(testUsers))
	return nil
}

// SeedVenueWithSeats creates one venue and a full seat grid. Sections A
// and B are standard; section P is premium with a higher price modifier.
func (s *Seeder) SeedVenueWithSeats() (uuid.UUID, int, error) {
	venue := venues.Venue{
		ID:      uuid.New(),
		Name:    "Riverside Concert Hall",
		Address: "1 Harbor Way",
	}

	type sectionSpec struct {
		name     string
		rows     []string
		perRow   int
		seatType string
		modifier float64
	}

	sections := []sectionSpec{
		{name: "A", rows: []string{"1", "2", "3", "4"}, perRow: 10, seatType: seats.TypeStandard, modifier: 1.0},
		{name: "B", rows: []string{"1", "2", "3", "4"}, perRow: 10, seatType: seats.TypeStandard, modifier: 1.0},
		{name: "P", rows: []string{"1", "2"}, perRow: 8, seatType: seats.TypePremium, modifier: 1.5},
	}

	var grid []seats.Seat
	for _, sec := range sections {
		for _, row := range sec.rows {
			for n := 1; n <= sec.perRow; n++ {
				grid = append(grid, seats.Seat{
					ID:            uuid.New(),
					VenueID:       venue.ID,
					Section:       sec.name,
					Row:           row,
					Number:        n,
					Type:          sec.seatType,
					Status:        seats.StatusAvailable,
					PriceModifier: sec.modifier,
				})
			}
		}
	}

	venue.Capacity = len(grid)
	if err := s.db.PostgreSQL.Create(&venue).Error; err != nil {
		return uuid.Nil, 0, err
	}
	if err := s.db.PostgreSQL.Create(&grid).Error; err != nil {
		return uuid.Nil, 0, err
	}

	fmt.Printf("  Seeded venue %q with %d seats\n", venue.Name, len(grid))
	return venue.ID, len(grid), nil
}

// SeedEvents creates events in different lifecycle states against the
// seeded venue. The SALES_OPEN event starts with full inventory.
func (s *Seeder) SeedEvents(venueID uuid.UUID, seatCount int) error {
	now := time.Now().UTC()

	testEvents := []events.Event{
		{
			ID:             uuid.New(),
			Name:           "Summer Jazz Night",
			Description:    "An evening of live jazz",
			VenueID:        venueID,
			EventDate:      now.AddDate(0, 1, 0),
			BasePrice:      45.00,
			MaxCapacity:    seatCount,
			AvailableSeats: seatCount,
			Status:         events.EventStatusSalesOpen,
		},
		{
			ID:             uuid.New(),
			Name:           "Chamber Orchestra Gala",
			Description:    "Season opening gala, sales not yet open",
			VenueID:        venueID,
			EventDate:      now.AddDate(0, 2, 0),
			BasePrice:      60.00,
			MaxCapacity:    seatCount,
			AvailableSeats: seatCount,
			Status:         events.EventStatusPublished,
		},
		{
			ID:             uuid.New(),
			Name:           "Spring Recital",
			Description:    "Past event",
			VenueID:        venueID,
			EventDate:      now.AddDate(0, -1, 0),
			BasePrice:      30.00,
			MaxCapacity:    seatCount,
			AvailableSeats: 0,
			Status:         events.EventStatusCompleted,
		},
	}

	if err := s.db.PostgreSQL.Create(&testEvents).Error; err != nil {
		return err
	}

	fmt.Printf("  Seeded %d events\n", len(testEvents))
	return nil
}
