package bookings

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soumith2105/atomic-ticket-booking/internal/events"
	"github.com/soumith2105/atomic-ticket-booking/internal/seats"
)

// TxGateway exposes the store operations available inside one booking
// transaction. Every method runs on the same underlying transaction, so
// row locks taken by the ForUpdate reads hold until commit or rollback.
type TxGateway interface {
	// Row-locked reads
	FindEventForUpdate(eventID uuid.UUID) (*events.Event, error)
	FindSeatsForUpdate(seatIDs []uuid.UUID) ([]seats.Seat, error)
	FindBookingForUpdate(bookingID uuid.UUID) (*Booking, error)

	// Writes
	InsertBooking(booking *Booking) error
	InsertBookingSeats(bookingSeats []BookingSeat) error
	UpdateBooking(bookingID uuid.UUID, updates map[string]interface{}) error
	UpdateSeatStatusBatch(seatIDs []uuid.UUID, status string) error
	DeactivateBookingSeats(bookingID uuid.UUID) error

	// Inventory; decrement is conditional and reports rows affected
	DecrementEventInventory(eventID uuid.UUID, count int) (int64, error)
	IncrementEventInventory(eventID uuid.UUID, count int) error

	// Plain reads
	FindBookingSeats(bookingID uuid.UUID) ([]BookingSeat, error)
}

type Repository interface {
	// Coordinated transactional work
	Transact(ctx context.Context, fn func(tx TxGateway) error) error

	// Read operations
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingSeatDetails(ctx context.Context, bookingID uuid.UUID) ([]BookedSeatInfo, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
}

type repository struct {
	db *gorm.DB

	// Upper bound for one whole booking transaction
	txTimeout time.Duration
}

func NewRepository(db *gorm.DB, txTimeout time.Duration) Repository {
	return &repository{db: db, txTimeout: txTimeout}
}

// Transact runs fn inside a single database transaction. Any error from
// fn rolls the whole transaction back and is returned unchanged.
func (r *repository) Transact(ctx context.Context, fn func(tx TxGateway) error) error {
	if r.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.txTimeout)
		defer cancel()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txGateway{tx: tx})
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingSeatDetails joins booking seats with their seat rows for
// response building.
func (r *repository) GetBookingSeatDetails(ctx context.Context, bookingID uuid.UUID) ([]BookedSeatInfo, error) {
	var details []BookedSeatInfo
	err := r.db.WithContext(ctx).
		Table("booking_seats").
		Select("booking_seats.seat_id, seats.section, seats.row, seats.number, booking_seats.price_at_booking AS price").
		Joins("JOIN seats ON seats.id = booking_seats.seat_id").
		Where("booking_seats.booking_id = ?", bookingID).
		Order("seats.section ASC, seats.row ASC, seats.number ASC").
		Scan(&details).Error

	return details, err
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// The service normalizes page/limit before calling
	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)

	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

// txGateway wraps one live gorm transaction.
type txGateway struct {
	tx *gorm.DB
}

func (g *txGateway) FindEventForUpdate(eventID uuid.UUID) (*events.Event, error) {
	var event events.Event
	err := g.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", eventID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// FindSeatsForUpdate locks seat rows in ascending ID order so two
// transactions over overlapping seat sets cannot deadlock.
func (g *txGateway) FindSeatsForUpdate(seatIDs []uuid.UUID) ([]seats.Seat, error) {
	var rows []seats.Seat
	err := g.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", seatIDs).
		Order("id ASC").
		Find(&rows).Error

	return rows, err
}

func (g *txGateway) FindBookingForUpdate(bookingID uuid.UUID) (*Booking, error) {
	var booking Booking
	err := g.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", bookingID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (g *txGateway) InsertBooking(booking *Booking) error {
	return g.tx.Create(booking).Error
}

func (g *txGateway) InsertBookingSeats(bookingSeats []BookingSeat) error {
	if len(bookingSeats) == 0 {
		return nil
	}
	return g.tx.Create(&bookingSeats).Error
}

func (g *txGateway) UpdateBooking(bookingID uuid.UUID, updates map[string]interface{}) error {
	return g.tx.
		Model(&Booking{}).
		Where("id = ?", bookingID).
		Updates(updates).Error
}

func (g *txGateway) UpdateSeatStatusBatch(seatIDs []uuid.UUID, status string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	return g.tx.
		Model(&seats.Seat{}).
		Where("id IN ?", seatIDs).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// DeactivateBookingSeats clears the active flag so the partial unique
// index stops counting these rows against their seats.
func (g *txGateway) DeactivateBookingSeats(bookingID uuid.UUID) error {
	return g.tx.
		Model(&BookingSeat{}).
		Where("booking_id = ?", bookingID).
		Update("active", false).Error
}

// DecrementEventInventory subtracts count from available_seats only when
// enough inventory remains. Zero rows affected means the guard failed.
func (g *txGateway) DecrementEventInventory(eventID uuid.UUID, count int) (int64, error) {
	result := g.tx.
		Model(&events.Event{}).
		Where("id = ? AND available_seats >= ?", eventID, count).
		Update("available_seats", gorm.Expr("available_seats - ?", count))

	return result.RowsAffected, result.Error
}

func (g *txGateway) IncrementEventInventory(eventID uuid.UUID, count int) error {
	return g.tx.
		Model(&events.Event{}).
		Where("id = ?", eventID).
		Update("available_seats", gorm.Expr("available_seats + ?", count)).Error
}

func (g *txGateway) FindBookingSeats(bookingID uuid.UUID) ([]BookingSeat, error) {
	var rows []BookingSeat
	err := g.tx.
		Where("booking_id = ?", bookingID).
		Find(&rows).Error

	return rows, err
}

// Helper function to calculate total pages
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
