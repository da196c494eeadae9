package database

import (
	"github.com/soumith2105/atomic-ticket-booking/internal/bookings"
	"github.com/soumith2105/atomic-ticket-booking/internal/events"
	"github.com/soumith2105/atomic-ticket-booking/internal/seats"
	"github.com/soumith2105/atomic-ticket-booking/internal/users"
	"github.com/soumith2105/atomic-ticket-booking/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&venues.Venue{},
		&events.Event{},
		&seats.Seat{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
	)
}
