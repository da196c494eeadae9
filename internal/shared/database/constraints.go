package database

import (
	"gorm.io/gorm"
)

// constraintStatements are the raw-SQL guards and indexes AutoMigrate
// cannot express. Every statement must be idempotent: they run on each
// boot. Postgres has no IF NOT EXISTS form for ALTER TABLE ADD
// CONSTRAINT, so unique guards are expressed as unique indexes.
var constraintStatements = []string{
	// A physical seat exists once per venue position. "row" is a
	// reserved word and must stay quoted in raw SQL. The model tags
	// already build this index through AutoMigrate; IF NOT EXISTS makes
	// the re-run a no-op.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_venue_seat_position
	 ON seats (venue_id, section, "row", number);`,

	// At most one active booking may claim a seat. Cancellation clears
	// the flag inside the cancel transaction, so the partial index only
	// ever counts live claims.
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_booking_seat
	 ON booking_seats (seat_id) WHERE active;`,

	// Booking lookups by user
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id
	 ON bookings (user_id);`,

	// Resolving the seats of a booking
	`CREATE INDEX IF NOT EXISTS idx_booking_seats_booking_id
	 ON booking_seats (booking_id);`,

	// Reverse lookups from a seat to its bookings
	`CREATE INDEX IF NOT EXISTS idx_booking_seats_seat_id
	 ON booking_seats (seat_id);`,
}

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
