package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking defines the main booking structure
type Booking struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID            uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	TotalPrice         float64    `gorm:"not null" json:"total_price"`
	Status             Status     `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'CANCELLED', 'REFUNDED');default:'PENDING'" json:"status"`
	PaymentIntentID    *string    `gorm:"type:varchar(255)" json:"payment_intent_id,omitempty"`
	BookingDate        time.Time  `gorm:"not null" json:"booking_date"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `gorm:"type:varchar(500)" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Relationships
	Seats []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookingSeat pins one seat to a booking at the price it sold for.
// Active mirrors the parent booking's live state; a partial unique
// index on (seat_id) WHERE active enforces one live claim per seat at
// the store level.
type BookingSeat struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID      uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	SeatID         uuid.UUID `gorm:"type:uuid;index;not null" json:"seat_id"`
	PriceAtBooking float64   `gorm:"not null" json:"price_at_booking"`
	Active         bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingSeat
func (BookingSeat) TableName() string {
	return "booking_seats"
}

// Helper methods for booking management
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// ToResponse converts the booking plus its seat details to the API shape
func (b *Booking) ToResponse(seats []BookedSeatInfo) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID.String(),
		UserID:             b.UserID.String(),
		EventID:            b.EventID.String(),
		Status:             b.Status.String(),
		TotalPrice:         b.TotalPrice,
		PaymentIntentID:    b.PaymentIntentID,
		BookingDate:        b.BookingDate,
		ConfirmedAt:        b.ConfirmedAt,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		Seats:              seats,
		CreatedAt:          b.CreatedAt,
	}
}
