package seats

import (
	"time"

	"github.com/google/uuid"
)

// Seat statuses
const (
	StatusAvailable   = "AVAILABLE"
	StatusBooked      = "BOOKED"
	StatusMaintenance = "MAINTENANCE"
)

// Seat types
const (
	TypeStandard   = "STANDARD"
	TypePremium    = "PREMIUM"
	TypeAccessible = "ACCESSIBLE"
)

// Seat defines the structure for individual seats
type Seat struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VenueID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_venue_seat_position" json:"venue_id"`
	Section       string    `gorm:"not null;uniqueIndex:idx_venue_seat_position" json:"section"`
	Row           string    `gorm:"not null;uniqueIndex:idx_venue_seat_position" json:"row"`
	Number        int       `gorm:"not null;uniqueIndex:idx_venue_seat_position" json:"number"`
	Type          string    `gorm:"type:varchar(20);default:'STANDARD'" json:"type"`
	Status        string    `gorm:"type:varchar(20);check:status IN ('AVAILABLE', 'BOOKED', 'MAINTENANCE');default:'AVAILABLE'" json:"status"`
	PriceModifier float64   `gorm:"not null;default:1.0;check:price_modifier > 0" json:"price_modifier"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// Helper methods for seat management
func (s *Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}

func (s *Seat) IsBooked() bool {
	return s.Status == StatusBooked
}

// EffectiveStatus folds the advisory lock state into the stored status. A
// locked seat is still AVAILABLE in the store until a booking commits.
func (s *Seat) EffectiveStatus(isLocked bool) string {
	if s.Status == StatusAvailable && isLocked {
		return "LOCKED"
	}
	return s.Status
}

// Price applies this seat's modifier to an event's base price.
func (s *Seat) Price(basePrice float64) float64 {
	return basePrice * s.PriceModifier
}

// Convert Seat to SeatResponse with lock-aware status
func (s *Seat) ToResponse(basePrice float64, isLocked bool) SeatResponse {
	return SeatResponse{
		ID:            s.ID.String(),
		Section:       s.Section,
		Row:           s.Row,
		Number:        s.Number,
		Type:          s.Type,
		Status:        s.EffectiveStatus(isLocked),
		PriceModifier: s.PriceModifier,
		Price:         s.Price(basePrice),
		IsLocked:      isLocked,
	}
}

// SeatResponse for API responses
type SeatResponse struct {
	ID            string  `json:"id"`
	Section       string  `json:"section"`
	Row           string  `json:"row"`
	Number        int     `json:"number"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	PriceModifier float64 `json:"price_modifier"`
	Price         float64 `json:"price"`
	IsLocked      bool    `json:"is_locked"`
}

// Availability models
type EventAvailabilityResponse struct {
	EventID        string         `json:"event_id"`
	VenueID        string         `json:"venue_id"`
	BasePrice      float64        `json:"base_price"`
	AvailableSeats []SeatResponse `json:"available_seats"`
}
