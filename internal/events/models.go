package events

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string      `json:"name" gorm:"not null;size:255"`
	Description    string      `json:"description" gorm:"type:text"`
	VenueID        uuid.UUID   `json:"venue_id" gorm:"type:uuid;not null;index"`
	EventDate      time.Time   `json:"event_date" gorm:"not null"`
	BasePrice      float64     `json:"base_price" gorm:"not null;check:base_price >= 0"`
	MaxCapacity    int         `json:"max_capacity" gorm:"not null;check:max_capacity > 0"`
	AvailableSeats int         `json:"available_seats" gorm:"not null;default:0;check:available_seats >= 0"`
	Status         EventStatus `json:"status" gorm:"type:varchar(20);default:'DRAFT'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CanPurchaseTickets reports whether tickets are sellable at the given
// instant: sales are open, inventory remains, and the event has not started.
func (e *Event) CanPurchaseTickets(now time.Time) bool {
	return e.Status == EventStatusSalesOpen &&
		e.AvailableSeats > 0 &&
		now.Before(e.EventDate)
}

type EventResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	VenueID        string      `json:"venue_id"`
	EventDate      time.Time   `json:"event_date"`
	BasePrice      float64     `json:"base_price"`
	MaxCapacity    int         `json:"max_capacity"`
	AvailableSeats int         `json:"available_seats"`
	Status         EventStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type EventListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=DRAFT PUBLISHED SALES_OPEN SALES_CLOSED COMPLETED CANCELLED"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Helper method to convert Event to EventResponse
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:             e.ID.String(),
		Name:           e.Name,
		Description:    e.Description,
		VenueID:        e.VenueID.String(),
		EventDate:      e.EventDate,
		BasePrice:      e.BasePrice,
		MaxCapacity:    e.MaxCapacity,
		AvailableSeats: e.AvailableSeats,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
