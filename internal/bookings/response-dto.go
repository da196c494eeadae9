package bookings

import "time"

type BookingResponse struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	EventID            string           `json:"event_id"`
	Status             string           `json:"status"`
	TotalPrice         float64          `json:"total_price"`
	PaymentIntentID    *string          `json:"payment_intent_id,omitempty"`
	BookingDate        time.Time        `json:"booking_date"`
	ConfirmedAt        *time.Time       `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time       `json:"cancelled_at,omitempty"`
	CancellationReason *string          `json:"cancellation_reason,omitempty"`
	Seats              []BookedSeatInfo `json:"seats,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

type BookedSeatInfo struct {
	SeatID  string  `json:"seat_id"`
	Section string  `json:"section"`
	Row     string  `json:"row"`
	Number  int     `json:"number"`
	Price   float64 `json:"price"`
}

type BookingListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED REFUNDED"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
