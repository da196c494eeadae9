package bookings

// CreateBookingRequest commits locked seats into a booking. seat_ids
// and lock_ids are position-matched: lock_ids[i] must be the token
// returned when seat_ids[i] was locked.
type CreateBookingRequest struct {
	UserID          string   `json:"user_id" binding:"required,uuid" validate:"required,uuid"`
	EventID         string   `json:"event_id" binding:"required,uuid" validate:"required,uuid"`
	SeatIDs         []string `json:"seat_ids" binding:"required" validate:"required,min=1,dive,uuid"`
	LockIDs         []string `json:"lock_ids" binding:"required" validate:"required,min=1,dive,uuid"`
	PaymentIntentID *string  `json:"payment_intent_id" binding:"omitempty"`
}

type ConfirmBookingRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type CancelBookingRequest struct {
	UserID string  `json:"user_id" binding:"required,uuid"`
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}
