package locks

// Seat locking models (core booking flow)

type AcquireLockRequest struct {
	SeatID  string `json:"seat_id" binding:"required,uuid"`
	EventID string `json:"event_id" binding:"required,uuid"`
	UserID  string `json:"user_id" binding:"required,uuid"`
}

type ExtendLockRequest struct {
	SeatID string `json:"seat_id" binding:"required,uuid"`
	UserID string `json:"user_id" binding:"required,uuid"`
	LockID string `json:"lock_id" binding:"required,uuid"`
}
