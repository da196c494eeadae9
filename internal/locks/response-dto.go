package locks

// LockGrant is what a successful acquire or extend hands back to the
// caller: the token to present later and the lease expiry in epoch
// milliseconds.
type LockGrant struct {
	LockID    string `json:"lock_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// LockStatusResponse answers "is this seat locked right now".
type LockStatusResponse struct {
	SeatID    string `json:"seat_id"`
	Locked    bool   `json:"locked"`
	ExpiresAt *int64 `json:"expires_at,omitempty"`
}

// LockValidationResponse reports whether a lease is live and owned by
// the presented user and token.
type LockValidationResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
