package locks

import (
	"fmt"
	"strconv"
	"time"
)

// SeatLock is a single lease in the lock registry. One entry exists per
// seat_id; timestamps are milliseconds since epoch so the registry store
// can honour expires_at as a TTL attribute.
type SeatLock struct {
	SeatID    string `json:"seat_id"`
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	LockID    string `json:"lock_id"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// IsLive reports whether the lease is still active at the given instant.
// A lease with expires_at <= now counts as absent.
func (l *SeatLock) IsLive(now time.Time) bool {
	return l.ExpiresAt > now.UnixMilli()
}

// OwnedBy reports whether the lease belongs to the given user and token.
func (l *SeatLock) OwnedBy(userID, lockID string) bool {
	return l.UserID == userID && l.LockID == lockID
}

// ExpiresAtTime converts the millisecond expiry to a time.Time.
func (l *SeatLock) ExpiresAtTime() time.Time {
	return time.UnixMilli(l.ExpiresAt)
}

// lockFromHash rebuilds a SeatLock from the registry hash representation.
func lockFromHash(fields map[string]string) (*SeatLock, error) {
	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at in lock entry: %w", err)
	}

	expiresAt, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid expires_at in lock entry: %w", err)
	}

	return &SeatLock{
		SeatID:    fields["seat_id"],
		EventID:   fields["event_id"],
		UserID:    fields["user_id"],
		LockID:    fields["lock_id"],
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}, nil
}
