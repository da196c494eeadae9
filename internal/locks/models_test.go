package locks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatLockIsLive(t *testing.T) {
	now := time.Now()
	lock := &SeatLock{ExpiresAt: now.UnixMilli() + 1000}

	assert.True(t, lock.IsLive(now))
	assert.True(t, lock.IsLive(now.Add(999*time.Millisecond)))

	// expires_at <= now counts as absent
	assert.False(t, lock.IsLive(now.Add(1000*time.Millisecond)))
	assert.False(t, lock.IsLive(now.Add(2*time.Second)))
}

func TestSeatLockOwnedBy(t *testing.T) {
	lock := &SeatLock{UserID: "u1", LockID: "l1"}

	assert.True(t, lock.OwnedBy("u1", "l1"))
	assert.False(t, lock.OwnedBy("u1", "l2"))
	assert.False(t, lock.OwnedBy("u2", "l1"))
}

func TestLockFromHash(t *testing.T) {
	fields := map[string]string{
		"seat_id":    "seat-1",
		"event_id":   "event-1",
		"user_id":    "user-1",
		"lock_id":    "lock-1",
		"created_at": "1700000000000",
		"expires_at": "1700000300000",
	}

	lock, err := lockFromHash(fields)
	require.NoError(t, err)

	assert.Equal(t, "seat-1", lock.SeatID)
	assert.Equal(t, "event-1", lock.EventID)
	assert.Equal(t, "user-1", lock.UserID)
	assert.Equal(t, "lock-1", lock.LockID)
	assert.Equal(t, int64(1700000000000), lock.CreatedAt)
	assert.Equal(t, int64(1700000300000), lock.ExpiresAt)
	assert.Equal(t, time.UnixMilli(1700000300000), lock.ExpiresAtTime())
}

func TestLockFromHashRejectsBadTimestamps(t *testing.T) {
	_, err := lockFromHash(map[string]string{
		"created_at": "not-a-number",
		"expires_at": "1700000300000",
	})
	assert.Error(t, err)

	_, err = lockFromHash(map[string]string{
		"created_at": "1700000000000",
		"expires_at": "",
	})
	assert.Error(t, err)
}

func TestDecodeScriptReply(t *testing.T) {
	ok, payload, err := decodeScriptReply([]interface{}{int64(1), "1700000300000"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1700000300000", payload)

	ok, payload, err = decodeScriptReply([]interface{}{int64(0), "not_owner"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "not_owner", payload)

	_, _, err = decodeScriptReply("unexpected")
	assert.Error(t, err)

	_, _, err = decodeScriptReply([]interface{}{int64(1)})
	assert.Error(t, err)
}
