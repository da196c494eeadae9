package invalidation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHook struct {
	mu     sync.Mutex
	calls  []string
	done   chan struct{}
	expect int
	err    error
	closed bool
}

func newRecordingHook(expect int) *recordingHook {
	return &recordingHook{done: make(chan struct{}), expect: expect}
}

func (h *recordingHook) Invalidate(ctx context.Context, eventID string, scope Scope) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, eventID+"/"+string(scope))
	if len(h.calls) == h.expect {
		close(h.done)
	}
	return h.err
}

func (h *recordingHook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return h.err
}

func (h *recordingHook) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for invalidations")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

func TestBroadcasterFansOutAllScopes(t *testing.T) {
	hookA := newRecordingHook(2)
	hookB := newRecordingHook(2)
	b := NewBroadcaster(time.Second, hookA, hookB)

	b.Invalidate("event-1", ScopeEventMeta, ScopeSeatAvailability)

	want := []string{"event-1/EVENT_META", "event-1/SEAT_AVAILABILITY"}
	assert.Equal(t, want, hookA.wait(t))
	assert.Equal(t, want, hookB.wait(t))
}

func TestBroadcasterHookFailureDoesNotStopOthers(t *testing.T) {
	failing := newRecordingHook(1)
	failing.err = errors.New("broker down")
	healthy := newRecordingHook(1)
	b := NewBroadcaster(time.Second, failing, healthy)

	b.Invalidate("event-1", ScopeSeatAvailability)

	assert.Equal(t, []string{"event-1/SEAT_AVAILABILITY"}, failing.wait(t))
	assert.Equal(t, []string{"event-1/SEAT_AVAILABILITY"}, healthy.wait(t))
}

func TestBroadcasterNoScopesIsNoOp(t *testing.T) {
	hook := newRecordingHook(1)
	b := NewBroadcaster(time.Second, hook)

	b.Invalidate("event-1")

	time.Sleep(50 * time.Millisecond)
	hook.mu.Lock()
	defer hook.mu.Unlock()
	assert.Empty(t, hook.calls)
}

func TestBroadcasterCloseReturnsLastError(t *testing.T) {
	failing := newRecordingHook(0)
	failing.err = errors.New("close failed")
	healthy := newRecordingHook(0)
	b := NewBroadcaster(time.Second, healthy, failing)

	err := b.Close()
	assert.Error(t, err)
	assert.True(t, healthy.closed)
	assert.True(t, failing.closed)

	assert.NoError(t, NewBroadcaster(time.Second).Close())
}

func TestNewMessage(t *testing.T) {
	before := time.Now().UTC()
	msg := NewMessage("event-1", ScopeEventMeta)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", msg.ID.String())
	assert.Equal(t, "event-1", msg.EventID)
	assert.Equal(t, ScopeEventMeta, msg.Scope)
	assert.Equal(t, "ticketing-core", msg.Source)
	assert.False(t, msg.OccurredAt.Before(before))

	raw, err := msg.ToJSON()
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, msg.EventID, decoded.EventID)
	assert.Equal(t, msg.Scope, decoded.Scope)
}
