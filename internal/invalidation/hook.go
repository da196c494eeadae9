package invalidation

import (
	"context"
	"time"

	"github.com/soumith2105/atomic-ticket-booking/pkg/logger"
)

// Scope names which cached projection of an event must be refreshed.
type Scope string

const (
	// ScopeEventMeta covers cached event details and listings.
	ScopeEventMeta Scope = "EVENT_META"

	// ScopeSeatAvailability covers cached per-event seat availability.
	ScopeSeatAvailability Scope = "SEAT_AVAILABILITY"
)

// Hook receives invalidation signals after booking state changes.
// Implementations must tolerate being called for events they know
// nothing about.
type Hook interface {
	Invalidate(ctx context.Context, eventID string, scope Scope) error
	Close() error
}

// Broadcaster fans an invalidation out to all registered hooks without
// blocking the caller. Delivery is best effort: failures are logged and
// never propagate, stale caches age out via their TTLs anyway.
type Broadcaster struct {
	hooks   []Hook
	timeout time.Duration
}

func NewBroadcaster(timeout time.Duration, hooks ...Hook) *Broadcaster {
	return &Broadcaster{
		hooks:   hooks,
		timeout: timeout,
	}
}

// Invalidate dispatches the given scopes for one event to every hook.
// Returns immediately; the work runs on a detached context so it
// survives cancellation of the request that triggered it.
func (b *Broadcaster) Invalidate(eventID string, scopes ...Scope) {
	if len(b.hooks) == 0 || len(scopes) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		for _, hook := range b.hooks {
			for _, scope := range scopes {
				if err := hook.Invalidate(ctx, eventID, scope); err != nil {
					logger.GetDefault().WarnContext(ctx, "Cache Invalidation Failed",
						"event_id", eventID,
						"scope", string(scope),
						"error", err.Error(),
					)
				}
			}
		}
	}()
}

// Close shuts down all hooks. Errors are logged, the last one is
// returned.
func (b *Broadcaster) Close() error {
	var lastErr error
	for _, hook := range b.hooks {
		if err := hook.Close(); err != nil {
			logger.GetDefault().Error("Failed to close invalidation hook", "error", err.Error())
			lastErr = err
		}
	}
	return lastErr
}
