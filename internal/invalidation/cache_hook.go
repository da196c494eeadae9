package invalidation

import (
	"context"
	"fmt"

	"github.com/soumith2105/atomic-ticket-booking/internal/shared/constants"
	"github.com/soumith2105/atomic-ticket-booking/pkg/cache"
)

// CacheHook drops the local Redis projections of an event so the next
// read rebuilds them from the durable store.
type CacheHook struct {
	cache cache.Service
}

func NewCacheHook(cacheService cache.Service) *CacheHook {
	return &CacheHook{cache: cacheService}
}

func (ch *CacheHook) Invalidate(ctx context.Context, eventID string, scope Scope) error {
	var pattern string
	switch scope {
	case ScopeEventMeta:
		pattern = constants.BuildEventMetaPattern(eventID)
	case ScopeSeatAvailability:
		pattern = constants.BuildSeatAvailabilityPattern(eventID)
	default:
		return fmt.Errorf("unknown invalidation scope: %s", scope)
	}

	if err := ch.cache.DeletePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to invalidate %s cache for event %s: %w", scope, eventID, err)
	}

	return nil
}

func (ch *CacheHook) Close() error {
	return nil
}
