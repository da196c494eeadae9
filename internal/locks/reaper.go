package locks

import (
	"context"
	"time"

	"github.com/soumith2105/atomic-ticket-booking/pkg/logger"
)

// Reaper periodically sweeps expired lock entries out of the registry.
// The store TTL already reclaims entries on its own; the sweep keeps the
// keyspace tidy when that reclamation lags.
type Reaper struct {
	registry Registry
	interval time.Duration
	done     chan struct{}
}

// NewReaper creates a reaper that sweeps at the given interval.
func NewReaper(registry Registry, interval time.Duration) *Reaper {
	return &Reaper{
		registry: registry,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (rp *Reaper) Start(ctx context.Context) {
	logger.GetDefault().InfoContext(ctx, "Starting lock reaper",
		"interval", rp.interval.String(),
	)

	go rp.run(ctx)
}

// Stop stops the sweep loop.
func (rp *Reaper) Stop() {
	close(rp.done)
	logger.GetDefault().Info("Lock reaper stopped")
}

func (rp *Reaper) run(ctx context.Context) {
	ticker := time.NewTicker(rp.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rp.sweep(ctx)
		case <-rp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (rp *Reaper) sweep(ctx context.Context) {
	// Cap the sweep so a slow pass never overlaps the next tick
	sweepCtx, cancel := context.WithTimeout(ctx, rp.interval)
	defer cancel()

	reaped, err := rp.registry.ReapExpired(sweepCtx)
	if err != nil {
		logger.GetDefault().WarnContext(ctx, "Lock Reap Sweep Failed",
			"reaped", reaped,
			"error", err.Error(),
		)
		return
	}

	if reaped > 0 {
		logger.GetDefault().InfoContext(ctx, "Reaped expired seat locks",
			"count", reaped,
		)
	}
}
