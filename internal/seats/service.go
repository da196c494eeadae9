package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soumith2105/atomic-ticket-booking/internal/events"
	"github.com/soumith2105/atomic-ticket-booking/internal/shared/constants"
	"github.com/soumith2105/atomic-ticket-booking/pkg/apperrors"
	"github.com/soumith2105/atomic-ticket-booking/pkg/cache"
	"github.com/soumith2105/atomic-ticket-booking/pkg/logger"
)

// LockChecker reports whether a seat currently carries an active hold.
// The registry folds transient errors into a positive answer, so a true
// result may be conservative.
type LockChecker interface {
	IsLocked(ctx context.Context, seatID string) bool
}

type Service interface {
	GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetAvailabilityForEvent(ctx context.Context, eventID uuid.UUID) (*EventAvailabilityResponse, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	eventRepo    events.Repository
	locks        LockChecker
	cacheService cache.Service
}

func NewService(repo Repository, eventRepo events.Repository, locks LockChecker) Service {
	return &service{
		repo:      repo,
		eventRepo: eventRepo,
		locks:     locks,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.cacheService == nil {
		return nil
	}
	return s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	seat, err := s.repo.GetSeatByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewSeatsNotFound(fmt.Sprintf("seat %s not found", id))
		}
		return nil, apperrors.NewSystemError("failed to get seat", err)
	}
	return seat, nil
}

// GetAvailabilityForEvent returns the seats a buyer can currently target for
// an event. Seats under an active lock are filtered out; the answer is
// advisory and the booking commit re-checks everything transactionally.
func (s *service) GetAvailabilityForEvent(ctx context.Context, eventID uuid.UUID) (*EventAvailabilityResponse, error) {
	cacheKey := constants.BuildSeatAvailabilityKey(eventID.String())

	// Try to get from cache first
	var cached EventAvailabilityResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		logger.GetDefault().DebugContext(ctx, "cache hit for seat availability", "key", cacheKey)
		return &cached, nil
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewEventNotFound(eventID.String())
		}
		return nil, apperrors.NewSystemError("failed to get event", err)
	}

	available, err := s.repo.GetAvailableSeatsByVenueID(ctx, event.VenueID)
	if err != nil {
		return nil, apperrors.NewSystemError("failed to list available seats", err)
	}

	// Filter out seats under an active lock. IsLocked fails closed, so a
	// registry outage hides seats rather than double-offering them.
	seatResponses := make([]SeatResponse, 0, len(available))
	for i := range available {
		if s.locks != nil && s.locks.IsLocked(ctx, available[i].ID.String()) {
			continue
		}
		seatResponses = append(seatResponses, available[i].ToResponse(event.BasePrice, false))
	}

	resp := &EventAvailabilityResponse{
		EventID:        event.ID.String(),
		VenueID:        event.VenueID.String(),
		BasePrice:      event.BasePrice,
		AvailableSeats: seatResponses,
	}

	if err := s.setCache(ctx, cacheKey, resp, constants.TTL_SEAT_AVAILABILITY); err != nil {
		logger.GetDefault().DebugContext(ctx, "failed to cache seat availability", "key", cacheKey, "error", err)
	}

	return resp, nil
}
