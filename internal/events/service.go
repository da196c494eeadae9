package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soumith2105/atomic-ticket-booking/internal/shared/constants"
	"github.com/soumith2105/atomic-ticket-booking/pkg/apperrors"
	"github.com/soumith2105/atomic-ticket-booking/pkg/cache"
	"github.com/soumith2105/atomic-ticket-booking/pkg/logger"
)

type Service interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// Cache helper methods
func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.cacheService == nil {
		return nil // Skip caching if cache service is not available
	}
	return s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.BuildEventDetailKey(id.String())

	// Try to get from cache first
	var cachedEvent EventResponse
	if err := s.getCache(ctx, cacheKey, &cachedEvent); err == nil {
		return &cachedEvent, nil
	}

	// Cache miss - get from database
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewEventNotFound(id.String())
		}
		return nil, apperrors.NewSystemError("failed to get event", err)
	}

	response := event.ToResponse()

	// Cache the result
	if err := s.setCache(ctx, cacheKey, response, constants.TTL_EVENT_DETAIL); err != nil {
		logger.GetDefault().DebugContext(ctx, "failed to cache event detail", "key", cacheKey, "error", err)
	}

	return &response, nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	eventList, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, apperrors.NewSystemError("failed to list events", err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]EventResponse, len(eventList))
	for i := range eventList {
		responses[i] = eventList[i].ToResponse()
	}

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}
