package locks

import (
	"context"

	"github.com/soumith2105/atomic-ticket-booking/pkg/logger"
)

type Service interface {
	AcquireLock(ctx context.Context, req *AcquireLockRequest) (*SeatLock, error)
	ExtendLock(ctx context.Context, req *ExtendLockRequest) (int64, error)
	ReleaseLock(ctx context.Context, seatID, userID, lockID string) error
	ValidateLock(ctx context.Context, seatID, userID, lockID string) error
	GetLockStatus(ctx context.Context, seatID string) *LockStatusResponse
}

type service struct {
	registry Registry
}

func NewService(registry Registry) Service {
	return &service{registry: registry}
}

func (s *service) AcquireLock(ctx context.Context, req *AcquireLockRequest) (*SeatLock, error) {
	return s.registry.Acquire(ctx, req.SeatID, req.EventID, req.UserID)
}

func (s *service) ExtendLock(ctx context.Context, req *ExtendLockRequest) (int64, error) {
	return s.registry.Extend(ctx, req.SeatID, req.UserID, req.LockID)
}

func (s *service) ReleaseLock(ctx context.Context, seatID, userID, lockID string) error {
	if err := s.registry.Release(ctx, seatID, userID, lockID); err != nil {
		logger.GetDefault().LogLockReleaseFailed(ctx, seatID, userID, err)
		return err
	}
	return nil
}

func (s *service) ValidateLock(ctx context.Context, seatID, userID, lockID string) error {
	return s.registry.Validate(ctx, seatID, userID, lockID)
}

func (s *service) GetLockStatus(ctx context.Context, seatID string) *LockStatusResponse {
	status := &LockStatusResponse{SeatID: seatID}

	status.Locked = s.registry.IsLocked(ctx, seatID)
	if !status.Locked {
		return status
	}

	// Expiry is informational; a read failure here leaves it blank
	if lock, err := s.registry.Get(ctx, seatID); err == nil && lock != nil {
		status.ExpiresAt = &lock.ExpiresAt
	}

	return status
}
