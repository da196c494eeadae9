package locks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/soumith2105/atomic-ticket-booking/internal/shared/config"
	"github.com/soumith2105/atomic-ticket-booking/pkg/logger"
)

var (
	// ErrAlreadyLocked means another live lease exists for the seat.
	ErrAlreadyLocked = errors.New("seat is locked by another user")

	// ErrInvalidLock means the lease is absent, expired, or owned by
	// someone else.
	ErrInvalidLock = errors.New("lock is invalid or expired")

	// ErrNotOwned means a release was attempted with the wrong owner
	// or token.
	ErrNotOwned = errors.New("lock is not owned by caller")

	// ErrLockNotFound means no entry exists for the seat.
	ErrLockNotFound = errors.New("no lock found for seat")
)

// Registry is the distributed seat lock store. At most one live lease
// exists per seat; all conditional checks run server-side so concurrent
// callers cannot interleave between read and write.
type Registry interface {
	// Acquire takes a fresh lease on the seat. Fails with
	// ErrAlreadyLocked while another live lease exists.
	Acquire(ctx context.Context, seatID, eventID, userID string) (*SeatLock, error)

	// Extend pushes the expiry of a held lease forward by the full TTL
	// and returns the new expiry in epoch milliseconds. Fails with
	// ErrInvalidLock unless user_id and lock_id match a live lease.
	Extend(ctx context.Context, seatID, userID, lockID string) (int64, error)

	// Release deletes a lease when user_id and lock_id match. Fails
	// with ErrNotOwned otherwise.
	Release(ctx context.Context, seatID, userID, lockID string) error

	// Validate checks ownership of a live lease without mutating it.
	Validate(ctx context.Context, seatID, userID, lockID string) error

	// IsLocked reports whether a live lease exists for the seat. Fails
	// closed: a registry error reports the seat as locked.
	IsLocked(ctx context.Context, seatID string) bool

	// Get returns the raw entry for the seat, expired or not. Returns
	// ErrLockNotFound when no entry exists.
	Get(ctx context.Context, seatID string) (*SeatLock, error)

	// ReapExpired sweeps the registry and deletes entries whose expiry
	// has passed. Best effort; returns the number of entries removed.
	ReapExpired(ctx context.Context) (int, error)

	// PreloadScripts loads the Lua scripts into the Redis script cache.
	PreloadScripts(ctx context.Context) error
}

type redisRegistry struct {
	client    *redis.Client
	table     string
	ttl       time.Duration
	opTimeout time.Duration
	scanCount int64
}

// NewRedisRegistry creates a Redis-backed lock registry.
func NewRedisRegistry(client *redis.Client, cfg config.LockConfig) Registry {
	return &redisRegistry{
		client:    client,
		table:     cfg.Table,
		ttl:       cfg.TTL,
		opTimeout: cfg.OperationTimeout,
		scanCount: cfg.ReapScanCount,
	}
}

// key builds the registry key for a seat.
func (r *redisRegistry) key(seatID string) string {
	return r.table + ":" + seatID
}

// decodeScriptReply unpacks the {flag, payload} array the lock scripts
// return.
func decodeScriptReply(result interface{}) (bool, string, error) {
	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return false, "", fmt.Errorf("unexpected result format from lock script")
	}

	flag, ok := resultArray[0].(int64)
	if !ok {
		return false, "", fmt.Errorf("invalid status flag in lock script result")
	}

	payload, _ := resultArray[1].(string)
	return flag == 1, payload, nil
}

func (r *redisRegistry) Acquire(ctx context.Context, seatID, eventID, userID string) (*SeatLock, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	// 128-bit token; the holder must present it for extend and release
	lockID := uuid.NewString()

	result, err := acquireScript.Run(ctx, r.client, []string{r.key(seatID)},
		seatID, eventID, userID, lockID, r.ttl.Milliseconds()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to execute lock acquire script: %w", err)
	}

	ok, payload, err := decodeScriptReply(result)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.GetDefault().LogLockContention(ctx, seatID, payload)
		return nil, ErrAlreadyLocked
	}

	expiresAt, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry in lock script result: %w", err)
	}

	lock := &SeatLock{
		SeatID:    seatID,
		EventID:   eventID,
		UserID:    userID,
		LockID:    lockID,
		CreatedAt: expiresAt - r.ttl.Milliseconds(),
		ExpiresAt: expiresAt,
	}

	logger.GetDefault().LogLockAcquired(ctx, seatID, eventID, userID, r.ttl)
	return lock, nil
}

func (r *redisRegistry) Extend(ctx context.Context, seatID, userID, lockID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	result, err := extendScript.Run(ctx, r.client, []string{r.key(seatID)},
		userID, lockID, r.ttl.Milliseconds()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to execute lock extend script: %w", err)
	}

	ok, payload, err := decodeScriptReply(result)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidLock, payload)
	}

	expiresAt, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry in lock script result: %w", err)
	}

	return expiresAt, nil
}

func (r *redisRegistry) Release(ctx context.Context, seatID, userID, lockID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	result, err := releaseScript.Run(ctx, r.client, []string{r.key(seatID)},
		userID, lockID).Result()
	if err != nil {
		return fmt.Errorf("failed to execute lock release script: %w", err)
	}

	ok, payload, err := decodeScriptReply(result)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotOwned, payload)
	}

	return nil
}

func (r *redisRegistry) Validate(ctx context.Context, seatID, userID, lockID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	result, err := validateScript.Run(ctx, r.client, []string{r.key(seatID)},
		userID, lockID).Result()
	if err != nil {
		return fmt.Errorf("failed to execute lock validate script: %w", err)
	}

	ok, payload, err := decodeScriptReply(result)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLock, payload)
	}

	return nil
}

func (r *redisRegistry) IsLocked(ctx context.Context, seatID string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	result, err := isLockedScript.Run(ctx, r.client, []string{r.key(seatID)}).Result()
	if err != nil {
		// Fail closed: an unreadable registry reports the seat as locked
		logger.GetDefault().WarnContext(ctx, "Lock Status Check Failed",
			"seat_id", seatID,
			"error", err.Error(),
		)
		return true
	}

	flag, ok := result.(int64)
	if !ok {
		return true
	}

	return flag == 1
}

func (r *redisRegistry) Get(ctx context.Context, seatID string) (*SeatLock, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, r.key(seatID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read lock entry: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrLockNotFound
	}

	return lockFromHash(fields)
}

func (r *redisRegistry) ReapExpired(ctx context.Context) (int, error) {
	pattern := r.table + ":*"
	reaped := 0

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, r.scanCount).Result()
		if err != nil {
			return reaped, fmt.Errorf("failed to scan lock registry: %w", err)
		}

		for _, key := range keys {
			result, err := reapScript.Run(ctx, r.client, []string{key}).Result()
			if err != nil {
				// Sweep is best effort; the store TTL reclaims
				// whatever this pass misses
				logger.GetDefault().DebugContext(ctx, "Lock Reap Skipped",
					"key", key,
					"error", err.Error(),
				)
				continue
			}
			if flag, ok := result.(int64); ok && flag == 1 {
				reaped++
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return reaped, nil
}

func (r *redisRegistry) PreloadScripts(ctx context.Context) error {
	scripts := map[string]*redis.Script{
		"acquire":   acquireScript,
		"extend":    extendScript,
		"release":   releaseScript,
		"validate":  validateScript,
		"is_locked": isLockedScript,
		"reap":      reapScript,
	}

	for name, script := range scripts {
		if err := script.Load(ctx, r.client).Err(); err != nil {
			return fmt.Errorf("failed to load %s lock script: %w", name, err)
		}
	}

	return nil
}
