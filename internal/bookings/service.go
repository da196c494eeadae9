package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/soumith2105/atomic-ticket-booking/internal/invalidation"
	"github.com/soumith2105/atomic-ticket-booking/internal/locks"
	"github.com/soumith2105/atomic-ticket-booking/internal/seats"
	"github.com/soumith2105/atomic-ticket-booking/pkg/apperrors"
	"github.com/soumith2105/atomic-ticket-booking/pkg/logger"
)

// LockRegistry is the slice of the lock registry the coordinator needs.
type LockRegistry interface {
	Validate(ctx context.Context, seatID, userID, lockID string) error
	Release(ctx context.Context, seatID, userID, lockID string) error
}

// InvalidationHook receives post-commit cache invalidation signals.
type InvalidationHook interface {
	Invalidate(eventID string, scopes ...invalidation.Scope)
}

type Service interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID uuid.UUID, req *ConfirmBookingRequest) (*BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, req *CancelBookingRequest) (*BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
}

type service struct {
	repo     Repository
	registry LockRegistry
	hook     InvalidationHook
}

func NewService(repo Repository, registry LockRegistry, hook InvalidationHook) Service {
	return &service{
		repo:     repo,
		registry: registry,
		hook:     hook,
	}
}

// seatLockPair carries one seat and the lock token presented for it.
type seatLockPair struct {
	SeatID uuid.UUID
	LockID string
}

// CreateBooking commits locked seats into a PENDING booking. The caller
// must hold a live lock on every requested seat; the booking succeeds
// for all seats or none.
func (s *service) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error) {
	userID, eventID, pairs, err := s.validateCreateRequest(req)
	if err != nil {
		return nil, err
	}

	// Check every lock before touching the store; no point paying for
	// row locks when the caller's leases already lapsed
	if err := s.validateLocks(ctx, userID.String(), pairs); err != nil {
		return nil, err
	}

	seatIDs := make([]uuid.UUID, len(pairs))
	for i := range pairs {
		seatIDs[i] = pairs[i].SeatID
	}

	var (
		booking   *Booking
		seatInfos []BookedSeatInfo
	)

	now := time.Now()
	txErr := s.repo.Transact(ctx, func(tx TxGateway) error {
		event, err := tx.FindEventForUpdate(eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewEventNotFound(eventID.String())
			}
			return apperrors.NewSystemError("failed to load event", err)
		}

		if !event.CanPurchaseTickets(now) {
			return apperrors.NewSalesClosed(eventID.String())
		}

		seatRows, err := tx.FindSeatsForUpdate(seatIDs)
		if err != nil {
			return apperrors.NewSystemError("failed to load seats", err)
		}
		if len(seatRows) != len(seatIDs) {
			return apperrors.NewSeatsNotFound(missingSeatsMessage(seatIDs, seatRows))
		}

		for i := range seatRows {
			seat := &seatRows[i]
			if seat.VenueID != event.VenueID {
				return apperrors.NewSeatsNotFound(fmt.Sprintf("seat %s does not belong to the event venue", seat.ID))
			}
			if !seat.IsAvailable() {
				return apperrors.NewSeatsNotAvailable(fmt.Sprintf("seat %s is not available", seat.ID))
			}
		}

		// Re-validate inside the transaction: a lease may have expired
		// or changed hands while we waited on the row locks. Same
		// concurrent fan-out as the pre-check, so the row locks are not
		// held across serial registry round trips
		if err := s.validateLocks(ctx, userID.String(), pairs); err != nil {
			return err
		}

		// Banker's rounding once over the sum, never per seat
		var sum float64
		for i := range seatRows {
			sum += seatRows[i].Price(event.BasePrice)
		}
		total := math.RoundToEven(sum*100) / 100

		booking = &Booking{
			ID:              uuid.New(),
			UserID:          userID,
			EventID:         eventID,
			TotalPrice:      total,
			Status:          StatusPending,
			PaymentIntentID: req.PaymentIntentID,
			BookingDate:     now,
		}
		if err := tx.InsertBooking(booking); err != nil {
			return apperrors.NewSystemError("failed to insert booking", err)
		}

		bookingSeats := make([]BookingSeat, len(seatRows))
		seatInfos = make([]BookedSeatInfo, len(seatRows))
		for i := range seatRows {
			seat := &seatRows[i]
			price := seat.Price(event.BasePrice)
			bookingSeats[i] = BookingSeat{
				ID:             uuid.New(),
				BookingID:      booking.ID,
				SeatID:         seat.ID,
				PriceAtBooking: price,
				Active:         true,
			}
			seatInfos[i] = BookedSeatInfo{
				SeatID:  seat.ID.String(),
				Section: seat.Section,
				Row:     seat.Row,
				Number:  seat.Number,
				Price:   price,
			}
		}
		if err := tx.InsertBookingSeats(bookingSeats); err != nil {
			return apperrors.NewSystemError("failed to insert booking seats", err)
		}

		rows, err := tx.DecrementEventInventory(eventID, len(seatRows))
		if err != nil {
			return apperrors.NewSystemError("failed to decrement event inventory", err)
		}
		if rows == 0 {
			// Every prior check passed yet no inventory remained: the
			// event capacity has drifted from the seat set
			logger.GetDefault().LogInventoryConflict(ctx, eventID.String(), len(seatRows))
			return apperrors.NewSalesClosed(eventID.String())
		}

		if err := tx.UpdateSeatStatusBatch(seatIDs, seats.StatusBooked); err != nil {
			return apperrors.NewSystemError("failed to mark seats booked", err)
		}

		return nil
	})
	if txErr != nil {
		return nil, asDomainError(txErr, "booking transaction failed")
	}

	// Committed. Locks and caches are cleanup from here on, never
	// failures: the registry TTL and cache TTLs cover whatever slips
	s.releaseLocks(ctx, userID.String(), pairs)
	s.hook.Invalidate(eventID.String(), invalidation.ScopeEventMeta, invalidation.ScopeSeatAvailability)

	logger.GetDefault().LogBookingCreated(ctx, booking.ID.String(), eventID.String(), userID.String(), len(seatInfos))

	return booking.ToResponse(seatInfos), nil
}

// ConfirmBooking moves a PENDING booking to CONFIRMED once payment
// settles. Confirming anything but a PENDING booking is INVALID_STATUS,
// so repeat confirmations never mutate.
func (s *service) ConfirmBooking(ctx context.Context, bookingID uuid.UUID, req *ConfirmBookingRequest) (*BookingResponse, error) {
	var booking *Booking

	now := time.Now()
	txErr := s.repo.Transact(ctx, func(tx TxGateway) error {
		var err error
		booking, err = tx.FindBookingForUpdate(bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewBookingNotFound(bookingID.String())
			}
			return apperrors.NewSystemError("failed to load booking", err)
		}

		if booking.Status != StatusPending {
			return apperrors.NewInvalidStatus(fmt.Sprintf(
				"booking %s is %s, only pending bookings can be confirmed", bookingID, booking.Status))
		}

		if booking.PaymentIntentID != nil && *booking.PaymentIntentID != req.PaymentIntentID {
			return apperrors.NewInvalidRequest("payment_intent_id does not match the booking")
		}

		updates := map[string]interface{}{
			"status":            StatusConfirmed,
			"payment_intent_id": req.PaymentIntentID,
			"confirmed_at":      now,
			"updated_at":        now,
		}
		if err := tx.UpdateBooking(bookingID, updates); err != nil {
			return apperrors.NewSystemError("failed to confirm booking", err)
		}

		booking.Status = StatusConfirmed
		booking.PaymentIntentID = &req.PaymentIntentID
		booking.ConfirmedAt = &now
		return nil
	})
	if txErr != nil {
		return nil, asDomainError(txErr, "confirm transaction failed")
	}

	logger.GetDefault().LogBookingConfirmed(ctx, bookingID.String(), booking.UserID.String())

	return booking.ToResponse(s.seatDetails(ctx, bookingID)), nil
}

// CancelBooking releases a booking's seats and restores event inventory
// in one transaction. Repeat cancellations return ALREADY_CANCELLED
// without touching anything.
func (s *service) CancelBooking(ctx context.Context, bookingID uuid.UUID, req *CancelBookingRequest) (*BookingResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperrors.NewInvalidRequest("user_id must be a valid UUID")
	}

	var booking *Booking

	now := time.Now()
	txErr := s.repo.Transact(ctx, func(tx TxGateway) error {
		var err error
		booking, err = tx.FindBookingForUpdate(bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewBookingNotFound(bookingID.String())
			}
			return apperrors.NewSystemError("failed to load booking", err)
		}

		// Do not reveal other users' bookings
		if booking.UserID != userID {
			return apperrors.NewBookingNotFound(bookingID.String())
		}

		if booking.Status == StatusCancelled {
			return apperrors.NewAlreadyCancelled(bookingID.String())
		}
		if !booking.Status.CanTransitionTo(StatusCancelled) {
			return apperrors.NewInvalidStatus(fmt.Sprintf(
				"booking %s is %s and cannot be cancelled", bookingID, booking.Status))
		}

		bookingSeats, err := tx.FindBookingSeats(bookingID)
		if err != nil {
			return apperrors.NewSystemError("failed to load booking seats", err)
		}

		seatIDs := make([]uuid.UUID, len(bookingSeats))
		for i := range bookingSeats {
			seatIDs[i] = bookingSeats[i].SeatID
		}

		if err := tx.UpdateSeatStatusBatch(seatIDs, seats.StatusAvailable); err != nil {
			return apperrors.NewSystemError("failed to release seats", err)
		}

		// Retire the seat claims so the one-active-booking-per-seat
		// guard admits the next buyer
		if err := tx.DeactivateBookingSeats(bookingID); err != nil {
			return apperrors.NewSystemError("failed to retire seat claims", err)
		}

		if err := tx.IncrementEventInventory(booking.EventID, len(seatIDs)); err != nil {
			return apperrors.NewSystemError("failed to restore event inventory", err)
		}

		updates := map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": now,
			"updated_at":   now,
		}
		if req.Reason != nil {
			updates["cancellation_reason"] = *req.Reason
		}
		if err := tx.UpdateBooking(bookingID, updates); err != nil {
			return apperrors.NewSystemError("failed to cancel booking", err)
		}

		booking.Status = StatusCancelled
		booking.CancelledAt = &now
		booking.CancellationReason = req.Reason
		return nil
	})
	if txErr != nil {
		return nil, asDomainError(txErr, "cancel transaction failed")
	}

	logger.GetDefault().LogBookingCancelled(ctx, bookingID.String(), booking.EventID.String(), userID.String())
	s.hook.Invalidate(booking.EventID.String(), invalidation.ScopeEventMeta, invalidation.ScopeSeatAvailability)

	return booking.ToResponse(s.seatDetails(ctx, bookingID)), nil
}

func (s *service) GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewBookingNotFound(bookingID.String())
		}
		return nil, apperrors.NewSystemError("failed to load booking", err)
	}

	return booking.ToResponse(s.seatDetails(ctx, bookingID)), nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.GetUserBookings(ctx, userID, query)
	if err != nil {
		return nil, apperrors.NewSystemError("failed to load bookings", err)
	}

	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *bookings[i].ToResponse(nil)
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

// validateCreateRequest normalizes the request into parsed IDs and
// seat/lock pairs sorted by seat ID. The sort keeps row lock
// acquisition order identical across concurrent requests.
func (s *service) validateCreateRequest(req *CreateBookingRequest) (uuid.UUID, uuid.UUID, []seatLockPair, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, apperrors.NewInvalidRequest("user_id must be a valid UUID")
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return uuid.Nil, uuid.Nil, nil, apperrors.NewInvalidRequest("event_id must be a valid UUID")
	}

	if len(req.SeatIDs) == 0 {
		return uuid.Nil, uuid.Nil, nil, apperrors.NewInvalidRequest("at least one seat is required")
	}
	if len(req.LockIDs) != len(req.SeatIDs) {
		return uuid.Nil, uuid.Nil, nil, apperrors.NewInvalidRequest("seat_ids and lock_ids must have the same length")
	}

	pairs := make([]seatLockPair, 0, len(req.SeatIDs))
	seen := make(map[uuid.UUID]struct{}, len(req.SeatIDs))
	for i, raw := range req.SeatIDs {
		seatID, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, uuid.Nil, nil, apperrors.NewInvalidRequest(fmt.Sprintf("seat_ids[%d] must be a valid UUID", i))
		}
		if _, dup := seen[seatID]; dup {
			return uuid.Nil, uuid.Nil, nil, apperrors.NewInvalidRequest(fmt.Sprintf("duplicate seat %s in request", seatID))
		}
		seen[seatID] = struct{}{}

		if _, err := uuid.Parse(req.LockIDs[i]); err != nil {
			return uuid.Nil, uuid.Nil, nil, apperrors.NewInvalidRequest(fmt.Sprintf("lock_ids[%d] must be a valid UUID", i))
		}

		pairs = append(pairs, seatLockPair{SeatID: seatID, LockID: req.LockIDs[i]})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].SeatID.String() < pairs[j].SeatID.String()
	})

	return userID, eventID, pairs, nil
}

// validateLocks checks every lease concurrently; registry round trips
// dominate the latency here, not CPU.
func (s *service) validateLocks(ctx context.Context, userID string, pairs []seatLockPair) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			if err := s.registry.Validate(gctx, pair.SeatID.String(), userID, pair.LockID); err != nil {
				return fmt.Errorf("seat %s: %w", pair.SeatID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, locks.ErrInvalidLock) {
			return apperrors.Wrap(apperrors.CodeInvalidLocks, "one or more seat locks are invalid or expired", err)
		}
		return apperrors.NewSystemError("failed to validate seat locks", err)
	}

	return nil
}

// releaseLocks is post-commit cleanup; the registry TTL reclaims
// anything a failed release leaves behind.
func (s *service) releaseLocks(ctx context.Context, userID string, pairs []seatLockPair) {
	for _, pair := range pairs {
		if err := s.registry.Release(ctx, pair.SeatID.String(), userID, pair.LockID); err != nil {
			logger.GetDefault().LogLockReleaseFailed(ctx, pair.SeatID.String(), userID, err)
		}
	}
}

// seatDetails loads seat rows for response building. The booking itself
// is already settled, so a failed read only trims the response.
func (s *service) seatDetails(ctx context.Context, bookingID uuid.UUID) []BookedSeatInfo {
	details, err := s.repo.GetBookingSeatDetails(ctx, bookingID)
	if err != nil {
		logger.GetDefault().DebugContext(ctx, "Failed to load booking seat details",
			"booking_id", bookingID.String(),
			"error", err.Error(),
		)
		return nil
	}
	return details
}

// asDomainError passes typed domain errors through unchanged and wraps
// anything else as SYSTEM_ERROR.
func asDomainError(err error, message string) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewSystemError(message, err)
}

func missingSeatsMessage(requested []uuid.UUID, found []seats.Seat) string {
	present := make(map[uuid.UUID]struct{}, len(found))
	for i := range found {
		present[found[i].ID] = struct{}{}
	}

	var missing []string
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			missing = append(missing, id.String())
		}
	}

	return fmt.Sprintf("seats not found: %s", strings.Join(missing, ", "))
}
