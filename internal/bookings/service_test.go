package bookings

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soumith2105/atomic-ticket-booking/internal/events"
	"github.com/soumith2105/atomic-ticket-booking/internal/invalidation"
	"github.com/soumith2105/atomic-ticket-booking/internal/locks"
	"github.com/soumith2105/atomic-ticket-booking/internal/seats"
	"github.com/soumith2105/atomic-ticket-booking/pkg/apperrors"
)

// ---- in-memory store fake ----

// storeState is the durable-store world the fake gateway operates on.
type storeState struct {
	event        *events.Event
	seats        map[uuid.UUID]*seats.Seat
	bookings     map[uuid.UUID]*Booking
	bookingSeats []BookingSeat
}

func (st *storeState) clone() *storeState {
	cp := &storeState{
		seats:    make(map[uuid.UUID]*seats.Seat, len(st.seats)),
		bookings: make(map[uuid.UUID]*Booking, len(st.bookings)),
	}
	if st.event != nil {
		ev := *st.event
		cp.event = &ev
	}
	for id, s := range st.seats {
		sc := *s
		cp.seats[id] = &sc
	}
	for id, b := range st.bookings {
		bc := *b
		cp.bookings[id] = &bc
	}
	cp.bookingSeats = append([]BookingSeat(nil), st.bookingSeats...)
	return cp
}

// fakeRepo implements Repository over storeState. Transact snapshots the
// state before running fn and restores it when fn fails, which mirrors a
// real rollback closely enough for coordinator tests.
type fakeRepo struct {
	state *storeState
}

func newFakeRepo(state *storeState) *fakeRepo {
	return &fakeRepo{state: state}
}

func (r *fakeRepo) Transact(ctx context.Context, fn func(tx TxGateway) error) error {
	snapshot := r.state.clone()
	if err := fn(&fakeGateway{state: r.state}); err != nil {
		*r.state = *snapshot
		return err
	}
	return nil
}

func (r *fakeRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := r.state.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	bc := *b
	return &bc, nil
}

func (r *fakeRepo) GetBookingSeatDetails(ctx context.Context, bookingID uuid.UUID) ([]BookedSeatInfo, error) {
	var infos []BookedSeatInfo
	for _, bs := range r.state.bookingSeats {
		if bs.BookingID != bookingID {
			continue
		}
		seat := r.state.seats[bs.SeatID]
		infos = append(infos, BookedSeatInfo{
			SeatID:  bs.SeatID.String(),
			Section: seat.Section,
			Row:     seat.Row,
			Number:  seat.Number,
			Price:   bs.PriceAtBooking,
		})
	}
	return infos, nil
}

func (r *fakeRepo) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range r.state.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

type fakeGateway struct {
	state *storeState
}

func (g *fakeGateway) FindEventForUpdate(eventID uuid.UUID) (*events.Event, error) {
	if g.state.event == nil || g.state.event.ID != eventID {
		return nil, gorm.ErrRecordNotFound
	}
	ev := *g.state.event
	return &ev, nil
}

func (g *fakeGateway) FindSeatsForUpdate(seatIDs []uuid.UUID) ([]seats.Seat, error) {
	var rows []seats.Seat
	for _, id := range seatIDs {
		if s, ok := g.state.seats[id]; ok {
			rows = append(rows, *s)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ID.String() < rows[j].ID.String()
	})
	return rows, nil
}

func (g *fakeGateway) FindBookingForUpdate(bookingID uuid.UUID) (*Booking, error) {
	b, ok := g.state.bookings[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	bc := *b
	return &bc, nil
}

func (g *fakeGateway) InsertBooking(booking *Booking) error {
	bc := *booking
	g.state.bookings[booking.ID] = &bc
	return nil
}

func (g *fakeGateway) InsertBookingSeats(bookingSeats []BookingSeat) error {
	g.state.bookingSeats = append(g.state.bookingSeats, bookingSeats...)
	return nil
}

func (g *fakeGateway) UpdateBooking(bookingID uuid.UUID, updates map[string]interface{}) error {
	b, ok := g.state.bookings[bookingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for col, val := range updates {
		switch col {
		case "status":
			b.Status = val.(Status)
		case "payment_intent_id":
			intent := val.(string)
			b.PaymentIntentID = &intent
		case "confirmed_at":
			at := val.(time.Time)
			b.ConfirmedAt = &at
		case "cancelled_at":
			at := val.(time.Time)
			b.CancelledAt = &at
		case "cancellation_reason":
			reason := val.(string)
			b.CancellationReason = &reason
		}
	}
	return nil
}

func (g *fakeGateway) UpdateSeatStatusBatch(seatIDs []uuid.UUID, status string) error {
	for _, id := range seatIDs {
		if s, ok := g.state.seats[id]; ok {
			s.Status = status
		}
	}
	return nil
}

func (g *fakeGateway) DeactivateBookingSeats(bookingID uuid.UUID) error {
	for i := range g.state.bookingSeats {
		if g.state.bookingSeats[i].BookingID == bookingID {
			g.state.bookingSeats[i].Active = false
		}
	}
	return nil
}

func (g *fakeGateway) DecrementEventInventory(eventID uuid.UUID, count int) (int64, error) {
	if g.state.event == nil || g.state.event.ID != eventID {
		return 0, nil
	}
	if g.state.event.AvailableSeats < count {
		return 0, nil
	}
	g.state.event.AvailableSeats -= count
	return 1, nil
}

func (g *fakeGateway) IncrementEventInventory(eventID uuid.UUID, count int) error {
	if g.state.event != nil && g.state.event.ID == eventID {
		g.state.event.AvailableSeats += count
	}
	return nil
}

func (g *fakeGateway) FindBookingSeats(bookingID uuid.UUID) ([]BookingSeat, error) {
	var rows []BookingSeat
	for _, bs := range g.state.bookingSeats {
		if bs.BookingID == bookingID {
			rows = append(rows, bs)
		}
	}
	return rows, nil
}

// ---- registry fake ----

type lockEntry struct {
	userID string
	lockID string
}

// fakeRegistry validates against a seat->owner table. failAfter lets a
// test pass pre-validation and then fail the in-transaction re-check.
// Pre-validation runs concurrently, so access is guarded.
type fakeRegistry struct {
	mu        sync.Mutex
	entries   map[string]lockEntry
	failAfter int
	calls     int
	released  []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{entries: map[string]lockEntry{}, failAfter: -1}
}

func (r *fakeRegistry) grant(seatID uuid.UUID, userID uuid.UUID, lockID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[seatID.String()] = lockEntry{userID: userID.String(), lockID: lockID}
}

func (r *fakeRegistry) Validate(ctx context.Context, seatID, userID, lockID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failAfter >= 0 && r.calls > r.failAfter {
		return fmt.Errorf("lock check: %w", locks.ErrInvalidLock)
	}
	e, ok := r.entries[seatID]
	if !ok || e.userID != userID || e.lockID != lockID {
		return fmt.Errorf("lock check: %w", locks.ErrInvalidLock)
	}
	return nil
}

func (r *fakeRegistry) Release(ctx context.Context, seatID, userID, lockID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, seatID)
	r.released = append(r.released, seatID)
	return nil
}

// ---- invalidation fake ----

type fakeHook struct {
	invalidations map[string][]invalidation.Scope
}

func newFakeHook() *fakeHook {
	return &fakeHook{invalidations: map[string][]invalidation.Scope{}}
}

func (h *fakeHook) Invalidate(eventID string, scopes ...invalidation.Scope) {
	h.invalidations[eventID] = append(h.invalidations[eventID], scopes...)
}

// ---- fixtures ----

type fixture struct {
	state    *storeState
	repo     *fakeRepo
	registry *fakeRegistry
	hook     *fakeHook
	service  Service

	userID  uuid.UUID
	eventID uuid.UUID
	venueID uuid.UUID
	seatIDs []uuid.UUID
	lockIDs []string
}

// newFixture builds a SALES_OPEN event with the given number of
// AVAILABLE seats, all locked by the fixture user.
func newFixture(t *testing.T, seatCount int) *fixture {
	t.Helper()

	f := &fixture{
		userID:  uuid.New(),
		eventID: uuid.New(),
		venueID: uuid.New(),
	}

	f.state = &storeState{
		event: &events.Event{
			ID:             f.eventID,
			Name:           "Test Event",
			VenueID:        f.venueID,
			EventDate:      time.Now().Add(24 * time.Hour),
			BasePrice:      50.00,
			MaxCapacity:    seatCount,
			AvailableSeats: seatCount,
			Status:         events.EventStatusSalesOpen,
		},
		seats:    map[uuid.UUID]*seats.Seat{},
		bookings: map[uuid.UUID]*Booking{},
	}

	f.registry = newFakeRegistry()
	for i := 0; i < seatCount; i++ {
		seatID := uuid.New()
		f.state.seats[seatID] = &seats.Seat{
			ID:            seatID,
			VenueID:       f.venueID,
			Section:       "A",
			Row:           "1",
			Number:        i + 1,
			Type:          seats.TypeStandard,
			Status:        seats.StatusAvailable,
			PriceModifier: 1.0,
		}
		lockID := uuid.NewString()
		f.registry.grant(seatID, f.userID, lockID)
		f.seatIDs = append(f.seatIDs, seatID)
		f.lockIDs = append(f.lockIDs, lockID)
	}

	f.repo = newFakeRepo(f.state)
	f.hook = newFakeHook()
	f.service = NewService(f.repo, f.registry, f.hook)
	return f
}

func (f *fixture) createRequest() *CreateBookingRequest {
	seatIDs := make([]string, len(f.seatIDs))
	for i, id := range f.seatIDs {
		seatIDs[i] = id.String()
	}
	return &CreateBookingRequest{
		UserID:  f.userID.String(),
		EventID: f.eventID.String(),
		SeatIDs: seatIDs,
		LockIDs: append([]string(nil), f.lockIDs...),
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.CodeOf(err))
}

// ---- CreateBooking ----

func TestCreateBooking_SoloPurchase(t *testing.T) {
	f := newFixture(t, 1)
	intent := "pi_12345"
	req := f.createRequest()
	req.PaymentIntentID = &intent

	resp, err := f.service.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, string(StatusPending), resp.Status)
	assert.Equal(t, 50.00, resp.TotalPrice)
	require.NotNil(t, resp.PaymentIntentID)
	assert.Equal(t, intent, *resp.PaymentIntentID)

	// Inventory decremented, seat marked BOOKED, live claim recorded
	assert.Equal(t, 0, f.state.event.AvailableSeats)
	assert.Equal(t, seats.StatusBooked, f.state.seats[f.seatIDs[0]].Status)
	require.Len(t, f.state.bookingSeats, 1)
	assert.True(t, f.state.bookingSeats[0].Active)

	// Lock released after commit, availability invalidated
	assert.Contains(t, f.registry.released, f.seatIDs[0].String())
	assert.Contains(t, f.hook.invalidations[f.eventID.String()], invalidation.ScopeSeatAvailability)
}

func TestCreateBooking_PricingWithModifiers(t *testing.T) {
	f := newFixture(t, 2)
	// One standard seat, one premium at 1.5x
	f.state.seats[f.seatIDs[1]].PriceModifier = 1.5

	resp, err := f.service.CreateBooking(context.Background(), f.createRequest())
	require.NoError(t, err)

	// 50.00 + 75.00
	assert.Equal(t, 125.00, resp.TotalPrice)
	require.Len(t, resp.Seats, 2)
}

func TestCreateBooking_InvalidRequests(t *testing.T) {
	f := newFixture(t, 2)

	tests := []struct {
		name   string
		mutate func(req *CreateBookingRequest)
	}{
		{"empty seat set", func(req *CreateBookingRequest) {
			req.SeatIDs = nil
			req.LockIDs = nil
		}},
		{"length mismatch", func(req *CreateBookingRequest) {
			req.LockIDs = req.LockIDs[:1]
		}},
		{"duplicate seats", func(req *CreateBookingRequest) {
			req.SeatIDs[1] = req.SeatIDs[0]
		}},
		{"malformed seat id", func(req *CreateBookingRequest) {
			req.SeatIDs[0] = "not-a-uuid"
		}},
		{"malformed user id", func(req *CreateBookingRequest) {
			req.UserID = "nope"
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := f.createRequest()
			tc.mutate(req)
			_, err := f.service.CreateBooking(context.Background(), req)
			requireCode(t, err, apperrors.CodeInvalidRequest)
		})
	}

	// Nothing reached the store
	assert.Empty(t, f.state.bookings)
	assert.Equal(t, 2, f.state.event.AvailableSeats)
}

func TestCreateBooking_InvalidLocksPreValidation(t *testing.T) {
	f := newFixture(t, 2)
	// Second lock expired out of the registry
	delete(f.registry.entries, f.seatIDs[1].String())

	_, err := f.service.CreateBooking(context.Background(), f.createRequest())
	requireCode(t, err, apperrors.CodeInvalidLocks)

	// Neither seat sold, inventory untouched
	assert.Empty(t, f.state.bookings)
	assert.Equal(t, 2, f.state.event.AvailableSeats)
	assert.Equal(t, seats.StatusAvailable, f.state.seats[f.seatIDs[0]].Status)
	assert.Equal(t, seats.StatusAvailable, f.state.seats[f.seatIDs[1]].Status)
}

func TestCreateBooking_LockExpiresMidCommit(t *testing.T) {
	f := newFixture(t, 2)
	// Pre-validation sees both locks alive; the in-transaction re-check
	// fails when the lease lapses while row locks were being taken.
	f.registry.failAfter = 2

	_, err := f.service.CreateBooking(context.Background(), f.createRequest())
	requireCode(t, err, apperrors.CodeInvalidLocks)

	// Rolled back whole: no booking rows, no seat flips, full inventory
	assert.Empty(t, f.state.bookings)
	assert.Empty(t, f.state.bookingSeats)
	assert.Equal(t, 2, f.state.event.AvailableSeats)
	assert.Equal(t, seats.StatusAvailable, f.state.seats[f.seatIDs[0]].Status)
}

func TestCreateBooking_EventNotFound(t *testing.T) {
	f := newFixture(t, 1)
	req := f.createRequest()
	req.EventID = uuid.NewString()

	_, err := f.service.CreateBooking(context.Background(), req)
	requireCode(t, err, apperrors.CodeEventNotFound)
}

func TestCreateBooking_SalesClosed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ev *events.Event)
	}{
		{"sales not open", func(ev *events.Event) { ev.Status = events.EventStatusPublished }},
		{"event in the past", func(ev *events.Event) { ev.EventDate = time.Now().Add(-time.Hour) }},
		{"no inventory", func(ev *events.Event) { ev.AvailableSeats = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 1)
			tc.mutate(f.state.event)

			_, err := f.service.CreateBooking(context.Background(), f.createRequest())
			requireCode(t, err, apperrors.CodeSalesClosed)
			assert.Empty(t, f.state.bookings)
		})
	}
}

func TestCreateBooking_SeatsNotFound(t *testing.T) {
	f := newFixture(t, 2)
	// One requested seat does not exist in the store
	delete(f.state.seats, f.seatIDs[1])

	_, err := f.service.CreateBooking(context.Background(), f.createRequest())
	requireCode(t, err, apperrors.CodeSeatsNotFound)
}

func TestCreateBooking_SeatAlreadyBooked(t *testing.T) {
	f := newFixture(t, 2)
	// Stale lock: the seat sold through another path
	f.state.seats[f.seatIDs[0]].Status = seats.StatusBooked

	_, err := f.service.CreateBooking(context.Background(), f.createRequest())
	requireCode(t, err, apperrors.CodeSeatsNotAvailable)
	assert.Empty(t, f.state.bookings)
}

func TestCreateBooking_SeatFromWrongVenue(t *testing.T) {
	f := newFixture(t, 2)
	f.state.seats[f.seatIDs[1]].VenueID = uuid.New()

	_, err := f.service.CreateBooking(context.Background(), f.createRequest())
	requireCode(t, err, apperrors.CodeSeatsNotFound)
}

func TestCreateBooking_InventoryDrift(t *testing.T) {
	// Event counter says one seat left but two seat rows are AVAILABLE
	// and validly locked. The conditional decrement is the last guard.
	f := newFixture(t, 2)
	f.state.event.AvailableSeats = 1

	_, err := f.service.CreateBooking(context.Background(), f.createRequest())
	requireCode(t, err, apperrors.CodeSalesClosed)

	// No partial effects survived the rollback
	assert.Empty(t, f.state.bookings)
	assert.Empty(t, f.state.bookingSeats)
	assert.Equal(t, 1, f.state.event.AvailableSeats)
	assert.Equal(t, seats.StatusAvailable, f.state.seats[f.seatIDs[0]].Status)
	assert.Equal(t, seats.StatusAvailable, f.state.seats[f.seatIDs[1]].Status)
}

func TestCreateBooking_ForeignLock(t *testing.T) {
	f := newFixture(t, 1)
	// Someone else holds the lock on this seat
	f.registry.grant(f.seatIDs[0], uuid.New(), uuid.NewString())

	_, err := f.service.CreateBooking(context.Background(), f.createRequest())
	requireCode(t, err, apperrors.CodeInvalidLocks)
	assert.Empty(t, f.state.bookings)
}

// ---- ConfirmBooking ----

func seedBooking(f *fixture, status Status, intent *string) *Booking {
	b := &Booking{
		ID:              uuid.New(),
		UserID:          f.userID,
		EventID:         f.eventID,
		TotalPrice:      50.00,
		Status:          status,
		PaymentIntentID: intent,
		BookingDate:     time.Now(),
	}
	f.state.bookings[b.ID] = b
	return b
}

func TestConfirmBooking_Success(t *testing.T) {
	f := newFixture(t, 1)
	intent := "pi_777"
	b := seedBooking(f, StatusPending, &intent)

	resp, err := f.service.ConfirmBooking(context.Background(), b.ID, &ConfirmBookingRequest{PaymentIntentID: intent})
	require.NoError(t, err)

	assert.Equal(t, string(StatusConfirmed), resp.Status)
	assert.NotNil(t, resp.ConfirmedAt)
	assert.Equal(t, StatusConfirmed, f.state.bookings[b.ID].Status)
}

func TestConfirmBooking_AlreadyConfirmed(t *testing.T) {
	f := newFixture(t, 1)
	intent := "pi_777"
	b := seedBooking(f, StatusConfirmed, &intent)
	confirmedAt := time.Now().Add(-time.Hour)
	f.state.bookings[b.ID].ConfirmedAt = &confirmedAt

	_, err := f.service.ConfirmBooking(context.Background(), b.ID, &ConfirmBookingRequest{PaymentIntentID: intent})
	requireCode(t, err, apperrors.CodeInvalidStatus)

	// Repeat confirmation never mutates
	assert.Equal(t, confirmedAt, *f.state.bookings[b.ID].ConfirmedAt)
}

func TestConfirmBooking_WrongPaymentIntent(t *testing.T) {
	f := newFixture(t, 1)
	intent := "pi_777"
	b := seedBooking(f, StatusPending, &intent)

	_, err := f.service.ConfirmBooking(context.Background(), b.ID, &ConfirmBookingRequest{PaymentIntentID: "pi_999"})
	requireCode(t, err, apperrors.CodeInvalidRequest)
	assert.Equal(t, StatusPending, f.state.bookings[b.ID].Status)
}

func TestConfirmBooking_NotFound(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.service.ConfirmBooking(context.Background(), uuid.New(), &ConfirmBookingRequest{PaymentIntentID: "pi_1"})
	requireCode(t, err, apperrors.CodeBookingNotFound)
}

// ---- CancelBooking ----

func seedBookingWithSeats(f *fixture, status Status) *Booking {
	b := seedBooking(f, status, nil)
	for _, seatID := range f.seatIDs {
		f.state.bookingSeats = append(f.state.bookingSeats, BookingSeat{
			ID:             uuid.New(),
			BookingID:      b.ID,
			SeatID:         seatID,
			PriceAtBooking: 50.00,
			Active:         true,
		})
		f.state.seats[seatID].Status = seats.StatusBooked
	}
	f.state.event.AvailableSeats -= len(f.seatIDs)
	return b
}

func TestCancelBooking_RoundTrip(t *testing.T) {
	f := newFixture(t, 2)
	b := seedBookingWithSeats(f, StatusConfirmed)
	require.Equal(t, 0, f.state.event.AvailableSeats)

	reason := "change of plans"
	resp, err := f.service.CancelBooking(context.Background(), b.ID, &CancelBookingRequest{
		UserID: f.userID.String(),
		Reason: &reason,
	})
	require.NoError(t, err)

	assert.Equal(t, string(StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, reason, *resp.CancellationReason)

	// Both seats back on sale, inventory restored by the seat count
	assert.Equal(t, seats.StatusAvailable, f.state.seats[f.seatIDs[0]].Status)
	assert.Equal(t, seats.StatusAvailable, f.state.seats[f.seatIDs[1]].Status)
	assert.Equal(t, 2, f.state.event.AvailableSeats)

	// Seat claims retired, so the per-seat uniqueness guard admits the
	// next buyer
	for _, bs := range f.state.bookingSeats {
		assert.False(t, bs.Active)
	}

	assert.Contains(t, f.hook.invalidations[f.eventID.String()], invalidation.ScopeSeatAvailability)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	f := newFixture(t, 1)
	b := seedBooking(f, StatusCancelled, nil)

	_, err := f.service.CancelBooking(context.Background(), b.ID, &CancelBookingRequest{UserID: f.userID.String()})
	requireCode(t, err, apperrors.CodeAlreadyCancelled)
}

func TestCancelBooking_RefundedIsTerminal(t *testing.T) {
	f := newFixture(t, 1)
	b := seedBooking(f, StatusRefunded, nil)

	_, err := f.service.CancelBooking(context.Background(), b.ID, &CancelBookingRequest{UserID: f.userID.String()})
	requireCode(t, err, apperrors.CodeInvalidStatus)
}

func TestCancelBooking_ForeignUser(t *testing.T) {
	f := newFixture(t, 1)
	b := seedBookingWithSeats(f, StatusConfirmed)

	_, err := f.service.CancelBooking(context.Background(), b.ID, &CancelBookingRequest{UserID: uuid.NewString()})
	// Other users' bookings look like they do not exist
	requireCode(t, err, apperrors.CodeBookingNotFound)
	assert.Equal(t, StatusConfirmed, f.state.bookings[b.ID].Status)
}

// ---- reads ----

func TestGetBookingByID_NotFound(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.service.GetBookingByID(context.Background(), uuid.New())
	requireCode(t, err, apperrors.CodeBookingNotFound)
}

func TestGetUserBookings_Defaults(t *testing.T) {
	f := newFixture(t, 1)
	seedBooking(f, StatusPending, nil)
	seedBooking(f, StatusConfirmed, nil)

	page, err := f.service.GetUserBookings(context.Background(), f.userID, BookingListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
}
