package seats

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soumith2105/atomic-ticket-booking/internal/events"
	"github.com/soumith2105/atomic-ticket-booking/pkg/apperrors"
)

type fakeSeatRepo struct {
	seats []Seat
	err   error
}

func (r *fakeSeatRepo) CreateSeats(ctx context.Context, seats []Seat) error { return r.err }

func (r *fakeSeatRepo) GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.seats {
		if r.seats[i].ID == id {
			return &r.seats[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSeatRepo) GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error) {
	return r.seats, r.err
}

func (r *fakeSeatRepo) GetSeatsByVenueID(ctx context.Context, venueID uuid.UUID) ([]Seat, error) {
	return r.seats, r.err
}

func (r *fakeSeatRepo) GetAvailableSeatsByVenueID(ctx context.Context, venueID uuid.UUID) ([]Seat, error) {
	if r.err != nil {
		return nil, r.err
	}
	var available []Seat
	for _, s := range r.seats {
		if s.Status == StatusAvailable {
			available = append(available, s)
		}
	}
	return available, nil
}

type fakeEventRepo struct {
	event *events.Event
	err   error
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.event, nil
}

func (r *fakeEventRepo) GetAll(ctx context.Context, query events.EventListQuery) ([]events.Event, int64, error) {
	return nil, 0, nil
}

func (r *fakeEventRepo) GetByStatus(ctx context.Context, status events.EventStatus) ([]events.Event, error) {
	return nil, nil
}

type fakeLockChecker struct {
	locked map[string]bool
}

func (c *fakeLockChecker) IsLocked(ctx context.Context, seatID string) bool {
	return c.locked[seatID]
}

func TestGetAvailabilityFiltersLockedSeats(t *testing.T) {
	venueID := uuid.New()
	event := &events.Event{ID: uuid.New(), VenueID: venueID, BasePrice: 40.00}

	free := Seat{ID: uuid.New(), VenueID: venueID, Section: "A", Row: "1", Number: 1,
		Status: StatusAvailable, PriceModifier: 1.0}
	held := Seat{ID: uuid.New(), VenueID: venueID, Section: "A", Row: "1", Number: 2,
		Status: StatusAvailable, PriceModifier: 1.0}
	booked := Seat{ID: uuid.New(), VenueID: venueID, Section: "A", Row: "1", Number: 3,
		Status: StatusBooked, PriceModifier: 1.0}
	premium := Seat{ID: uuid.New(), VenueID: venueID, Section: "P", Row: "1", Number: 1,
		Status: StatusAvailable, PriceModifier: 1.5}

	svc := NewService(
		&fakeSeatRepo{seats: []Seat{free, held, booked, premium}},
		&fakeEventRepo{event: event},
		&fakeLockChecker{locked: map[string]bool{held.ID.String(): true}},
	)

	resp, err := svc.GetAvailabilityForEvent(context.Background(), event.ID)
	require.NoError(t, err)

	assert.Equal(t, event.ID.String(), resp.EventID)
	assert.Equal(t, venueID.String(), resp.VenueID)
	assert.Equal(t, 40.00, resp.BasePrice)

	// Held and booked seats are hidden from buyers
	require.Len(t, resp.AvailableSeats, 2)
	assert.Equal(t, free.ID.String(), resp.AvailableSeats[0].ID)
	assert.Equal(t, 40.00, resp.AvailableSeats[0].Price)
	assert.Equal(t, premium.ID.String(), resp.AvailableSeats[1].ID)
	assert.Equal(t, 60.00, resp.AvailableSeats[1].Price)
}

func TestGetAvailabilityEventNotFound(t *testing.T) {
	svc := NewService(
		&fakeSeatRepo{},
		&fakeEventRepo{err: gorm.ErrRecordNotFound},
		&fakeLockChecker{},
	)

	_, err := svc.GetAvailabilityForEvent(context.Background(), uuid.New())
	assert.Equal(t, apperrors.CodeEventNotFound, apperrors.CodeOf(err))
}

func TestGetSeatByIDNotFound(t *testing.T) {
	svc := NewService(&fakeSeatRepo{}, &fakeEventRepo{}, &fakeLockChecker{})

	_, err := svc.GetSeatByID(context.Background(), uuid.New())
	assert.Equal(t, apperrors.CodeSeatsNotFound, apperrors.CodeOf(err))
}

func TestSeatEffectiveStatus(t *testing.T) {
	seat := Seat{Status: StatusAvailable}
	assert.Equal(t, "LOCKED", seat.EffectiveStatus(true))
	assert.Equal(t, StatusAvailable, seat.EffectiveStatus(false))

	seat.Status = StatusBooked
	assert.Equal(t, StatusBooked, seat.EffectiveStatus(true))
}
