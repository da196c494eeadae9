package seats

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateSeats(ctx context.Context, seats []Seat) error
	GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error)
	GetSeatsByVenueID(ctx context.Context, venueID uuid.UUID) ([]Seat, error)
	GetAvailableSeatsByVenueID(ctx context.Context, venueID uuid.UUID) ([]Seat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSeats(ctx context.Context, seats []Seat) error {
	return r.db.WithContext(ctx).Create(&seats).Error
}

func (r *repository) GetSeatByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).First(&seat, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *repository) GetSeatsByIDs(ctx context.Context, seatIDs []uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("id IN ?", seatIDs).
		Order("id ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetSeatsByVenueID(ctx context.Context, venueID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("section ASC, row ASC, number ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetAvailableSeatsByVenueID(ctx context.Context, venueID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND status = ?", venueID, StatusAvailable).
		Order("section ASC, row ASC, number ASC").
		Find(&seats).Error
	return seats, err
}
