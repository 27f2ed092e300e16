package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"campus-booking/internal/domain"
)

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) ListOccupied(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, resourceID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSlot), args.Error(1)
}

func (m *BookingRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status domain.BookingStatus, remarks *string) (bool, error) {
	args := m.Called(ctx, id, status, remarks)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) ListAll(ctx context.Context, status *domain.BookingStatus, params domain.PaginationParams) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *BookingRepository) ListForLabInCharge(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *BookingRepository) ListForStaff(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *BookingRepository) StatsForUser(ctx context.Context, userID uuid.UUID, today time.Time) (*domain.UserBookingStats, error) {
	args := m.Called(ctx, userID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserBookingStats), args.Error(1)
}

func (m *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
