package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campus-booking/internal/domain"
)

// Notifier satisfies the booking service's notification hook.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) BookingRequested(ctx context.Context, booking *domain.Booking, requester *domain.User, resource *domain.Resource) error {
	args := m.Called(ctx, booking, requester, resource)
	return args.Error(0)
}

func (m *Notifier) BookingAutoApproved(ctx context.Context, booking *domain.Booking, requester *domain.User, resource *domain.Resource) error {
	args := m.Called(ctx, booking, requester, resource)
	return args.Error(0)
}

func (m *Notifier) BookingApproved(ctx context.Context, booking *domain.Booking, resource *domain.Resource) error {
	args := m.Called(ctx, booking, resource)
	return args.Error(0)
}

func (m *Notifier) BookingRejected(ctx context.Context, booking *domain.Booking, resource *domain.Resource, reason string) error {
	args := m.Called(ctx, booking, resource, reason)
	return args.Error(0)
}
