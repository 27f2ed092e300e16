package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campus-booking/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendBookingApproved(ctx context.Context, to *domain.User, booking *domain.Booking, resource *domain.Resource) error {
	args := m.Called(ctx, to, booking, resource)
	return args.Error(0)
}

func (m *EmailService) SendBookingRejected(ctx context.Context, to *domain.User, booking *domain.Booking, resource *domain.Resource, reason string) error {
	args := m.Called(ctx, to, booking, resource, reason)
	return args.Error(0)
}
