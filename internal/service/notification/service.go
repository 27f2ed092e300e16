package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
	"campus-booking/internal/service/email"
)

// Service stores in-app notifications and routes booking events to the right
// recipients. Decision events additionally go out by email.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.PaginatedResponse[domain.Notification], error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	BookingRequested(ctx context.Context, booking *domain.Booking, requester *domain.User, resource *domain.Resource) error
	BookingAutoApproved(ctx context.Context, booking *domain.Booking, requester *domain.User, resource *domain.Resource) error
	BookingApproved(ctx context.Context, booking *domain.Booking, resource *domain.Resource) error
	BookingRejected(ctx context.Context, booking *domain.Booking, resource *domain.Resource, reason string) error
	MeetingScheduled(ctx context.Context, meeting *domain.MeetingSchedule, organizer *domain.User) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	email     email.Service
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, emailService email.Service) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		email:     emailService,
	}
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return nil, err
	}

	resp := domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total)
	return &resp, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// BookingRequested routes a pending request to its approver: the in-charge
// for lab bookings, the assigned staff member for meetings, and every admin
// otherwise.
func (s *service) BookingRequested(ctx context.Context, booking *domain.Booking, requester *domain.User, resource *domain.Resource) error {
	message := fmt.Sprintf("New Request: %s is requesting access to %s on %s.",
		requester.FullName, resource.Name, booking.BookingDate.Format("2006-01-02"))

	recipients, err := s.approversFor(ctx, booking, resource)
	if err != nil {
		return err
	}

	for _, recipient := range recipients {
		if err := s.deliver(ctx, recipient, domain.NotifBookingRequested, message, booking); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) BookingAutoApproved(ctx context.Context, booking *domain.Booking, requester *domain.User, resource *domain.Resource) error {
	message := fmt.Sprintf("Booking for %s has been AUTO-APPROVED.", resource.Name)
	return s.deliver(ctx, requester.ID, domain.NotifBookingAutoApproved, message, booking)
}

func (s *service) BookingApproved(ctx context.Context, booking *domain.Booking, resource *domain.Resource) error {
	message := fmt.Sprintf("Access to %s has been GRANTED.", resource.Name)
	if err := s.deliver(ctx, booking.UserID, domain.NotifBookingApproved, message, booking); err != nil {
		return err
	}

	requester, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil || requester == nil {
		return err
	}
	return s.email.SendBookingApproved(ctx, requester, booking, resource)
}

func (s *service) BookingRejected(ctx context.Context, booking *domain.Booking, resource *domain.Resource, reason string) error {
	message := fmt.Sprintf("Access to %s DENIED: %s", resource.Name, reason)
	if err := s.deliver(ctx, booking.UserID, domain.NotifBookingRejected, message, booking); err != nil {
		return err
	}

	requester, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil || requester == nil {
		return err
	}
	return s.email.SendBookingRejected(ctx, requester, booking, resource, reason)
}

func (s *service) MeetingScheduled(ctx context.Context, meeting *domain.MeetingSchedule, organizer *domain.User) error {
	message := fmt.Sprintf("%s scheduled a meeting: %s on %s.",
		organizer.FullName, meeting.Title, meeting.MeetingDate.Format("2006-01-02"))

	payload, _ := json.Marshal(map[string]string{"meeting_id": meeting.ID.String()})

	for _, participantID := range meeting.Participants {
		if participantID == organizer.ID {
			continue
		}
		notif := &domain.Notification{
			ID:      uuid.New(),
			UserID:  participantID,
			Type:    domain.NotifMeetingScheduled,
			Message: message,
			Data:    payload,
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) approversFor(ctx context.Context, booking *domain.Booking, resource *domain.Resource) ([]uuid.UUID, error) {
	if resource.Type == domain.ResourceLab && resource.LabInChargeID != nil {
		return []uuid.UUID{*resource.LabInChargeID}, nil
	}
	if booking.BookingType == domain.BookingMeeting && resource.AssignedStaffID != nil {
		return []uuid.UUID{*resource.AssignedStaffID}, nil
	}

	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(admins))
	for _, admin := range admins {
		ids = append(ids, admin.ID)
	}
	return ids, nil
}

func (s *service) deliver(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, message string, booking *domain.Booking) error {
	payload, _ := json.Marshal(map[string]string{
		"booking_id":  booking.ID.String(),
		"resource_id": booking.ResourceID.String(),
	})

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    notifType,
		Message: message,
		Data:    payload,
	}
	return s.notifRepo.Create(ctx, notif)
}
