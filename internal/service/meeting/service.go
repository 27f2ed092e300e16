package meeting

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
	"campus-booking/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, organizer *domain.User, input domain.CreateMeetingInput) (*domain.MeetingSchedule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MeetingSchedule, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (*domain.PaginatedResponse[domain.MeetingSchedule], error)
}

type service struct {
	meetingRepo  repository.MeetingRepository
	resourceRepo repository.ResourceRepository
	notifier     notification.Service
}

func NewService(meetingRepo repository.MeetingRepository, resourceRepo repository.ResourceRepository, notifier notification.Service) Service {
	return &service{
		meetingRepo:  meetingRepo,
		resourceRepo: resourceRepo,
		notifier:     notifier,
	}
}

func (s *service) Create(ctx context.Context, organizer *domain.User, input domain.CreateMeetingInput) (*domain.MeetingSchedule, error) {
	date, err := time.Parse("2006-01-02", input.MeetingDate)
	if err != nil {
		return nil, domain.Reject(domain.RejectBadTimeFormat, "Invalid meeting date provided")
	}

	window, err := domain.NewTimeRange(input.StartTime, input.EndTime)
	if err != nil {
		if err == domain.ErrInvalidRange {
			return nil, domain.Reject(domain.RejectInvalidRange, "End time must succeed start time")
		}
		return nil, domain.Reject(domain.RejectBadTimeFormat, "Invalid time format provided")
	}

	if input.LocationID != nil {
		location, err := s.resourceRepo.GetByID(ctx, *input.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, domain.ErrResourceNotFound
		}
	}

	meeting := &domain.MeetingSchedule{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		OrganizerID:  organizer.ID,
		MeetingDate:  date,
		StartTime:    window.StartClock(),
		EndTime:      window.EndClock(),
		LocationID:   input.LocationID,
		Participants: input.Participants,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, err
	}

	go func() {
		if err := s.notifier.MeetingScheduled(context.Background(), meeting, organizer); err != nil {
			log.Printf("meeting notification failed for meeting %s: %v", meeting.ID, err)
		}
	}()

	return meeting, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.MeetingSchedule, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, domain.ErrMeetingNotFound
	}
	return meeting, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (*domain.PaginatedResponse[domain.MeetingSchedule], error) {
	params.Validate()

	meetings, total, err := s.meetingRepo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	resp := domain.NewPaginatedResponse(meetings, params.Page, params.PageSize, total)
	return &resp, nil
}
