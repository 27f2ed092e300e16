package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
)

const availabilityCacheTTL = 60 * time.Second

// Notifier decouples the booking workflow from notification delivery. All
// calls are best-effort and run off the request path.
type Notifier interface {
	BookingRequested(ctx context.Context, booking *domain.Booking, requester *domain.User, resource *domain.Resource) error
	BookingAutoApproved(ctx context.Context, booking *domain.Booking, requester *domain.User, resource *domain.Resource) error
	BookingApproved(ctx context.Context, booking *domain.Booking, resource *domain.Resource) error
	BookingRejected(ctx context.Context, booking *domain.Booking, resource *domain.Resource, reason string) error
}

type Service interface {
	Create(ctx context.Context, requester *domain.User, input domain.CreateBookingInput, meta domain.RequestMeta) (*domain.Booking, error)
	GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, actor *domain.User, status *domain.BookingStatus, params domain.PaginationParams) (*domain.PaginatedResponse[domain.Booking], error)
	Approve(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.ReviewBookingInput, meta domain.RequestMeta) (*domain.Booking, error)
	Reject(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.ReviewBookingInput, meta domain.RequestMeta) (*domain.Booking, error)
	Availability(ctx context.Context, resourceID uuid.UUID, date string) ([]domain.TimeSlot, error)
	SetNotifier(n Notifier)
}

type service struct {
	bookingRepo  repository.BookingRepository
	resourceRepo repository.ResourceRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	redis        *redis.Client
	notifier     Notifier
}

func NewService(
	bookingRepo repository.BookingRepository,
	resourceRepo repository.ResourceRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	redisClient *redis.Client,
) Service {
	return &service{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		redis:        redisClient,
	}
}

// SetNotifier is called after construction to avoid a circular dependency
// between the booking and notification services.
func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *service) Create(ctx context.Context, requester *domain.User, input domain.CreateBookingInput, meta domain.RequestMeta) (*domain.Booking, error) {
	bookingType := input.BookingType
	if !bookingType.IsValid() {
		bookingType = domain.BookingNormal
	}

	adm := &admission{
		requester:   requester,
		input:       input,
		bookingType: bookingType,
	}
	if err := s.runAdmission(ctx, adm); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:            uuid.New(),
		UserID:        requester.ID,
		ResourceID:    adm.resource.ID,
		BookingDate:   adm.date,
		StartTime:     adm.window.StartClock(),
		EndTime:       adm.window.EndClock(),
		BookingType:   adm.bookingType,
		Justification: input.Justification,
		PriorityLevel: domain.PriorityFor(requester.Role, adm.bookingType),
		Status:        domain.InitialStatusFor(requester.Role, adm.bookingType),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotOccupied) {
			return nil, domain.Reject(domain.RejectSlotConflict, "Requested slot was taken by a concurrent booking")
		}
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, domain.Reject(domain.RejectResourceNotFound, "Resource not found")
		}
		return nil, err
	}

	booking.Resource = adm.resource

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:    requester.ID,
		Action:    domain.AuditRequestCreated,
		Details:   fmt.Sprintf("Requested %s on %s (%s-%s)", adm.resource.Name, input.BookingDate, booking.StartTime, booking.EndTime),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}); err != nil {
		log.Printf("audit log write failed for booking %s: %v", booking.ID, err)
	}

	s.invalidateAvailability(ctx, booking.ResourceID, input.BookingDate)

	if s.notifier != nil {
		resource := adm.resource
		if booking.Status == domain.BookingApproved {
			go func() {
				if err := s.notifier.BookingAutoApproved(context.Background(), booking, requester, resource); err != nil {
					log.Printf("auto-approval notification failed for booking %s: %v", booking.ID, err)
				}
			}()
		} else {
			go func() {
				if err := s.notifier.BookingRequested(context.Background(), booking, requester, resource); err != nil {
					log.Printf("request notification failed for booking %s: %v", booking.ID, err)
				}
			}()
		}
	}

	return booking, nil
}

func (s *service) GetByID(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Booking, error) {
	booking, resource, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanView(actor, booking, resource) {
		return nil, domain.Reject(domain.RejectAuthFailed, "You are not a party to this booking")
	}

	booking.Resource = resource
	requester, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		return nil, err
	}
	booking.Requester = requester
	return booking, nil
}

// List scopes results by role: admins see everything, a lab in-charge sees
// bookings on their labs plus their own, staff see their own plus meeting
// requests aimed at them, students see only their own.
func (s *service) List(ctx context.Context, actor *domain.User, status *domain.BookingStatus, params domain.PaginationParams) (*domain.PaginatedResponse[domain.Booking], error) {
	params.Validate()

	var (
		bookings []domain.Booking
		total    int64
		err      error
	)

	switch actor.Role {
	case domain.RoleAdmin:
		bookings, total, err = s.bookingRepo.ListAll(ctx, status, params)
	case domain.RoleLabInCharge:
		bookings, total, err = s.bookingRepo.ListForLabInCharge(ctx, actor.ID, params)
	case domain.RoleStaff:
		bookings, total, err = s.bookingRepo.ListForStaff(ctx, actor.ID, params)
	default:
		bookings, total, err = s.bookingRepo.ListByUser(ctx, actor.ID, params)
	}
	if err != nil {
		return nil, err
	}

	resp := domain.NewPaginatedResponse(bookings, params.Page, params.PageSize, total)
	return &resp, nil
}

func (s *service) Approve(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.ReviewBookingInput, meta domain.RequestMeta) (*domain.Booking, error) {
	booking, resource, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanApprove(actor, booking, resource) {
		return nil, domain.Reject(domain.RejectAuthFailed, "You are not authorized to approve this request")
	}
	if booking.Status != domain.BookingPending {
		return nil, domain.Reject(domain.RejectAlreadyProcessed, fmt.Sprintf("Request already %s", booking.Status))
	}

	ok, err := s.bookingRepo.UpdateStatusIfPending(ctx, id, domain.BookingApproved, input.Remarks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Reject(domain.RejectAlreadyProcessed, "Request was already processed")
	}

	booking.Status = domain.BookingApproved
	if input.Remarks != nil {
		booking.Remarks = input.Remarks
	}
	booking.Resource = resource

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:    actor.ID,
		Action:    domain.AuditRequestApproved,
		Details:   fmt.Sprintf("Approved booking %s for %s", booking.ID, resource.Name),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}); err != nil {
		log.Printf("audit log write failed for booking %s: %v", booking.ID, err)
	}

	s.invalidateAvailability(ctx, booking.ResourceID, booking.BookingDate.Format("2006-01-02"))

	if s.notifier != nil {
		go func() {
			if err := s.notifier.BookingApproved(context.Background(), booking, resource); err != nil {
				log.Printf("approval notification failed for booking %s: %v", booking.ID, err)
			}
		}()
	}

	return booking, nil
}

// Reject requires a reason: the requester always learns why access was
// denied.
func (s *service) Reject(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.ReviewBookingInput, meta domain.RequestMeta) (*domain.Booking, error) {
	if input.Remarks == nil || *input.Remarks == "" {
		return nil, domain.Reject(domain.RejectReasonRequired, "A rejection reason is required")
	}

	booking, resource, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanReject(actor, booking, resource) {
		return nil, domain.Reject(domain.RejectAuthFailed, "You are not authorized to reject this request")
	}
	if booking.Status != domain.BookingPending {
		return nil, domain.Reject(domain.RejectAlreadyProcessed, fmt.Sprintf("Request already %s", booking.Status))
	}

	ok, err := s.bookingRepo.UpdateStatusIfPending(ctx, id, domain.BookingRejected, input.Remarks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Reject(domain.RejectAlreadyProcessed, "Request was already processed")
	}

	booking.Status = domain.BookingRejected
	booking.Remarks = input.Remarks
	booking.Resource = resource

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:    actor.ID,
		Action:    domain.AuditRequestRejected,
		Details:   fmt.Sprintf("Rejected booking %s for %s: %s", booking.ID, resource.Name, *input.Remarks),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}); err != nil {
		log.Printf("audit log write failed for booking %s: %v", booking.ID, err)
	}

	s.invalidateAvailability(ctx, booking.ResourceID, booking.BookingDate.Format("2006-01-02"))

	if s.notifier != nil {
		reason := *input.Remarks
		go func() {
			if err := s.notifier.BookingRejected(context.Background(), booking, resource, reason); err != nil {
				log.Printf("rejection notification failed for booking %s: %v", booking.ID, err)
			}
		}()
	}

	return booking, nil
}

// Availability returns the occupied slots for a resource on a date, cached
// briefly in Redis since the calendar view polls it.
func (s *service) Availability(ctx context.Context, resourceID uuid.UUID, date string) ([]domain.TimeSlot, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, domain.Reject(domain.RejectBadTimeFormat, "Invalid booking date provided")
	}

	cacheKey := availabilityKey(resourceID, date)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var slots []domain.TimeSlot
			if json.Unmarshal([]byte(cached), &slots) == nil {
				return slots, nil
			}
		}
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, domain.ErrResourceNotFound
	}

	slots, err := s.bookingRepo.ListOccupied(ctx, resourceID, day)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []domain.TimeSlot{}
	}

	if s.redis != nil {
		if payload, err := json.Marshal(slots); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, availabilityCacheTTL).Err()
		}
	}

	return slots, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*domain.Booking, *domain.Resource, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, domain.ErrBookingNotFound
	}

	resource, err := s.resourceRepo.GetByID(ctx, booking.ResourceID)
	if err != nil {
		return nil, nil, err
	}
	if resource == nil {
		return nil, nil, domain.ErrResourceNotFound
	}
	return booking, resource, nil
}

func (s *service) invalidateAvailability(ctx context.Context, resourceID uuid.UUID, date string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, availabilityKey(resourceID, date)).Err()
}

func availabilityKey(resourceID uuid.UUID, date string) string {
	return fmt.Sprintf("availability:%s:%s", resourceID, date)
}
