package unit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
	"campus-booking/internal/service/booking"
	"campus-booking/tests/mocks"
)

type bookingFixture struct {
	bookingRepo  *mocks.BookingRepository
	resourceRepo *mocks.ResourceRepository
	userRepo     *mocks.UserRepository
	auditRepo    *mocks.AuditLogRepository
	svc          booking.Service
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookingRepo:  new(mocks.BookingRepository),
		resourceRepo: new(mocks.ResourceRepository),
		userRepo:     new(mocks.UserRepository),
		auditRepo:    new(mocks.AuditLogRepository),
	}
	f.svc = booking.NewService(f.bookingRepo, f.resourceRepo, f.userRepo, f.auditRepo, nil)
	return f
}

func activeUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Email:    "user@campus.edu",
		FullName: "Test User",
		Role:     role,
		Status:   domain.UserActive,
	}
}

func activeResource(rt domain.ResourceType) *domain.Resource {
	return &domain.Resource{
		ID:       uuid.New(),
		Name:     "Physics Lab",
		Type:     rt,
		Capacity: 30,
		Status:   domain.ResourceActive,
	}
}

func createInput(resourceID uuid.UUID) domain.CreateBookingInput {
	return domain.CreateBookingInput{
		ResourceID:  &resourceID,
		BookingDate: "2026-09-15",
		StartTime:   "10:00",
		EndTime:     "10:45",
		BookingType: domain.BookingNormal,
	}
}

func assertRejected(t *testing.T, err error, code domain.RejectCode) {
	t.Helper()
	rejection, ok := domain.AsRejection(err)
	assert.True(t, ok, "expected a rejection, got %v", err)
	if ok {
		assert.Equal(t, code, rejection.Code)
	}
}

func TestBookingService_Create_Admission(t *testing.T) {
	ctx := context.Background()
	meta := domain.RequestMeta{}

	t.Run("Inactive requester", func(t *testing.T) {
		f := newBookingFixture()
		requester := activeUser(domain.RoleStudent)
		requester.Status = domain.UserInactive

		result, err := f.svc.Create(ctx, requester, createInput(uuid.New()), meta)

		assert.Nil(t, result)
		assertRejected(t, err, domain.RejectInactiveUser)
	})

	t.Run("Bad date format", func(t *testing.T) {
		f := newBookingFixture()
		input := createInput(uuid.New())
		input.BookingDate = "15/09/2026"

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assertRejected(t, err, domain.RejectBadTimeFormat)
	})

	t.Run("Bad time format", func(t *testing.T) {
		f := newBookingFixture()
		input := createInput(uuid.New())
		input.StartTime = "ten o'clock"

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assertRejected(t, err, domain.RejectBadTimeFormat)
	})

	t.Run("End before start", func(t *testing.T) {
		f := newBookingFixture()
		input := createInput(uuid.New())
		input.StartTime = "11:00"
		input.EndTime = "10:00"

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assertRejected(t, err, domain.RejectInvalidRange)
	})

	t.Run("Student over 60 minutes", func(t *testing.T) {
		f := newBookingFixture()
		input := createInput(uuid.New())
		input.EndTime = "11:01"

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assertRejected(t, err, domain.RejectStudentDuration)
	})

	t.Run("Staff over 4 hours", func(t *testing.T) {
		f := newBookingFixture()
		input := createInput(uuid.New())
		input.StartTime = "08:00"
		input.EndTime = "12:01"

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStaff), input, meta)

		assertRejected(t, err, domain.RejectStaffDuration)
	})

	t.Run("Special booking bypasses duration caps", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceEventHall)
		input := createInput(resource.ID)
		input.BookingType = domain.BookingSpecial
		input.StartTime = "08:00"
		input.EndTime = "18:00"

		f.resourceRepo.On("GetByID", ctx, resource.ID).Return(resource, nil).Once()
		f.bookingRepo.On("ListOccupied", ctx, resource.ID, mock.Anything).Return([]domain.TimeSlot{}, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		result, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.PriorityLevel)
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("Resource not found", func(t *testing.T) {
		f := newBookingFixture()
		resourceID := uuid.New()

		f.resourceRepo.On("GetByID", ctx, resourceID).Return(nil, nil).Once()

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), createInput(resourceID), meta)

		assertRejected(t, err, domain.RejectResourceNotFound)
	})

	t.Run("Resource under maintenance", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceLab)
		resource.Status = domain.ResourceMaintenance

		f.resourceRepo.On("GetByID", ctx, resource.ID).Return(resource, nil).Once()

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), createInput(resource.ID), meta)

		assertRejected(t, err, domain.RejectResourceNotActive)
	})

	t.Run("Slot conflict", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceLab)

		f.resourceRepo.On("GetByID", ctx, resource.ID).Return(resource, nil).Once()
		f.bookingRepo.On("ListOccupied", ctx, resource.ID, mock.Anything).
			Return([]domain.TimeSlot{{StartTime: "10:30", EndTime: "11:30"}}, nil).Once()

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), createInput(resource.ID), meta)

		assertRejected(t, err, domain.RejectSlotConflict)
	})

	t.Run("Back-to-back slot admitted", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceLab)

		f.resourceRepo.On("GetByID", ctx, resource.ID).Return(resource, nil).Once()
		f.bookingRepo.On("ListOccupied", ctx, resource.ID, mock.Anything).
			Return([]domain.TimeSlot{{StartTime: "09:00", EndTime: "10:00"}}, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		result, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), createInput(resource.ID), meta)

		assert.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("Inactive user checked before time parsing", func(t *testing.T) {
		f := newBookingFixture()
		requester := activeUser(domain.RoleStudent)
		requester.Status = domain.UserInactive
		input := createInput(uuid.New())
		input.StartTime = "garbage"

		_, err := f.svc.Create(ctx, requester, input, meta)

		assertRejected(t, err, domain.RejectInactiveUser)
	})
}

func TestBookingService_Create_StaffTarget(t *testing.T) {
	ctx := context.Background()
	meta := domain.RequestMeta{}

	t.Run("Resolves to staff consultation space as MEETING", func(t *testing.T) {
		f := newBookingFixture()
		staff := activeUser(domain.RoleStaff)
		space := activeResource(domain.ResourceMeetingRoom)
		space.AssignedStaffID = &staff.ID

		staffID := "EMP-104"
		input := domain.CreateBookingInput{
			StaffID:     &staffID,
			BookingDate: "2026-09-15",
			StartTime:   "10:00",
			EndTime:     "10:30",
		}

		f.userRepo.On("GetStaffByEmployeeID", ctx, staffID).Return(staff, nil).Once()
		f.resourceRepo.On("FirstByAssignedStaff", ctx, staff.ID).Return(space, nil).Once()
		f.bookingRepo.On("ListOccupied", ctx, space.ID, mock.Anything).Return([]domain.TimeSlot{}, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.BookingType == domain.BookingMeeting && b.ResourceID == space.ID
		})).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		result, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingMeeting, result.BookingType)
		assert.Equal(t, domain.BookingPending, result.Status)
	})

	t.Run("Falls back to first meeting room", func(t *testing.T) {
		f := newBookingFixture()
		staff := activeUser(domain.RoleStaff)
		room := activeResource(domain.ResourceMeetingRoom)

		staffID := "EMP-104"
		input := domain.CreateBookingInput{
			StaffID:     &staffID,
			BookingDate: "2026-09-15",
			StartTime:   "10:00",
			EndTime:     "10:30",
		}

		f.userRepo.On("GetStaffByEmployeeID", ctx, staffID).Return(staff, nil).Once()
		f.resourceRepo.On("FirstByAssignedStaff", ctx, staff.ID).Return(nil, nil).Once()
		f.resourceRepo.On("FirstByType", ctx, domain.ResourceMeetingRoom).Return(room, nil).Once()
		f.bookingRepo.On("ListOccupied", ctx, room.ID, mock.Anything).Return([]domain.TimeSlot{}, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		result, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assert.NoError(t, err)
		assert.Equal(t, room.ID, result.ResourceID)
	})

	t.Run("Unknown staff ID", func(t *testing.T) {
		f := newBookingFixture()
		staffID := "EMP-999"
		input := domain.CreateBookingInput{
			StaffID:     &staffID,
			BookingDate: "2026-09-15",
			StartTime:   "10:00",
			EndTime:     "10:30",
		}

		f.userRepo.On("GetStaffByEmployeeID", ctx, staffID).Return(nil, nil).Once()

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assertRejected(t, err, domain.RejectNoTargetSpace)
	})

	t.Run("No space anywhere", func(t *testing.T) {
		f := newBookingFixture()
		staff := activeUser(domain.RoleStaff)
		staffID := "EMP-104"
		input := domain.CreateBookingInput{
			StaffID:     &staffID,
			BookingDate: "2026-09-15",
			StartTime:   "10:00",
			EndTime:     "10:30",
		}

		f.userRepo.On("GetStaffByEmployeeID", ctx, staffID).Return(staff, nil).Once()
		f.resourceRepo.On("FirstByAssignedStaff", ctx, staff.ID).Return(nil, nil).Once()
		f.resourceRepo.On("FirstByType", ctx, domain.ResourceMeetingRoom).Return(nil, nil).Once()

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assertRejected(t, err, domain.RejectNoTargetSpace)
	})
}

func TestBookingService_Create_Outcomes(t *testing.T) {
	ctx := context.Background()
	meta := domain.RequestMeta{}

	expectAdmitted := func(f *bookingFixture, resource *domain.Resource) {
		f.resourceRepo.On("GetByID", ctx, resource.ID).Return(resource, nil).Once()
		f.bookingRepo.On("ListOccupied", ctx, resource.ID, mock.Anything).Return([]domain.TimeSlot{}, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	}

	t.Run("Student booking is pending at priority 0", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceLab)
		expectAdmitted(f, resource)

		result, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), createInput(resource.ID), meta)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingPending, result.Status)
		assert.Equal(t, 0, result.PriorityLevel)
	})

	t.Run("Staff normal booking auto-approves at priority 1", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceClassroom)
		expectAdmitted(f, resource)

		result, err := f.svc.Create(ctx, activeUser(domain.RoleStaff), createInput(resource.ID), meta)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingApproved, result.Status)
		assert.Equal(t, 1, result.PriorityLevel)
	})

	t.Run("Admin booking always auto-approves", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceEventHall)
		input := createInput(resource.ID)
		input.BookingType = domain.BookingSpecial
		expectAdmitted(f, resource)

		result, err := f.svc.Create(ctx, activeUser(domain.RoleAdmin), input, meta)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingApproved, result.Status)
	})

	t.Run("Concurrent insert loser maps to slot conflict", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceLab)

		f.resourceRepo.On("GetByID", ctx, resource.ID).Return(resource, nil).Once()
		f.bookingRepo.On("ListOccupied", ctx, resource.ID, mock.Anything).Return([]domain.TimeSlot{}, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.Anything).Return(repository.ErrSlotOccupied).Once()

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), createInput(resource.ID), meta)

		assertRejected(t, err, domain.RejectSlotConflict)
	})

	t.Run("Times stored normalized", func(t *testing.T) {
		f := newBookingFixture()
		resource := activeResource(domain.ResourceLab)
		input := createInput(resource.ID)
		input.StartTime = "10:00:00"
		input.EndTime = "10:45:00"

		f.resourceRepo.On("GetByID", ctx, resource.ID).Return(resource, nil).Once()
		f.bookingRepo.On("ListOccupied", ctx, resource.ID, mock.Anything).Return([]domain.TimeSlot{}, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.StartTime == "10:00" && b.EndTime == "10:45"
		})).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := f.svc.Create(ctx, activeUser(domain.RoleStudent), input, meta)

		assert.NoError(t, err)
		f.bookingRepo.AssertExpectations(t)
	})
}
