package booking

import (
	"context"
	"fmt"
	"time"

	"campus-booking/internal/domain"
)

// admission carries a request through the validation pipeline. Stages fill in
// the resolved resource, parsed date and time window as they run.
type admission struct {
	requester   *domain.User
	input       domain.CreateBookingInput
	bookingType domain.BookingType
	date        time.Time
	window      domain.TimeRange
	resource    *domain.Resource
}

type stage func(ctx context.Context, adm *admission) error

// stages returns the admission checks in their required order. Each stage
// either passes or terminates the request with a single rejection; no stage
// depends on state a later stage produces.
func (s *service) stages() []stage {
	return []stage{
		s.checkRequesterActive,
		s.resolveTarget,
		s.parseWindow,
		s.checkDurationCaps,
		s.checkResource,
		s.checkSlotFree,
	}
}

func (s *service) runAdmission(ctx context.Context, adm *admission) error {
	for _, st := range s.stages() {
		if err := st(ctx, adm); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) checkRequesterActive(ctx context.Context, adm *admission) error {
	if !adm.requester.IsActive() {
		return domain.Reject(domain.RejectInactiveUser, "Inactive users cannot initiate requests")
	}
	return nil
}

// resolveTarget handles the direct-to-staff meeting form: when a staff ID is
// given instead of a resource, the booking lands on that staff member's
// assigned space, falling back to the first meeting room. Resolving this way
// forces the booking type to MEETING.
func (s *service) resolveTarget(ctx context.Context, adm *admission) error {
	if adm.input.StaffID == nil || adm.input.ResourceID != nil {
		return nil
	}

	staff, err := s.userRepo.GetStaffByEmployeeID(ctx, *adm.input.StaffID)
	if err != nil {
		return err
	}
	if staff == nil {
		return domain.Reject(domain.RejectNoTargetSpace, "Staff ID not found in institutional records")
	}

	resource, err := s.resourceRepo.FirstByAssignedStaff(ctx, staff.ID)
	if err != nil {
		return err
	}
	if resource == nil {
		resource, err = s.resourceRepo.FirstByType(ctx, domain.ResourceMeetingRoom)
		if err != nil {
			return err
		}
	}
	if resource == nil {
		return domain.Reject(domain.RejectNoTargetSpace, "Target staff has no assigned consultation space")
	}

	adm.resource = resource
	adm.bookingType = domain.BookingMeeting
	return nil
}

func (s *service) parseWindow(ctx context.Context, adm *admission) error {
	date, err := time.Parse("2006-01-02", adm.input.BookingDate)
	if err != nil {
		return domain.Reject(domain.RejectBadTimeFormat, "Invalid booking date provided")
	}
	adm.date = date

	window, err := domain.NewTimeRange(adm.input.StartTime, adm.input.EndTime)
	if err != nil {
		if err == domain.ErrInvalidRange {
			return domain.Reject(domain.RejectInvalidRange, "End time must succeed start time")
		}
		return domain.Reject(domain.RejectBadTimeFormat, "Invalid time format provided")
	}
	adm.window = window
	return nil
}

// checkDurationCaps enforces per-role session limits. SPECIAL bookings are
// institutional events and bypass both caps.
func (s *service) checkDurationCaps(ctx context.Context, adm *admission) error {
	if adm.bookingType == domain.BookingSpecial {
		return nil
	}

	switch adm.requester.Role {
	case domain.RoleStudent:
		if adm.window.Minutes() > domain.StudentMaxMinutes {
			return domain.Reject(domain.RejectStudentDuration, "Students are restricted to 60-minute sessions per booking")
		}
	case domain.RoleStaff:
		if adm.window.Minutes() > domain.StaffMaxMinutes {
			return domain.Reject(domain.RejectStaffDuration, "Staff sessions are limited to a maximum of 4 hours")
		}
	case domain.RoleLabInCharge, domain.RoleAdmin:
	}
	return nil
}

func (s *service) checkResource(ctx context.Context, adm *admission) error {
	if adm.resource == nil {
		if adm.input.ResourceID == nil {
			return domain.Reject(domain.RejectResourceNotFound, "Resource not found")
		}
		resource, err := s.resourceRepo.GetByID(ctx, *adm.input.ResourceID)
		if err != nil {
			return err
		}
		if resource == nil {
			return domain.Reject(domain.RejectResourceNotFound, "Resource not found")
		}
		adm.resource = resource
	}

	if !adm.resource.Bookable() {
		return domain.Reject(domain.RejectResourceNotActive,
			fmt.Sprintf("Resource status: %s", adm.resource.Status))
	}
	return nil
}

// checkSlotFree is the admission-time overlap test against PENDING and
// APPROVED bookings. The insert transaction re-checks under a resource lock,
// so a concurrent winner still cannot double-book.
func (s *service) checkSlotFree(ctx context.Context, adm *admission) error {
	occupied, err := s.bookingRepo.ListOccupied(ctx, adm.resource.ID, adm.date)
	if err != nil {
		return err
	}

	for _, slot := range occupied {
		taken, err := slot.Range()
		if err != nil {
			continue
		}
		if adm.window.Overlaps(taken) {
			return domain.Reject(domain.RejectSlotConflict,
				fmt.Sprintf("Requested slot overlaps an existing booking (%s)", taken))
		}
	}
	return nil
}
