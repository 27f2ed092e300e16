package booking

import (
	"campus-booking/internal/domain"
)

// CanApprove reports whether actor may approve the booking. Admins approve
// anything; a lab in-charge approves bookings on labs assigned to them; staff
// approve meeting requests directed at them and their own bookings.
func CanApprove(actor *domain.User, booking *domain.Booking, resource *domain.Resource) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleLabInCharge:
		return managesLab(actor, resource)
	case domain.RoleStaff:
		if isMeetingTarget(actor, booking, resource) {
			return true
		}
		return booking.UserID == actor.ID
	case domain.RoleStudent:
		return false
	}
	return false
}

// CanReject mirrors CanApprove except that staff cannot self-reject: only
// meeting requests directed at them qualify.
func CanReject(actor *domain.User, booking *domain.Booking, resource *domain.Resource) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleLabInCharge:
		return managesLab(actor, resource)
	case domain.RoleStaff:
		return isMeetingTarget(actor, booking, resource)
	case domain.RoleStudent:
		return false
	}
	return false
}

// CanView gates single-booking reads to the parties involved in the request.
func CanView(actor *domain.User, booking *domain.Booking, resource *domain.Resource) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleLabInCharge:
		return booking.UserID == actor.ID || managesLab(actor, resource)
	case domain.RoleStaff:
		return booking.UserID == actor.ID || isMeetingTarget(actor, booking, resource)
	case domain.RoleStudent:
		return booking.UserID == actor.ID
	}
	return false
}

func managesLab(actor *domain.User, resource *domain.Resource) bool {
	return resource.Type == domain.ResourceLab &&
		resource.LabInChargeID != nil && *resource.LabInChargeID == actor.ID
}

func isMeetingTarget(actor *domain.User, booking *domain.Booking, resource *domain.Resource) bool {
	return booking.BookingType == domain.BookingMeeting &&
		resource.AssignedStaffID != nil && *resource.AssignedStaffID == actor.ID
}
