package domain

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID            uuid.UUID     `json:"id" db:"booking_id"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id"`
	ResourceID    uuid.UUID     `json:"resource_id" db:"resource_id"`
	BookingDate   time.Time     `json:"booking_date" db:"booking_date"`
	StartTime     string        `json:"start_time" db:"start_time"`
	EndTime       string        `json:"end_time" db:"end_time"`
	BookingType   BookingType   `json:"booking_type" db:"booking_type"`
	Justification *string       `json:"justification,omitempty" db:"justification"`
	Remarks       *string       `json:"remarks,omitempty" db:"remarks"`
	PriorityLevel int           `json:"priority_level" db:"priority_level"`
	Status        BookingStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`

	Requester *User     `json:"requester,omitempty" db:"-"`
	Resource  *Resource `json:"resource,omitempty" db:"-"`
}

type BookingType string

const (
	BookingNormal  BookingType = "NORMAL"
	BookingSpecial BookingType = "SPECIAL"
	BookingMeeting BookingType = "MEETING"
)

func (t BookingType) IsValid() bool {
	switch t {
	case BookingNormal, BookingSpecial, BookingMeeting:
		return true
	default:
		return false
	}
}

// BookingStatus lifecycle: PENDING is the only mutable state; APPROVED and
// REJECTED are terminal. Bookings are never deleted.
type BookingStatus string

const (
	BookingPending  BookingStatus = "PENDING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// PriorityFor computes the informational priority weight of a request.
// SPECIAL bookings outrank everything; staff and admin outrank students.
func PriorityFor(role Role, bt BookingType) int {
	if bt == BookingSpecial {
		return 2
	}
	switch role {
	case RoleStaff, RoleAdmin:
		return 1
	case RoleStudent, RoleLabInCharge:
		return 0
	}
	return 0
}

// InitialStatusFor decides whether a request is auto-approved or routed to an
// approver. Admin requests always auto-approve; staff auto-approve except for
// meetings and special events, which need oversight.
func InitialStatusFor(role Role, bt BookingType) BookingStatus {
	switch role {
	case RoleAdmin:
		return BookingApproved
	case RoleStaff:
		if bt != BookingMeeting && bt != BookingSpecial {
			return BookingApproved
		}
		return BookingPending
	case RoleStudent, RoleLabInCharge:
		return BookingPending
	}
	return BookingPending
}

// Per-role duration caps in minutes. SPECIAL bookings bypass both.
const (
	StudentMaxMinutes = 60
	StaffMaxMinutes   = 240
)

type CreateBookingInput struct {
	ResourceID    *uuid.UUID  `json:"resource_id,omitempty"`
	StaffID       *string     `json:"staff_id,omitempty"`
	BookingDate   string      `json:"booking_date" validate:"required"`
	StartTime     string      `json:"start_time" validate:"required"`
	EndTime       string      `json:"end_time" validate:"required"`
	BookingType   BookingType `json:"booking_type,omitempty"`
	Justification *string     `json:"justification,omitempty"`
}

type ReviewBookingInput struct {
	Remarks *string `json:"remarks,omitempty"`
}

// TimeSlot is an occupied interval returned by the availability query.
type TimeSlot struct {
	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`
}

func (s TimeSlot) Range() (TimeRange, error) {
	return NewTimeRange(s.StartTime, s.EndTime)
}
