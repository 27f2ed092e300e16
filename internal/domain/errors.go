package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrInvalidRange     = errors.New("end time must be after start time")
)

// RejectCode identifies why a booking request or review action was refused.
// Every refusal carries exactly one code plus a human-readable message.
type RejectCode string

const (
	RejectInactiveUser      RejectCode = "INACTIVE_USER"
	RejectNoTargetSpace     RejectCode = "NO_TARGET_SPACE"
	RejectBadTimeFormat     RejectCode = "BAD_TIME_FORMAT"
	RejectInvalidRange      RejectCode = "INVALID_RANGE"
	RejectStudentDuration   RejectCode = "STUDENT_DURATION_EXCEEDED"
	RejectStaffDuration     RejectCode = "STAFF_DURATION_EXCEEDED"
	RejectResourceNotFound  RejectCode = "RESOURCE_NOT_FOUND"
	RejectResourceNotActive RejectCode = "RESOURCE_NOT_ACTIVE"
	RejectSlotConflict      RejectCode = "SLOT_CONFLICT"
	RejectAlreadyProcessed  RejectCode = "ALREADY_PROCESSED"
	RejectAuthFailed        RejectCode = "AUTH_FAILED"
	RejectReasonRequired    RejectCode = "REASON_REQUIRED"
)

type RejectionError struct {
	Code    RejectCode
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func Reject(code RejectCode, message string) *RejectionError {
	return &RejectionError{Code: code, Message: message}
}

// AsRejection unwraps err into a RejectionError if it carries one.
func AsRejection(err error) (*RejectionError, bool) {
	var re *RejectionError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
