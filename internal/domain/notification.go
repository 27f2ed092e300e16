package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"notification_id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	Data      json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifBookingRequested    NotificationType = "BOOKING_REQUESTED"
	NotifBookingAutoApproved NotificationType = "BOOKING_AUTO_APPROVED"
	NotifBookingApproved     NotificationType = "BOOKING_APPROVED"
	NotifBookingRejected     NotificationType = "BOOKING_REJECTED"
	NotifMeetingScheduled    NotificationType = "MEETING_SCHEDULED"
)
