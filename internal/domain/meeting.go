package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeetingSchedule is an admin-organized meeting with invited participants,
// separate from the booking admission flow.
type MeetingSchedule struct {
	ID          uuid.UUID  `json:"id" db:"meeting_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	OrganizerID uuid.UUID  `json:"organizer_id" db:"organizer_id"`
	MeetingDate time.Time  `json:"meeting_date" db:"meeting_date"`
	StartTime   string     `json:"start_time" db:"start_time"`
	EndTime     string     `json:"end_time" db:"end_time"`
	LocationID  *uuid.UUID `json:"location_id,omitempty" db:"location_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	Participants []uuid.UUID `json:"participants,omitempty" db:"-"`
	Organizer    *User       `json:"organizer,omitempty" db:"-"`
	Location     *Resource   `json:"location,omitempty" db:"-"`
}

type CreateMeetingInput struct {
	Title        string      `json:"title" validate:"required"`
	Description  *string     `json:"description,omitempty"`
	MeetingDate  string      `json:"meeting_date" validate:"required"`
	StartTime    string      `json:"start_time" validate:"required"`
	EndTime      string      `json:"end_time" validate:"required"`
	LocationID   *uuid.UUID  `json:"location_id,omitempty"`
	Participants []uuid.UUID `json:"participants" validate:"required,min=1"`
}
