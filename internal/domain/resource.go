package domain

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	ID              uuid.UUID      `json:"id" db:"resource_id"`
	Name            string         `json:"name" db:"name"`
	Type            ResourceType   `json:"type" db:"type"`
	Capacity        int            `json:"capacity" db:"capacity"`
	Status          ResourceStatus `json:"status" db:"status"`
	LabInChargeID   *uuid.UUID     `json:"lab_in_charge_id,omitempty" db:"lab_in_charge_id"`
	AssignedStaffID *uuid.UUID     `json:"assigned_staff_id,omitempty" db:"assigned_staff_id"`
	PhotoPath       *string        `json:"-" db:"photo_path"`
	PhotoURL        *string        `json:"photo_url,omitempty" db:"-"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`

	LabInCharge   *User `json:"lab_in_charge,omitempty" db:"-"`
	AssignedStaff *User `json:"assigned_staff,omitempty" db:"-"`
}

type ResourceType string

const (
	ResourceLab         ResourceType = "LAB"
	ResourceClassroom   ResourceType = "CLASSROOM"
	ResourceEventHall   ResourceType = "EVENT_HALL"
	ResourceMeetingRoom ResourceType = "MEETING_ROOM"
	ResourceComputer    ResourceType = "COMPUTER"
)

func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceLab, ResourceClassroom, ResourceEventHall, ResourceMeetingRoom, ResourceComputer:
		return true
	default:
		return false
	}
}

type ResourceStatus string

const (
	ResourceActive      ResourceStatus = "ACTIVE"
	ResourceInactive    ResourceStatus = "INACTIVE"
	ResourceMaintenance ResourceStatus = "MAINTENANCE"
)

// Bookable reports whether the resource accepts new bookings. INACTIVE and
// MAINTENANCE resources stay listed but refuse admission.
func (r *Resource) Bookable() bool {
	return r.Status == ResourceActive
}

type CreateResourceInput struct {
	Name            string       `json:"name" validate:"required"`
	Type            ResourceType `json:"type" validate:"required"`
	Capacity        int          `json:"capacity" validate:"required,min=1"`
	LabInChargeID   *uuid.UUID   `json:"lab_in_charge_id,omitempty"`
	AssignedStaffID *uuid.UUID   `json:"assigned_staff_id,omitempty"`
}

type UpdateResourceInput struct {
	Name            *string         `json:"name,omitempty"`
	Capacity        *int            `json:"capacity,omitempty"`
	Status          *ResourceStatus `json:"status,omitempty"`
	LabInChargeID   *uuid.UUID      `json:"lab_in_charge_id,omitempty"`
	AssignedStaffID *uuid.UUID      `json:"assigned_staff_id,omitempty"`
}
