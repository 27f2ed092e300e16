package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		bt       BookingType
		expected int
	}{
		{"Special outranks role", RoleStudent, BookingSpecial, 2},
		{"Special for staff", RoleStaff, BookingSpecial, 2},
		{"Staff normal", RoleStaff, BookingNormal, 1},
		{"Admin normal", RoleAdmin, BookingNormal, 1},
		{"Student normal", RoleStudent, BookingNormal, 0},
		{"Lab in-charge normal", RoleLabInCharge, BookingNormal, 0},
		{"Student meeting", RoleStudent, BookingMeeting, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PriorityFor(tt.role, tt.bt))
		})
	}
}

func TestInitialStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		bt       BookingType
		expected BookingStatus
	}{
		{"Admin always approved", RoleAdmin, BookingNormal, BookingApproved},
		{"Admin special approved", RoleAdmin, BookingSpecial, BookingApproved},
		{"Staff normal approved", RoleStaff, BookingNormal, BookingApproved},
		{"Staff meeting pending", RoleStaff, BookingMeeting, BookingPending},
		{"Staff special pending", RoleStaff, BookingSpecial, BookingPending},
		{"Student pending", RoleStudent, BookingNormal, BookingPending},
		{"Lab in-charge pending", RoleLabInCharge, BookingNormal, BookingPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InitialStatusFor(tt.role, tt.bt))
		})
	}
}

func TestRejectionError(t *testing.T) {
	err := Reject(RejectSlotConflict, "slot taken")

	rejection, ok := AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, RejectSlotConflict, rejection.Code)
	assert.Equal(t, "slot taken", err.Error())

	_, ok = AsRejection(ErrBookingNotFound)
	assert.False(t, ok)
}
