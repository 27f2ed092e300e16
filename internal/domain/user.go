package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"user_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	EmployeeID   *string    `json:"employee_id,omitempty" db:"employee_id"`
	Role         Role       `json:"role" db:"role"`
	Status       UserStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Role is the closed set of requester roles. Decisions that branch on role
// switch over all four values rather than chaining string comparisons.
type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleStaff       Role = "STAFF"
	RoleLabInCharge Role = "LAB_INCHARGE"
	RoleAdmin       Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleLabInCharge, RoleAdmin:
		return true
	default:
		return false
	}
}

type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

func (u *User) IsActive() bool {
	return u.Status == UserActive
}

type CreateUserInput struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	FullName   string  `json:"full_name" validate:"required,min=2"`
	Phone      *string `json:"phone,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Role       Role    `json:"role" validate:"omitempty,oneof=STUDENT STAFF LAB_INCHARGE ADMIN"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
