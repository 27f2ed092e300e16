package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is append-only: rows are created by services and never mutated.
type AuditLog struct {
	ID        uuid.UUID `json:"id" db:"audit_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	UserName  *string   `json:"user_name,omitempty" db:"user_name"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	IPAddress *string   `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent *string   `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const (
	AuditRequestCreated  = "REQUEST_CREATED"
	AuditRequestApproved = "REQUEST_APPROVED"
	AuditRequestRejected = "REQUEST_REJECTED"
	AuditUserRegistered  = "USER_REGISTERED"
	AuditUserDeactivated = "USER_DEACTIVATED"
	AuditLoginSuccess    = "LOGIN_SUCCESS"
)

type CreateAuditLogInput struct {
	UserID    uuid.UUID
	Action    string
	Details   string
	IPAddress *string
	UserAgent *string
}

// RequestMeta carries request-level context that services record in the
// audit trail.
type RequestMeta struct {
	IPAddress *string
	UserAgent *string
}
