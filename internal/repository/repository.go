package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Resource     ResourceRepository
	Booking      BookingRepository
	Meeting      MeetingRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Resource:     NewResourceRepository(db),
		Booking:      NewBookingRepository(db),
		Meeting:      NewMeetingRepository(db),
		Notification: NewNotificationRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		Session:      NewSessionRepository(db),
	}
}
