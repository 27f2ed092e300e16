package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"campus-booking/internal/config"
	"campus-booking/internal/repository"
	"campus-booking/internal/service/audit"
	"campus-booking/internal/service/auth"
	"campus-booking/internal/service/booking"
	"campus-booking/internal/service/dashboard"
	"campus-booking/internal/service/email"
	"campus-booking/internal/service/meeting"
	"campus-booking/internal/service/notification"
	"campus-booking/internal/service/resource"
	"campus-booking/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Booking      booking.Service
	Resource     resource.Service
	Meeting      meeting.Service
	Notification notification.Service
	Email        email.Service
	Audit        audit.Service
	Dashboard    dashboard.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg.ResendAPIKey, cfg.FromEmail)
	authService := auth.NewService(repos.User, repos.Session, repos.AuditLog, cfg)
	userService := user.NewService(repos.User, repos.Session, repos.AuditLog)
	resourceService := resource.NewService(repos.Resource, minioClient, cfg)
	auditService := audit.NewService(repos.AuditLog)

	bookingService := booking.NewService(repos.Booking, repos.Resource, repos.User, repos.AuditLog, redis)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService)
	bookingService.SetNotifier(notificationService)

	meetingService := meeting.NewService(repos.Meeting, repos.Resource, notificationService)
	dashboardService := dashboard.NewService(repos.Booking, repos.User, repos.Resource, redis)

	return &Services{
		Auth:         authService,
		User:         userService,
		Booking:      bookingService,
		Resource:     resourceService,
		Meeting:      meetingService,
		Notification: notificationService,
		Email:        emailService,
		Audit:        auditService,
		Dashboard:    dashboardService,
	}
}
