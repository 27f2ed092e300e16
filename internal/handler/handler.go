package handler

import (
	"github.com/gofiber/fiber/v2"

	"campus-booking/internal/domain"
	"campus-booking/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Booking      *BookingHandler
	Resource     *ResourceHandler
	Meeting      *MeetingHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Dashboard    *DashboardHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Booking:      NewBookingHandler(services.Booking),
		Resource:     NewResourceHandler(services.Resource),
		Meeting:      NewMeetingHandler(services.Meeting),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
		Dashboard:    NewDashboardHandler(services.Dashboard),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
