package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campus-booking/internal/domain"
	"campus-booking/internal/middleware"
	"campus-booking/internal/service/booking"
)

type BookingHandler struct {
	bookingService booking.Service
}

func NewBookingHandler(bookingService booking.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.ResourceID == nil && input.StaffID == nil {
		return middleware.BadRequest("Either resource_id or staff_id is required")
	}

	result, err := h.bookingService.Create(c.Context(), user, input, middleware.GetRequestMeta(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid booking ID")
	}

	result, err := h.bookingService.GetByID(c.Context(), user, id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	var status *domain.BookingStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.BookingStatus(raw)
		switch s {
		case domain.BookingPending, domain.BookingApproved, domain.BookingRejected:
			status = &s
		default:
			return middleware.BadRequest("Unknown booking status filter")
		}
	}

	result, err := h.bookingService.List(c.Context(), user, status, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *BookingHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, h.bookingService.Approve)
}

func (h *BookingHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, h.bookingService.Reject)
}

type reviewFn func(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.ReviewBookingInput, meta domain.RequestMeta) (*domain.Booking, error)

func (h *BookingHandler) review(c *fiber.Ctx, decide reviewFn) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid booking ID")
	}

	var input domain.ReviewBookingInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return middleware.BadRequest("Invalid request body")
		}
	}

	result, err := decide(c.Context(), user, id, input, middleware.GetRequestMeta(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *BookingHandler) Availability(c *fiber.Ctx) error {
	resourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid resource ID")
	}

	date := c.Query("date")
	if date == "" {
		return middleware.BadRequest("date query parameter is required")
	}

	slots, err := h.bookingService.Availability(c.Context(), resourceID, date)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"resource_id": resourceID,
		"date":        date,
		"occupied":    slots,
	})
}
