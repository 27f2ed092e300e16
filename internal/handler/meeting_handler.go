package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campus-booking/internal/domain"
	"campus-booking/internal/middleware"
	"campus-booking/internal/service/meeting"
)

type MeetingHandler struct {
	meetingService meeting.Service
}

func NewMeetingHandler(meetingService meeting.Service) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.CreateMeetingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Title == "" || len(input.Participants) == 0 {
		return middleware.BadRequest("Title and at least one participant are required")
	}

	result, err := h.meetingService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *MeetingHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid meeting ID")
	}

	result, err := h.meetingService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MeetingHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	result, err := h.meetingService.ListForUser(c.Context(), userID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
