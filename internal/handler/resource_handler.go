package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campus-booking/internal/domain"
	"campus-booking/internal/middleware"
	"campus-booking/internal/service/resource"
)

const maxPhotoSize = 5 << 20 // 5 MiB

type ResourceHandler struct {
	resourceService resource.Service
}

func NewResourceHandler(resourceService resource.Service) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" || input.Capacity < 1 {
		return middleware.BadRequest("Name and a positive capacity are required")
	}

	result, err := h.resourceService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *ResourceHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid resource ID")
	}

	result, err := h.resourceService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid resource ID")
	}

	var input domain.UpdateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.resourceService.Update(c.Context(), id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ResourceHandler) List(c *fiber.Ctx) error {
	result, err := h.resourceService.List(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ResourceHandler) UploadPhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid resource ID")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return middleware.BadRequest("photo file is required")
	}
	if fileHeader.Size > maxPhotoSize {
		return middleware.BadRequest("Photo exceeds the 5MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Could not read uploaded file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	result, err := h.resourceService.UploadPhoto(c.Context(), id, fileHeader.Filename, fileHeader.Size, mimeType, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
