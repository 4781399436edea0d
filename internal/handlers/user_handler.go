package handlers

import (
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/bewithdhanu/medicine-tracker/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
	uploads     *Uploader
}

func NewUserHandler(userService *services.UserService, uploads *Uploader) *UserHandler {
	return &UserHandler{userService: userService, uploads: uploads}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	user, err := h.userService.Get(id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	if err := h.userService.Delete(id); err != nil {
		return RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) UploadPhoto(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	if _, err := h.userService.Get(id); err != nil {
		return RespondError(c, err)
	}

	resp, err := h.uploads.Save(c, storage.DirUsers)
	if err != nil {
		return RespondError(c, err)
	}
	if _, err := h.userService.SetPhoto(id, resp.URL); err != nil {
		h.uploads.Discard(c, storage.DirUsers, resp)
		return RespondError(c, err)
	}
	return c.JSON(resp)
}
