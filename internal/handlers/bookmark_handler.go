package handlers

import (
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
}

func NewBookmarkHandler(bookmarkService *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

func (h *BookmarkHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	bookmark, err := h.bookmarkService.Create(&req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	isActive, err := queryBool(c, "is_active")
	if err != nil {
		return RespondError(c, err)
	}

	bookmarks, err := h.bookmarkService.List(isActive)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(bookmarks)
}

func (h *BookmarkHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	bookmark, err := h.bookmarkService.Get(id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(bookmark)
}

func (h *BookmarkHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	var req dto.UpdateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	bookmark, err := h.bookmarkService.Update(id, &req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(bookmark)
}

func (h *BookmarkHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	if err := h.bookmarkService.Delete(id); err != nil {
		return RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
