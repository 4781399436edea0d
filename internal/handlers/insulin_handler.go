package handlers

import (
	"math"
	"strconv"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InsulinHandler struct {
	insulinService *services.InsulinService
}

func NewInsulinHandler(insulinService *services.InsulinService) *InsulinHandler {
	return &InsulinHandler{insulinService: insulinService}
}

func (h *InsulinHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInsulinLogRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	log, err := h.insulinService.Create(&req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

func (h *InsulinHandler) List(c *fiber.Ctx) error {
	userID, err := queryUint(c, "user_id")
	if err != nil {
		return RespondError(c, err)
	}

	logs, err := h.insulinService.List(userID)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(logs)
}

func (h *InsulinHandler) Daily(c *fiber.Ctx) error {
	userID, err := requiredQueryUint(c, "user_id")
	if err != nil {
		return RespondError(c, err)
	}

	logs, err := h.insulinService.Daily(userID, c.Query("date"))
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(logs)
}

func (h *InsulinHandler) Weekly(c *fiber.Ctx) error {
	return h.stats(c, services.PeriodWeekly)
}

func (h *InsulinHandler) Monthly(c *fiber.Ctx) error {
	return h.stats(c, services.PeriodMonthly)
}

func (h *InsulinHandler) stats(c *fiber.Ctx, period string) error {
	userID, err := requiredQueryUint(c, "user_id")
	if err != nil {
		return RespondError(c, err)
	}

	stats, err := h.insulinService.Stats(userID, period)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(stats)
}

func (h *InsulinHandler) SuggestDosage(c *fiber.Ctx) error {
	raw := c.Query("glucose_reading")
	if raw == "" {
		return RespondError(c, apperr.Validation("glucose_reading is required"))
	}
	glucose, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(glucose) || math.IsInf(glucose, 0) {
		return RespondError(c, apperr.Validation("invalid glucose_reading"))
	}
	return c.JSON(h.insulinService.Suggest(glucose))
}
