package handlers

import (
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ReminderHandler serves reminders and the medicine logs nested under
// /reminders/logs.
type ReminderHandler struct {
	reminderService *services.ReminderService
	logService      *services.MedicineLogService
}

func NewReminderHandler(reminderService *services.ReminderService, logService *services.MedicineLogService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, logService: logService}
}

func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	reminder, err := h.reminderService.Create(&req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reminder)
}

func (h *ReminderHandler) List(c *fiber.Ctx) error {
	medicineID, err := queryUint(c, "medicine_id")
	if err != nil {
		return RespondError(c, err)
	}

	reminders, err := h.reminderService.List(medicineID)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(reminders)
}

func (h *ReminderHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	if err := h.reminderService.Delete(id); err != nil {
		return RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReminderHandler) CreateLog(c *fiber.Ctx) error {
	var req dto.CreateMedicineLogRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	log, err := h.logService.Create(&req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(log)
}

func (h *ReminderHandler) ListLogs(c *fiber.Ctx) error {
	userID, err := queryUint(c, "user_id")
	if err != nil {
		return RespondError(c, err)
	}
	medicineID, err := queryUint(c, "medicine_id")
	if err != nil {
		return RespondError(c, err)
	}

	logs, err := h.logService.List(services.MedicineLogFilter{UserID: userID, MedicineID: medicineID})
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(logs)
}

func (h *ReminderHandler) UpdateLog(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	var req dto.UpdateMedicineLogRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	log, err := h.logService.Update(id, &req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(log)
}

func (h *ReminderHandler) Missed(c *fiber.Ctx) error {
	userID, err := queryUint(c, "user_id")
	if err != nil {
		return RespondError(c, err)
	}

	logs, err := h.logService.Missed(userID)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(logs)
}
