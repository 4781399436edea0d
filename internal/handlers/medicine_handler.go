package handlers

import (
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/bewithdhanu/medicine-tracker/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type MedicineHandler struct {
	medicineService *services.MedicineService
	uploads         *Uploader
}

func NewMedicineHandler(medicineService *services.MedicineService, uploads *Uploader) *MedicineHandler {
	return &MedicineHandler{medicineService: medicineService, uploads: uploads}
}

func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMedicineRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	medicine, err := h.medicineService.Create(&req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(medicine)
}

func (h *MedicineHandler) List(c *fiber.Ctx) error {
	userID, err := queryUint(c, "user_id")
	if err != nil {
		return RespondError(c, err)
	}
	isActive, err := queryBool(c, "is_active")
	if err != nil {
		return RespondError(c, err)
	}

	medicines, err := h.medicineService.List(services.MedicineFilter{UserID: userID, IsActive: isActive})
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(medicines)
}

func (h *MedicineHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	medicine, err := h.medicineService.Get(id)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(medicine)
}

func (h *MedicineHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	var req dto.UpdateMedicineRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondError(c, errInvalidBody)
	}

	medicine, err := h.medicineService.Update(id, &req)
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(medicine)
}

func (h *MedicineHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}

	if err := h.medicineService.Delete(id); err != nil {
		return RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MedicineHandler) UploadImage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return RespondError(c, err)
	}
	if _, err := h.medicineService.Get(id); err != nil {
		return RespondError(c, err)
	}

	resp, err := h.uploads.Save(c, storage.DirMedicines)
	if err != nil {
		return RespondError(c, err)
	}
	if _, err := h.medicineService.SetImage(id, resp.URL); err != nil {
		h.uploads.Discard(c, storage.DirMedicines, resp)
		return RespondError(c, err)
	}
	return c.JSON(resp)
}
