package services

import (
	"strings"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrReminderNotFound = apperr.NotFound("Reminder not found")

type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// Create stores scheduled_time as given; "HH:MM" is a convention only.
func (s *ReminderService) Create(req *dto.CreateReminderRequest) (*models.Reminder, error) {
	if req.MedicineID == 0 {
		return nil, apperr.Validation("medicine_id is required")
	}
	if strings.TrimSpace(req.ScheduledTime) == "" {
		return nil, apperr.Validation("scheduled_time is required")
	}
	if err := ensureExists(s.db, &models.Medicine{}, req.MedicineID, ErrMedicineNotFound); err != nil {
		return nil, err
	}

	reminder := models.Reminder{
		MedicineID:    req.MedicineID,
		ScheduledTime: req.ScheduledTime,
		IsActive:      true,
	}
	if err := s.db.Create(&reminder).Error; err != nil {
		return nil, wrapInternal("create reminder", err)
	}
	return &reminder, nil
}

// List returns active reminders, optionally for one medicine.
func (s *ReminderService) List(medicineID *uint) ([]models.Reminder, error) {
	query := s.db.Where("is_active = ?", true)
	if medicineID != nil {
		query = query.Where("medicine_id = ?", *medicineID)
	}

	var reminders []models.Reminder
	if err := query.Order("id").Find(&reminders).Error; err != nil {
		return nil, wrapInternal("list reminders", err)
	}
	return reminders, nil
}

func (s *ReminderService) Delete(id uint) error {
	var reminder models.Reminder
	if err := findByID(s.db, &reminder, id, ErrReminderNotFound); err != nil {
		return err
	}
	return wrapInternal("delete reminder", s.db.Model(&reminder).Update("is_active", false).Error)
}
