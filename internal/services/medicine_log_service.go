package services

import (
	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrMedicineLogNotFound = apperr.NotFound("Medicine log not found")

type MedicineLogFilter struct {
	UserID     *uint
	MedicineID *uint
}

type MedicineLogService struct {
	db *gorm.DB
}

func NewMedicineLogService(db *gorm.DB) *MedicineLogService {
	return &MedicineLogService{db: db}
}

func (s *MedicineLogService) Create(req *dto.CreateMedicineLogRequest) (*models.MedicineLog, error) {
	switch {
	case req.UserID == 0:
		return nil, apperr.Validation("user_id is required")
	case req.MedicineID == 0:
		return nil, apperr.Validation("medicine_id is required")
	case req.Status == nil:
		return nil, apperr.Validation("status is required")
	case !req.Status.Valid():
		return nil, apperr.Validationf("status must be one of pending, taken, missed, snoozed; got %q", *req.Status)
	case req.ScheduledAt == nil:
		return nil, apperr.Validation("scheduled_at is required")
	}

	if err := ensureExists(s.db, &models.User{}, req.UserID, ErrUserNotFound); err != nil {
		return nil, err
	}
	if err := ensureExists(s.db, &models.Medicine{}, req.MedicineID, ErrMedicineNotFound); err != nil {
		return nil, err
	}
	if req.ReminderID != nil {
		if err := ensureExists(s.db, &models.Reminder{}, *req.ReminderID, ErrReminderNotFound); err != nil {
			return nil, err
		}
	}

	log := models.MedicineLog{
		UserID:      req.UserID,
		MedicineID:  req.MedicineID,
		ReminderID:  req.ReminderID,
		Status:      *req.Status,
		ScheduledAt: *req.ScheduledAt,
		Notes:       req.Notes,
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, wrapInternal("create medicine log", err)
	}
	return &log, nil
}

// List returns logs newest scheduled first.
func (s *MedicineLogService) List(filter MedicineLogFilter) ([]models.MedicineLog, error) {
	query := s.db.Model(&models.MedicineLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.MedicineID != nil {
		query = query.Where("medicine_id = ?", *filter.MedicineID)
	}

	var logs []models.MedicineLog
	if err := query.Order("scheduled_at DESC").Find(&logs).Error; err != nil {
		return nil, wrapInternal("list medicine logs", err)
	}
	return logs, nil
}

// Missed returns logs still pending or marked missed.
func (s *MedicineLogService) Missed(userID *uint) ([]models.MedicineLog, error) {
	query := s.db.Where("status IN ?", []models.LogStatus{models.StatusMissed, models.StatusPending})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var logs []models.MedicineLog
	if err := query.Order("scheduled_at DESC").Find(&logs).Error; err != nil {
		return nil, wrapInternal("list missed medicine logs", err)
	}
	return logs, nil
}

func (s *MedicineLogService) Update(id uint, req *dto.UpdateMedicineLogRequest) (*models.MedicineLog, error) {
	var log models.MedicineLog
	if err := findByID(s.db, &log, id, ErrMedicineLogNotFound); err != nil {
		return nil, err
	}

	u := updates{}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperr.Validationf("status must be one of pending, taken, missed, snoozed; got %q", *req.Status)
		}
		u["status"] = *req.Status
	}
	if req.SnoozeCount != nil {
		if *req.SnoozeCount < log.SnoozeCount {
			return nil, apperr.Validationf("snooze_count cannot decrease from %d to %d", log.SnoozeCount, *req.SnoozeCount)
		}
		u["snooze_count"] = *req.SnoozeCount
	}
	if req.TakenAt != nil {
		u["taken_at"] = *req.TakenAt
	}
	u.setString("notes", req.Notes)

	if err := apply(s.db, &log, u); err != nil {
		return nil, err
	}
	return &log, nil
}
