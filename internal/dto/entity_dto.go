package dto

import (
	"time"

	"github.com/bewithdhanu/medicine-tracker/internal/models"
)

// Update requests use pointer fields: nil means the field was absent and
// is left untouched.

type CreateUserRequest struct {
	Name        string  `json:"name"`
	PhotoURL    *string `json:"photo_url"`
	AvatarEmoji *string `json:"avatar_emoji"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	PhotoURL    *string `json:"photo_url"`
	AvatarEmoji *string `json:"avatar_emoji"`
}

type CreateMedicineRequest struct {
	UserID       uint                `json:"user_id"`
	Name         string              `json:"name"`
	Type         models.MedicineType `json:"type"`
	Dosage       *string             `json:"dosage"`
	Instructions *string             `json:"instructions"`
	ImageURL     *string             `json:"image_url"`
}

type UpdateMedicineRequest struct {
	Name         *string `json:"name"`
	Dosage       *string `json:"dosage"`
	Instructions *string `json:"instructions"`
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
}

type CreateReminderRequest struct {
	MedicineID    uint   `json:"medicine_id"`
	ScheduledTime string `json:"scheduled_time"`
}

type CreateMedicineLogRequest struct {
	UserID      uint              `json:"user_id"`
	MedicineID  uint              `json:"medicine_id"`
	ReminderID  *uint             `json:"reminder_id"`
	Status      *models.LogStatus `json:"status"`
	ScheduledAt *time.Time        `json:"scheduled_at"`
	Notes       *string           `json:"notes"`
}

type UpdateMedicineLogRequest struct {
	Status      *models.LogStatus `json:"status"`
	TakenAt     *time.Time        `json:"taken_at"`
	SnoozeCount *int              `json:"snooze_count"`
	Notes       *string           `json:"notes"`
}

// GlucoseReading and InsulinDosage are pointers so a missing value can be
// told apart from zero.
type CreateInsulinLogRequest struct {
	UserID          uint       `json:"user_id"`
	MedicineLogID   *uint      `json:"medicine_log_id"`
	GlucoseReading  *float64   `json:"glucose_reading"`
	InsulinDosage   *float64   `json:"insulin_dosage"`
	SuggestedDosage *float64   `json:"suggested_dosage"`
	Notes           *string    `json:"notes"`
	RecordedAt      *time.Time `json:"recorded_at"`
}

type CreateBookmarkRequest struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phone_number"`
	ContactType string  `json:"contact_type"`
	PhotoURL    *string `json:"photo_url"`
	AvatarEmoji *string `json:"avatar_emoji"`
}

type UpdateBookmarkRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	ContactType *string `json:"contact_type"`
	PhotoURL    *string `json:"photo_url"`
	AvatarEmoji *string `json:"avatar_emoji"`
	IsActive    *bool   `json:"is_active"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type StatsResponse struct {
	UserID       uint                `json:"user_id"`
	Period       string              `json:"period"`
	TotalEntries int                 `json:"total_entries"`
	AvgGlucose   float64             `json:"avg_glucose"`
	AvgInsulin   float64             `json:"avg_insulin"`
	MinGlucose   float64             `json:"min_glucose"`
	MaxGlucose   float64             `json:"max_glucose"`
	Logs         []models.InsulinLog `json:"logs,omitempty"`
}

type DosageSuggestion struct {
	GlucoseReading  float64 `json:"glucose_reading"`
	SuggestedDosage float64 `json:"suggested_dosage"`
	Unit            string  `json:"unit"`
	Note            string  `json:"note"`
}
