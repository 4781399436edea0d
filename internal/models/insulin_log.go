package models

import "time"

// InsulinLog is one glucose reading and the insulin given for it.
// SuggestedDosage is set once at creation.
type InsulinLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_insulin_user_recorded" json:"user_id"`
	MedicineLogID   *uint     `gorm:"index" json:"medicine_log_id"`
	GlucoseReading  float64   `gorm:"not null" json:"glucose_reading"`
	InsulinDosage   float64   `gorm:"not null" json:"insulin_dosage"`
	SuggestedDosage *float64  `json:"suggested_dosage"`
	Notes           *string   `gorm:"type:text" json:"notes"`
	RecordedAt      time.Time `gorm:"not null;index:idx_insulin_user_recorded" json:"recorded_at"`
	CreatedAt       time.Time `json:"created_at"`

	User        User         `gorm:"foreignKey:UserID" json:"-"`
	MedicineLog *MedicineLog `gorm:"foreignKey:MedicineLogID" json:"-"`
}
