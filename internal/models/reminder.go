package models

import "time"

// Reminder is a recurring time of day ("HH:MM") for taking a medicine.
type Reminder struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MedicineID    uint      `gorm:"not null;index" json:"medicine_id"`
	ScheduledTime string    `gorm:"not null;size:5" json:"scheduled_time"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"-"`

	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"-"`
}
