package models

import "time"

type LogStatus string

const (
	StatusPending LogStatus = "pending"
	StatusTaken   LogStatus = "taken"
	StatusMissed  LogStatus = "missed"
	StatusSnoozed LogStatus = "snoozed"
)

func (s LogStatus) Valid() bool {
	switch s {
	case StatusPending, StatusTaken, StatusMissed, StatusSnoozed:
		return true
	}
	return false
}

// MedicineLog is one scheduled dose and how it was resolved.
type MedicineLog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	MedicineID  uint       `gorm:"not null;index" json:"medicine_id"`
	ReminderID  *uint      `gorm:"index" json:"reminder_id"`
	Status      LogStatus  `gorm:"not null;size:20;index" json:"status"`
	ScheduledAt time.Time  `gorm:"not null;index" json:"scheduled_at"`
	TakenAt     *time.Time `json:"taken_at"`
	SnoozeCount int        `gorm:"not null;default:0" json:"snooze_count"`
	Notes       *string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`

	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Medicine Medicine  `gorm:"foreignKey:MedicineID" json:"-"`
	Reminder *Reminder `gorm:"foreignKey:ReminderID" json:"-"`
}
