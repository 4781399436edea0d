package models

import "time"

// User is a family member whose medicines and readings are tracked.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	PhotoURL    *string   `gorm:"size:512" json:"photo_url"`
	AvatarEmoji *string   `gorm:"size:16" json:"avatar_emoji"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Medicines    []Medicine    `gorm:"foreignKey:UserID" json:"-"`
	MedicineLogs []MedicineLog `gorm:"foreignKey:UserID" json:"-"`
	InsulinLogs  []InsulinLog  `gorm:"foreignKey:UserID" json:"-"`
}
