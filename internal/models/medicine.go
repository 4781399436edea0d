package models

import "time"

type MedicineType string

const (
	MedicineTablet    MedicineType = "tablet"
	MedicineInjection MedicineType = "injection"
	MedicineInsulin   MedicineType = "insulin"
)

func (t MedicineType) Valid() bool {
	switch t {
	case MedicineTablet, MedicineInjection, MedicineInsulin:
		return true
	}
	return false
}

// Medicine belongs to one user. Deleting a medicine clears IsActive.
type Medicine struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	Name         string       `gorm:"not null;size:255" json:"name"`
	Type         MedicineType `gorm:"not null;size:20" json:"type"`
	Dosage       *string      `gorm:"size:255" json:"dosage"`
	Instructions *string      `gorm:"type:text" json:"instructions"`
	ImageURL     *string      `gorm:"size:512" json:"image_url"`
	IsActive     bool         `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	User      User       `gorm:"foreignKey:UserID" json:"-"`
	Reminders []Reminder `gorm:"foreignKey:MedicineID" json:"-"`
}
