package models

import "time"

// Bookmark is a quick-dial contact. ContactType is "phone" or "whatsapp"
// by convention and is not enforced.
type Bookmark struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	PhoneNumber string    `gorm:"not null;size:50" json:"phone_number"`
	ContactType string    `gorm:"not null;size:20" json:"contact_type"`
	PhotoURL    *string   `gorm:"size:512" json:"photo_url"`
	AvatarEmoji *string   `gorm:"size:16" json:"avatar_emoji"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
