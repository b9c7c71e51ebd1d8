package models

import (
	"time"
)

// User account record.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	FullName     string    `gorm:"default:''" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"not null;default:false" json:"is_active"` // true while the user holds a live session
	Language     string    `gorm:"default:'ENG'" json:"language"`
	Timezone     string    `gorm:"default:'UTC'" json:"timezone"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"index" json:"updated_at"`

	Devices []Device `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Plants  []Plant  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
