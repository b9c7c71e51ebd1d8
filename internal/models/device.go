package models

import (
	"time"
)

// Device is a paired sensor pot. The ID is assigned at pairing time as
// "<TYPE>-<shortid>"; the token authenticates reading uploads and is
// compared by value.
type Device struct {
	ID          string    `gorm:"primarykey;size:64" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Type        string    `gorm:"not null" json:"type"` // NODEMCU / ESP
	DeviceToken string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (Device) TableName() string {
	return "devices"
}
