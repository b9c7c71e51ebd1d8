package models

import (
	"time"
)

// Plant holds the latest sensor snapshot for one pot. A device links
// to at most one plant.
type Plant struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	ImgSrc      string     `gorm:"default:''" json:"imgsrc"`
	Humidity    float64    `json:"humidity"`
	Lux         float64    `json:"lux"`
	Temperature float64    `json:"temperature"`
	LastUpdated *time.Time `json:"last_updated"`
	DeviceID    string     `gorm:"uniqueIndex;size:64;not null" json:"device_id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Readings   []PlantReading    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Thresholds []SensorThreshold `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName sets the table name.
func (Plant) TableName() string {
	return "plants"
}
