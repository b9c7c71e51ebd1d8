package models

import (
	"time"
)

// PlantReading is one historical sensor sample.
type PlantReading struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PlantID     uint      `gorm:"index;not null" json:"plant_id"`
	Humidity    float64   `json:"humidity"`
	Lux         float64   `json:"lux"`
	Temperature float64   `json:"temperature"`
	AddedAt     time.Time `gorm:"index;not null" json:"added_at"`
}

// TableName sets the table name.
func (PlantReading) TableName() string {
	return "plant_readings"
}
