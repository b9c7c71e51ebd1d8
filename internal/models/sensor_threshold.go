package models

import (
	"time"
)

// SensorThreshold is the alert range for one sensor of one plant.
// One row per (plant, sensor) pair; writes are update-or-create.
type SensorThreshold struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PlantID     uint      `gorm:"index;uniqueIndex:idx_plant_sensor;not null" json:"plant_id"`
	SensorName  string    `gorm:"uniqueIndex:idx_plant_sensor;not null" json:"sensor_name"` // temp / lux / hum
	MinValue    float64   `json:"min_value"`
	MaxValue    float64   `json:"max_value"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// TableName sets the table name.
func (SensorThreshold) TableName() string {
	return "sensor_thresholds"
}
