package repository

import (
	"errors"

	"github.com/smartpot-labs/smartpot-api/internal/models"

	"gorm.io/gorm"
)

// SensorThresholdRepository threshold data access.
type SensorThresholdRepository interface {
	Get(plantID uint, sensorName string) (*models.SensorThreshold, error)
	ListByPlant(plantID uint) ([]models.SensorThreshold, error)
	ListByPlants(plantIDs []uint) ([]models.SensorThreshold, error)
	Upsert(threshold *models.SensorThreshold) error
	Delete(threshold *models.SensorThreshold) error
}

// GormSensorThresholdRepository GORM implementation.
type GormSensorThresholdRepository struct {
	db *gorm.DB
}

// NewSensorThresholdRepository creates a threshold repository.
func NewSensorThresholdRepository(db *gorm.DB) *GormSensorThresholdRepository {
	return &GormSensorThresholdRepository{db: db}
}

// Get fetches the threshold for one sensor of one plant.
func (r *GormSensorThresholdRepository) Get(plantID uint, sensorName string) (*models.SensorThreshold, error) {
	var threshold models.SensorThreshold
	err := r.db.Where("plant_id = ? AND sensor_name = ?", plantID, sensorName).First(&threshold).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &threshold, nil
}

// ListByPlant returns all thresholds of a plant.
func (r *GormSensorThresholdRepository) ListByPlant(plantID uint) ([]models.SensorThreshold, error) {
	var thresholds []models.SensorThreshold
	if err := r.db.Where("plant_id = ?", plantID).Order("sensor_name").Find(&thresholds).Error; err != nil {
		return nil, err
	}
	return thresholds, nil
}

// ListByPlants returns thresholds for a set of plants.
func (r *GormSensorThresholdRepository) ListByPlants(plantIDs []uint) ([]models.SensorThreshold, error) {
	if len(plantIDs) == 0 {
		return []models.SensorThreshold{}, nil
	}
	var thresholds []models.SensorThreshold
	if err := r.db.Where("plant_id IN ?", plantIDs).Order("plant_id, sensor_name").Find(&thresholds).Error; err != nil {
		return nil, err
	}
	return thresholds, nil
}

// Upsert updates the existing (plant, sensor) row or creates one.
func (r *GormSensorThresholdRepository) Upsert(threshold *models.SensorThreshold) error {
	existing, err := r.Get(threshold.PlantID, threshold.SensorName)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(threshold).Error
	}
	existing.MinValue = threshold.MinValue
	existing.MaxValue = threshold.MaxValue
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}
	*threshold = *existing
	return nil
}

// Delete removes a threshold.
func (r *GormSensorThresholdRepository) Delete(threshold *models.SensorThreshold) error {
	return r.db.Delete(threshold).Error
}
