package repository

import (
	"errors"

	"github.com/smartpot-labs/smartpot-api/internal/models"

	"gorm.io/gorm"
)

// PlantRepository plant data access.
type PlantRepository interface {
	GetByID(id uint) (*models.Plant, error)
	GetByDeviceID(deviceID string) (*models.Plant, error)
	ListByUser(userID uint) ([]models.Plant, error)
	Create(plant *models.Plant) error
	Update(plant *models.Plant) error
	Delete(plant *models.Plant) error
}

// GormPlantRepository GORM implementation.
type GormPlantRepository struct {
	db *gorm.DB
}

// NewPlantRepository creates a plant repository.
func NewPlantRepository(db *gorm.DB) *GormPlantRepository {
	return &GormPlantRepository{db: db}
}

// GetByID fetches a plant by ID.
func (r *GormPlantRepository) GetByID(id uint) (*models.Plant, error) {
	var plant models.Plant
	if err := r.db.First(&plant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plant, nil
}

// GetByDeviceID fetches the plant linked to the device, if any.
func (r *GormPlantRepository) GetByDeviceID(deviceID string) (*models.Plant, error) {
	var plant models.Plant
	if err := r.db.Where("device_id = ?", deviceID).First(&plant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plant, nil
}

// ListByUser returns plants owned by the user.
func (r *GormPlantRepository) ListByUser(userID uint) ([]models.Plant, error) {
	var plants []models.Plant
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

// Create inserts a plant.
func (r *GormPlantRepository) Create(plant *models.Plant) error {
	return r.db.Create(plant).Error
}

// Update persists a plant.
func (r *GormPlantRepository) Update(plant *models.Plant) error {
	return r.db.Save(plant).Error
}

// Delete removes a plant with its readings and thresholds.
func (r *GormPlantRepository) Delete(plant *models.Plant) error {
	return r.db.Select("Readings", "Thresholds").Delete(plant).Error
}
