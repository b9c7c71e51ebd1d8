package repository

import (
	"github.com/smartpot-labs/smartpot-api/internal/models"

	"gorm.io/gorm"
)

// PlantReadingRepository reading history data access.
type PlantReadingRepository interface {
	Create(reading *models.PlantReading) error
	List(filter PlantReadingListFilter) ([]models.PlantReading, int64, error)
}

// GormPlantReadingRepository GORM implementation.
type GormPlantReadingRepository struct {
	db *gorm.DB
}

// NewPlantReadingRepository creates a reading repository.
func NewPlantReadingRepository(db *gorm.DB) *GormPlantReadingRepository {
	return &GormPlantReadingRepository{db: db}
}

// Create appends a reading.
func (r *GormPlantReadingRepository) Create(reading *models.PlantReading) error {
	return r.db.Create(reading).Error
}

// List returns readings matching the filter, newest first.
func (r *GormPlantReadingRepository) List(filter PlantReadingListFilter) ([]models.PlantReading, int64, error) {
	query := r.db.Model(&models.PlantReading{})

	if filter.PlantID > 0 {
		query = query.Where("plant_id = ?", filter.PlantID)
	}
	if filter.AddedFrom != nil {
		query = query.Where("added_at >= ?", *filter.AddedFrom)
	}
	if filter.AddedTo != nil {
		query = query.Where("added_at <= ?", *filter.AddedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var readings []models.PlantReading
	if err := query.Order("added_at DESC").Find(&readings).Error; err != nil {
		return nil, 0, err
	}
	return readings, total, nil
}
