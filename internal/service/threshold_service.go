package service

import (
	"strings"

	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/repository"
)

// ThresholdService manages per plant alert ranges. Writes are
// update-or-create on the (plant, sensor) pair.
type ThresholdService struct {
	thresholdRepo repository.SensorThresholdRepository
	plantRepo     repository.PlantRepository
}

// NewThresholdService creates the threshold service.
func NewThresholdService(thresholdRepo repository.SensorThresholdRepository, plantRepo repository.PlantRepository) *ThresholdService {
	return &ThresholdService{
		thresholdRepo: thresholdRepo,
		plantRepo:     plantRepo,
	}
}

// Upsert sets the range for one sensor of a plant the user owns.
func (s *ThresholdService) Upsert(user *models.User, plantID uint, sensorName string, minValue, maxValue float64) (*models.SensorThreshold, error) {
	plant, err := s.ownedPlant(user, plantID)
	if err != nil {
		return nil, err
	}
	normalized := strings.ToLower(strings.TrimSpace(sensorName))
	if !isSensorSupported(normalized) {
		return nil, ErrInvalidSensorName
	}

	threshold := &models.SensorThreshold{
		PlantID:    plant.ID,
		SensorName: normalized,
		MinValue:   minValue,
		MaxValue:   maxValue,
	}
	if err := s.thresholdRepo.Upsert(threshold); err != nil {
		return nil, err
	}
	return threshold, nil
}

// Get fetches the range for one sensor of a plant the user owns.
func (s *ThresholdService) Get(user *models.User, plantID uint, sensorName string) (*models.SensorThreshold, error) {
	plant, err := s.ownedPlant(user, plantID)
	if err != nil {
		return nil, err
	}
	normalized := strings.ToLower(strings.TrimSpace(sensorName))
	if !isSensorSupported(normalized) {
		return nil, ErrInvalidSensorName
	}
	threshold, err := s.thresholdRepo.Get(plant.ID, normalized)
	if err != nil {
		return nil, err
	}
	if threshold == nil {
		return nil, ErrNotFound
	}
	return threshold, nil
}

// ListForPlant returns all ranges of one plant.
func (s *ThresholdService) ListForPlant(user *models.User, plantID uint) ([]models.SensorThreshold, error) {
	plant, err := s.ownedPlant(user, plantID)
	if err != nil {
		return nil, err
	}
	return s.thresholdRepo.ListByPlant(plant.ID)
}

// ListForUser returns ranges across all the user's plants.
func (s *ThresholdService) ListForUser(user *models.User) ([]models.SensorThreshold, error) {
	if user == nil {
		return nil, ErrNotFound
	}
	plants, err := s.plantRepo.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(plants))
	for _, plant := range plants {
		ids = append(ids, plant.ID)
	}
	return s.thresholdRepo.ListByPlants(ids)
}

func (s *ThresholdService) ownedPlant(user *models.User, plantID uint) (*models.Plant, error) {
	if user == nil {
		return nil, ErrNotFound
	}
	plant, err := s.plantRepo.GetByID(plantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, ErrNotFound
	}
	if plant.UserID != user.ID {
		return nil, ErrForbidden
	}
	return plant, nil
}

func isSensorSupported(sensorName string) bool {
	for _, supported := range constants.SupportedSensors {
		if sensorName == supported {
			return true
		}
	}
	return false
}
