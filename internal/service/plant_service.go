package service

import (
	"strings"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/repository"
)

// PlantService manages plants, the device link and reading ingestion.
type PlantService struct {
	plantRepo   repository.PlantRepository
	deviceRepo  repository.DeviceRepository
	readingRepo repository.PlantReadingRepository
}

// NewPlantService creates the plant service.
func NewPlantService(plantRepo repository.PlantRepository, deviceRepo repository.DeviceRepository, readingRepo repository.PlantReadingRepository) *PlantService {
	return &PlantService{
		plantRepo:   plantRepo,
		deviceRepo:  deviceRepo,
		readingRepo: readingRepo,
	}
}

// Create links a new plant to one of the user's devices. An unknown
// device is not found; a device already holding a plant is a conflict.
func (s *PlantService) Create(user *models.User, name, imgSrc, deviceID string) (*models.Plant, error) {
	if user == nil {
		return nil, ErrNotFound
	}
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, ErrNotFound
	}

	device, err := s.deviceRepo.GetByID(strings.TrimSpace(deviceID))
	if err != nil {
		return nil, err
	}
	if device == nil || device.UserID != user.ID {
		return nil, ErrNotFound
	}

	linked, err := s.plantRepo.GetByDeviceID(device.ID)
	if err != nil {
		return nil, err
	}
	if linked != nil {
		return nil, ErrDeviceLinked
	}

	plant := &models.Plant{
		Name:     trimmedName,
		ImgSrc:   strings.TrimSpace(imgSrc),
		DeviceID: device.ID,
		UserID:   user.ID,
	}
	if err := s.plantRepo.Create(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// GetForUser fetches a plant the user owns.
func (s *PlantService) GetForUser(user *models.User, plantID uint) (*models.Plant, error) {
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

// ListForUser returns the user's plants.
func (s *PlantService) ListForUser(user *models.User) ([]models.Plant, error) {
	if user == nil {
		return nil, ErrNotFound
	}
	return s.plantRepo.ListByUser(user.ID)
}

// Rename updates the plant name.
func (s *PlantService) Rename(user *models.User, plantID uint, name string) (*models.Plant, error) {
	plant, err := s.GetForUser(user, plantID)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrNotFound
	}
	plant.Name = trimmed
	if err := s.plantRepo.Update(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// Delete removes a plant with its history and thresholds.
func (s *PlantService) Delete(user *models.User, plantID uint) error {
	plant, err := s.GetForUser(user, plantID)
	if err != nil {
		return err
	}
	return s.plantRepo.Delete(plant)
}

// IngestReading accepts a sensor sample authenticated by device token.
// It refreshes the plant snapshot and appends a history row.
func (s *PlantService) IngestReading(device *models.Device, humidity, lux, temperature float64) (*models.Plant, error) {
	if device == nil {
		return nil, ErrInvalidCredentials
	}
	if err := validateReading(humidity, lux, temperature); err != nil {
		return nil, err
	}

	plant, err := s.plantRepo.GetByDeviceID(device.ID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	plant.Humidity = humidity
	plant.Lux = lux
	plant.Temperature = temperature
	plant.LastUpdated = &now
	if err := s.plantRepo.Update(plant); err != nil {
		return nil, err
	}

	reading := &models.PlantReading{
		PlantID:     plant.ID,
		Humidity:    humidity,
		Lux:         lux,
		Temperature: temperature,
		AddedAt:     now,
	}
	if err := s.readingRepo.Create(reading); err != nil {
		return nil, err
	}
	return plant, nil
}

// History returns the reading history of a plant, newest first.
func (s *PlantService) History(user *models.User, plantID uint, page, pageSize int) ([]models.PlantReading, int64, error) {
	plant, err := s.GetForUser(user, plantID)
	if err != nil {
		return nil, 0, err
	}
	return s.readingRepo.List(repository.PlantReadingListFilter{
		Page:     page,
		PageSize: pageSize,
		PlantID:  plant.ID,
	})
}

func validateReading(humidity, lux, temperature float64) error {
	if humidity < constants.HumidityMin {
		return ErrReadingOutOfRange
	}
	if lux < constants.LuxMin || lux > constants.LuxMax {
		return ErrReadingOutOfRange
	}
	if temperature < constants.TemperatureMin || temperature > constants.TemperatureMax {
		return ErrReadingOutOfRange
	}
	return nil
}
