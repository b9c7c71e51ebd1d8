package repository

import (
	"errors"

	"github.com/smartpot-labs/smartpot-api/internal/models"

	"gorm.io/gorm"
)

// DeviceRepository device data access.
type DeviceRepository interface {
	GetByID(id string) (*models.Device, error)
	GetByName(name string) (*models.Device, error)
	GetByToken(token string) (*models.Device, error)
	ListByUser(userID uint) ([]models.Device, error)
	Create(device *models.Device) error
	Delete(device *models.Device) error
}

// GormDeviceRepository GORM implementation.
type GormDeviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a device repository.
func NewDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

// GetByID fetches a device by ID.
func (r *GormDeviceRepository) GetByID(id string) (*models.Device, error) {
	var device models.Device
	if err := r.db.Where("id = ?", id).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// GetByName fetches a device by its unique name.
func (r *GormDeviceRepository) GetByName(name string) (*models.Device, error) {
	var device models.Device
	if err := r.db.Where("name = ?", name).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// GetByToken fetches a device by its pairing token.
func (r *GormDeviceRepository) GetByToken(token string) (*models.Device, error) {
	var device models.Device
	if err := r.db.Where("device_token = ?", token).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// ListByUser returns devices owned by the user.
func (r *GormDeviceRepository) ListByUser(userID uint) ([]models.Device, error) {
	var devices []models.Device
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// Create inserts a device.
func (r *GormDeviceRepository) Create(device *models.Device) error {
	return r.db.Create(device).Error
}

// Delete removes a device.
func (r *GormDeviceRepository) Delete(device *models.Device) error {
	return r.db.Delete(device).Error
}
