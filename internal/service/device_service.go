package service

import (
	"fmt"
	"strings"

	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/i18n"
	"github.com/smartpot-labs/smartpot-api/internal/logger"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/queue"
	"github.com/smartpot-labs/smartpot-api/internal/repository"

	"github.com/google/uuid"
)

// DeviceService manages pot pairing and device token delivery.
type DeviceService struct {
	cfg          *config.Config
	deviceRepo   repository.DeviceRepository
	plantRepo    repository.PlantRepository
	queueClient  *queue.Client
	emailService *EmailService
}

// NewDeviceService creates the device service.
func NewDeviceService(cfg *config.Config, deviceRepo repository.DeviceRepository, plantRepo repository.PlantRepository, queueClient *queue.Client, emailService *EmailService) *DeviceService {
	return &DeviceService{
		cfg:          cfg,
		deviceRepo:   deviceRepo,
		plantRepo:    plantRepo,
		queueClient:  queueClient,
		emailService: emailService,
	}
}

// Pair registers a device for the user and mails the pairing token.
// The boolean reports whether the token email went out; delivery
// failure never rolls back the created device.
func (s *DeviceService) Pair(user *models.User, name, deviceType string) (*models.Device, bool, error) {
	if user == nil {
		return nil, false, ErrNotFound
	}
	normalizedType := strings.ToUpper(strings.TrimSpace(deviceType))
	if !isDeviceTypeSupported(normalizedType) {
		return nil, false, ErrInvalidDeviceType
	}
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, false, ErrInvalidDeviceType
	}

	existing, err := s.deviceRepo.GetByName(trimmedName)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return nil, false, ErrDeviceNameExists
	}

	token, err := RandomDeviceToken(s.cfg)
	if err != nil {
		return nil, false, err
	}

	device := &models.Device{
		ID:          newDeviceID(normalizedType),
		Name:        trimmedName,
		Type:        normalizedType,
		DeviceToken: token,
		UserID:      user.ID,
	}
	if err := s.deviceRepo.Create(device); err != nil {
		return nil, false, err
	}

	emailed := s.deliverDeviceToken(user, device)
	return device, emailed, nil
}

// GetForUser fetches a device the user owns.
func (s *DeviceService) GetForUser(user *models.User, deviceID string) (*models.Device, error) {
	if user == nil {
		return nil, ErrNotFound
	}
	device, err := s.deviceRepo.GetByID(strings.TrimSpace(deviceID))
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrNotFound
	}
	if device.UserID != user.ID {
		return nil, ErrForbidden
	}
	return device, nil
}

// ListForUser returns the user's devices.
func (s *DeviceService) ListForUser(user *models.User) ([]models.Device, error) {
	if user == nil {
		return nil, ErrNotFound
	}
	return s.deviceRepo.ListByUser(user.ID)
}

// Delete removes a device and the plant linked to it, if any.
func (s *DeviceService) Delete(user *models.User, deviceID string) error {
	device, err := s.GetForUser(user, deviceID)
	if err != nil {
		return err
	}
	plant, err := s.plantRepo.GetByDeviceID(device.ID)
	if err != nil {
		return err
	}
	if plant != nil {
		if err := s.plantRepo.Delete(plant); err != nil {
			return err
		}
	}
	return s.deviceRepo.Delete(device)
}

// AuthenticateDevice resolves a device token submitted with a reading
// upload. Tokens are compared by value.
func (s *DeviceService) AuthenticateDevice(token string) (*models.Device, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, ErrInvalidCredentials
	}
	device, err := s.deviceRepo.GetByToken(trimmed)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrInvalidCredentials
	}
	return device, nil
}

func (s *DeviceService) deliverDeviceToken(user *models.User, device *models.Device) bool {
	locale := i18n.FromLanguage(user.Language)
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueDeviceTokenEmail(queue.DeviceTokenEmailPayload{
			Email:      user.Email,
			DeviceName: device.Name,
			DeviceID:   device.ID,
			Token:      device.DeviceToken,
			Locale:     locale,
		})
		if err == nil {
			return true
		}
		logger.Warnw("device_token_enqueue_failed", "error", err, "device_id", device.ID)
	}
	if s.emailService == nil {
		return false
	}
	if err := s.emailService.SendDeviceToken(user.Email, device.Name, device.ID, device.DeviceToken, locale); err != nil {
		logger.Warnw("device_token_email_failed", "error", err, "device_id", device.ID)
		return false
	}
	return true
}

func newDeviceID(deviceType string) string {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%s", deviceType, short)
}

func isDeviceTypeSupported(deviceType string) bool {
	for _, supported := range constants.SupportedDeviceTypes {
		if deviceType == supported {
			return true
		}
	}
	return false
}
