package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPlantServiceTest(t *testing.T) (*PlantService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:plant_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Device{}, &models.Plant{}, &models.PlantReading{}, &models.SensorThreshold{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewPlantService(repository.NewPlantRepository(db), repository.NewDeviceRepository(db), repository.NewPlantReadingRepository(db))
	return svc, db
}

func createPlantOwner(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		FullName:     "Plant Owner",
		Email:        email,
		PasswordHash: "hash",
		IsActive:     true,
		Language:     constants.DefaultLanguage,
		Timezone:     constants.DefaultTimezone,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createOwnedDevice(t *testing.T, db *gorm.DB, userID uint, id string) *models.Device {
	t.Helper()
	device := &models.Device{
		ID:          id,
		Name:        "pot-" + id,
		Type:        constants.DeviceTypeNodeMCU,
		DeviceToken: "token-" + id,
		UserID:      userID,
	}
	if err := db.Create(device).Error; err != nil {
		t.Fatalf("create device failed: %v", err)
	}
	return device
}

func TestCreatePlant(t *testing.T) {
	svc, db := setupPlantServiceTest(t)
	owner := createPlantOwner(t, db, "plant@example.com")
	other := createPlantOwner(t, db, "plant-other@example.com")
	device := createOwnedDevice(t, db, owner.ID, "NODEMCU-plant001")

	plant, err := svc.Create(owner, "  Basil ", " https://img.example.com/basil.jpg ", device.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if plant.Name != "Basil" {
		t.Fatalf("name should be trimmed, got %q", plant.Name)
	}
	if plant.ImgSrc != "https://img.example.com/basil.jpg" {
		t.Fatalf("image source should be trimmed, got %q", plant.ImgSrc)
	}
	if plant.DeviceID != device.ID || plant.UserID != owner.ID {
		t.Fatalf("plant should link device and owner")
	}

	// One plant per device.
	if _, err := svc.Create(owner, "Mint", "", device.ID); !errors.Is(err, ErrDeviceLinked) {
		t.Fatalf("linked device: expected ErrDeviceLinked, got %v", err)
	}

	// Somebody else's device looks like it does not exist.
	if _, err := svc.Create(other, "Mint", "", device.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign device: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Create(owner, "Mint", "", "NODEMCU-missing0"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown device: expected ErrNotFound, got %v", err)
	}
}

func TestRenameAndDeletePlant(t *testing.T) {
	svc, db := setupPlantServiceTest(t)
	owner := createPlantOwner(t, db, "rename@example.com")
	other := createPlantOwner(t, db, "rename-other@example.com")
	device := createOwnedDevice(t, db, owner.ID, "ESP-rename000001")

	plant, err := svc.Create(owner, "Fern", "", device.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	renamed, err := svc.Rename(owner, plant.ID, " Boston Fern ")
	if err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if renamed.Name != "Boston Fern" {
		t.Fatalf("name want Boston Fern got %q", renamed.Name)
	}

	if _, err := svc.Rename(other, plant.ID, "Stolen"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign rename: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(other, plant.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign delete: expected ErrForbidden, got %v", err)
	}

	if err := svc.Delete(owner, plant.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetForUser(owner, plant.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted plant: expected ErrNotFound, got %v", err)
	}
}

func TestIngestReadingUpdatesSnapshotAndHistory(t *testing.T) {
	svc, db := setupPlantServiceTest(t)
	owner := createPlantOwner(t, db, "ingest@example.com")
	device := createOwnedDevice(t, db, owner.ID, "NODEMCU-ingest01")

	plant, err := svc.Create(owner, "Cactus", "", device.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if plant.LastUpdated != nil {
		t.Fatalf("fresh plant should have no snapshot timestamp")
	}

	updated, err := svc.IngestReading(device, 45.5, 820, 22.3)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if updated.Humidity != 45.5 || updated.Lux != 820 || updated.Temperature != 22.3 {
		t.Fatalf("snapshot not updated: %+v", updated)
	}
	if updated.LastUpdated == nil {
		t.Fatalf("snapshot timestamp should be set")
	}

	if _, err := svc.IngestReading(device, 50, 900, 23); err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}

	readings, total, err := svc.History(owner, plant.ID, 1, 10)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if total != 2 || len(readings) != 2 {
		t.Fatalf("expected 2 history rows, got total=%d len=%d", total, len(readings))
	}
	if readings[0].Humidity != 50 {
		t.Fatalf("history should be newest first, got %+v", readings[0])
	}
}

func TestIngestReadingValidation(t *testing.T) {
	svc, db := setupPlantServiceTest(t)
	owner := createPlantOwner(t, db, "bounds@example.com")
	device := createOwnedDevice(t, db, owner.ID, "ESP-bounds000001")
	orphan := createOwnedDevice(t, db, owner.ID, "ESP-orphan000001")

	if _, err := svc.Create(owner, "Ivy", "", device.ID); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cases := []struct {
		name        string
		humidity    float64
		lux         float64
		temperature float64
	}{
		{"negative humidity", -1, 500, 20},
		{"lux below range", 40, -1, 20},
		{"lux above range", 40, 70000, 20},
		{"temperature too cold", 40, 500, -50},
		{"temperature too hot", 40, 500, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.IngestReading(device, tc.humidity, tc.lux, tc.temperature); !errors.Is(err, ErrReadingOutOfRange) {
				t.Fatalf("expected ErrReadingOutOfRange, got %v", err)
			}
		})
	}

	// Boundary values pass.
	if _, err := svc.IngestReading(device, 0, constants.LuxMax, constants.TemperatureMin); err != nil {
		t.Fatalf("boundary reading should pass: %v", err)
	}

	// A device without a plant has nowhere to record.
	if _, err := svc.IngestReading(orphan, 40, 500, 20); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unlinked device: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.IngestReading(nil, 40, 500, 20); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("nil device: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestHistoryPaging(t *testing.T) {
	svc, db := setupPlantServiceTest(t)
	owner := createPlantOwner(t, db, "paging@example.com")
	device := createOwnedDevice(t, db, owner.ID, "NODEMCU-paging01")

	plant, err := svc.Create(owner, "Aloe", "", device.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		reading := &models.PlantReading{
			PlantID:     plant.ID,
			Humidity:    float64(40 + i),
			Lux:         500,
			Temperature: 21,
			AddedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(reading).Error; err != nil {
			t.Fatalf("create reading %d failed: %v", i, err)
		}
	}

	first, total, err := svc.History(owner, plant.ID, 1, 2)
	if err != nil {
		t.Fatalf("history page 1 failed: %v", err)
	}
	if total != 5 || len(first) != 2 {
		t.Fatalf("page 1 want total=5 len=2 got total=%d len=%d", total, len(first))
	}
	if first[0].Humidity != 44 {
		t.Fatalf("page 1 should start with the newest reading, got %v", first[0].Humidity)
	}

	last, _, err := svc.History(owner, plant.ID, 3, 2)
	if err != nil {
		t.Fatalf("history page 3 failed: %v", err)
	}
	if len(last) != 1 {
		t.Fatalf("page 3 want len=1 got %d", len(last))
	}
	if last[0].Humidity != 40 {
		t.Fatalf("page 3 should end with the oldest reading, got %v", last[0].Humidity)
	}
}
