package main

import (
	"fmt"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/constants"
	"github.com/smartpot-labs/smartpot-api/internal/logger"
	"github.com/smartpot-labs/smartpot-api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// Demo owner
	hash, err := bcrypt.GenerateFromPassword([]byte("Demo1234!"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash demo password: %v", err)
	}
	user := models.User{
		FullName:     "Demo Gardener",
		Email:        "demo@smartpot.local",
		PasswordHash: string(hash),
		Language:     constants.DefaultLanguage,
		Timezone:     "Europe/Warsaw",
	}
	var existingUser models.User
	if err := models.DB.Where("email = ?", user.Email).First(&existingUser).Error; err != nil {
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Fatalf("Failed to create demo user: %v", err)
		}
		stdLog.Printf("Created user: %s (password Demo1234!)", user.Email)
	} else {
		user = existingUser
		stdLog.Printf("User already exists: %s", user.Email)
	}

	// Demo device
	device := models.Device{
		ID:          "NODEMCU-demo0001",
		Name:        "windowsill-pot",
		Type:        constants.DeviceTypeNodeMCU,
		DeviceToken: "demo-device-token",
		UserID:      user.ID,
	}
	var existingDevice models.Device
	if err := models.DB.Where("id = ?", device.ID).First(&existingDevice).Error; err != nil {
		if err := models.DB.Create(&device).Error; err != nil {
			stdLog.Fatalf("Failed to create demo device: %v", err)
		}
		stdLog.Printf("Created device: %s (token %s)", device.ID, device.DeviceToken)
	} else {
		device = existingDevice
		stdLog.Printf("Device already exists: %s", device.ID)
	}

	// Demo plant with a recent reading snapshot
	now := time.Now()
	plant := models.Plant{
		Name:        "Basil",
		ImgSrc:      "https://images.unsplash.com/photo-1618375531912-867984bdfd87?w=800",
		Humidity:    41.5,
		Lux:         820,
		Temperature: 22.3,
		LastUpdated: &now,
		DeviceID:    device.ID,
		UserID:      user.ID,
	}
	var existingPlant models.Plant
	if err := models.DB.Where("device_id = ?", plant.DeviceID).First(&existingPlant).Error; err != nil {
		if err := models.DB.Create(&plant).Error; err != nil {
			stdLog.Fatalf("Failed to create demo plant: %v", err)
		}
		stdLog.Printf("Created plant: %s", plant.Name)
	} else {
		plant = existingPlant
		stdLog.Printf("Plant already exists: %s", plant.Name)
	}

	// Alert ranges per sensor
	thresholds := []models.SensorThreshold{
		{PlantID: plant.ID, SensorName: constants.SensorHumidity, MinValue: 30, MaxValue: 70},
		{PlantID: plant.ID, SensorName: constants.SensorLux, MinValue: 200, MaxValue: 10000},
		{PlantID: plant.ID, SensorName: constants.SensorTemperature, MinValue: 15, MaxValue: 30},
	}
	for _, threshold := range thresholds {
		var existing models.SensorThreshold
		if err := models.DB.Where("plant_id = ? AND sensor_name = ?", threshold.PlantID, threshold.SensorName).First(&existing).Error; err != nil {
			if err := models.DB.Create(&threshold).Error; err != nil {
				stdLog.Printf("Failed to create threshold %s: %v", threshold.SensorName, err)
			} else {
				stdLog.Printf("Created threshold: %s", threshold.SensorName)
			}
		} else {
			existing.MinValue = threshold.MinValue
			existing.MaxValue = threshold.MaxValue
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update threshold %s: %v", threshold.SensorName, err)
			} else {
				stdLog.Printf("Updated threshold: %s", threshold.SensorName)
			}
		}
	}

	// A few history samples so charts have something to draw
	samples := []models.PlantReading{
		{PlantID: plant.ID, Humidity: 44.1, Lux: 640, Temperature: 21.8, AddedAt: now.Add(-2 * time.Hour)},
		{PlantID: plant.ID, Humidity: 42.7, Lux: 910, Temperature: 22.1, AddedAt: now.Add(-time.Hour)},
		{PlantID: plant.ID, Humidity: 41.5, Lux: 820, Temperature: 22.3, AddedAt: now},
	}
	var readingCount int64
	models.DB.Model(&models.PlantReading{}).Where("plant_id = ?", plant.ID).Count(&readingCount)
	if readingCount == 0 {
		for _, sample := range samples {
			if err := models.DB.Create(&sample).Error; err != nil {
				stdLog.Printf("Failed to create reading: %v", err)
			}
		}
		stdLog.Printf("Created %d readings", len(samples))
	} else {
		stdLog.Printf("Readings already present: %d", readingCount)
	}

	fmt.Println("\nDemo data ready:")
	fmt.Println("- 1 user (demo@smartpot.local / Demo1234!)")
	fmt.Println("- 1 device (NODEMCU-demo0001)")
	fmt.Println("- 1 plant with 3 thresholds and 3 readings")
}
