package provider

import (
	"github.com/smartpot-labs/smartpot-api/internal/cache"
	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/logger"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/queue"
	"github.com/smartpot-labs/smartpot-api/internal/repository"
	"github.com/smartpot-labs/smartpot-api/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo            repository.UserRepository
	RevokedTokenRepo    repository.RevokedTokenRepository
	DeviceRepo          repository.DeviceRepository
	PlantRepo           repository.PlantRepository
	PlantReadingRepo    repository.PlantReadingRepository
	SensorThresholdRepo repository.SensorThresholdRepository

	// Services
	AuthService      *service.AuthService
	UserService      *service.UserService
	DeviceService    *service.DeviceService
	PlantService     *service.PlantService
	ThresholdService *service.ThresholdService
	EmailService     *service.EmailService
}

// NewContainer builds the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RevokedTokenRepo = repository.NewRevokedTokenRepository(db)
	c.DeviceRepo = repository.NewDeviceRepository(db)
	c.PlantRepo = repository.NewPlantRepository(db)
	c.PlantReadingRepo = repository.NewPlantReadingRepository(db)
	c.SensorThresholdRepo = repository.NewSensorThresholdRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.RevokedTokenRepo, c.QueueClient, c.EmailService)
	c.UserService = service.NewUserService(c.Config, c.UserRepo, c.RevokedTokenRepo)
	c.DeviceService = service.NewDeviceService(c.Config, c.DeviceRepo, c.PlantRepo, c.QueueClient, c.EmailService)
	c.PlantService = service.NewPlantService(c.PlantRepo, c.DeviceRepo, c.PlantReadingRepo)
	c.ThresholdService = service.NewThresholdService(c.SensorThresholdRepo, c.PlantRepo)
}
