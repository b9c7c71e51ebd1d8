package router

import (
	"fmt"
	"strings"

	"github.com/smartpot-labs/smartpot-api/internal/cache"
	"github.com/smartpot-labs/smartpot-api/internal/config"
	"github.com/smartpot-labs/smartpot-api/internal/constants"
	apihandlers "github.com/smartpot-labs/smartpot-api/internal/http/handlers/api"
	"github.com/smartpot-labs/smartpot-api/internal/logger"
	"github.com/smartpot-labs/smartpot-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP route table.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", handler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), handler.Login)
			auth.POST("/refresh", handler.Refresh)
			auth.POST("/forgot-password", handler.ForgotPassword)
			auth.POST("/reset-password", handler.ResetPassword)
		}

		// Pot uploads authenticate with the device token, not a bearer token.
		apiV1.POST("/ingest/readings", handler.IngestReading)

		user := apiV1.Group("")
		user.Use(BearerAuthMiddleware(c.AuthService))
		{
			user.POST("/auth/logout", handler.Logout)

			user.GET("/me", handler.GetCurrentUser)
			user.PUT("/me/timezone", handler.UpdateTimezone)
			user.PUT("/me/language", handler.UpdateLanguage)
			user.PUT("/me/full-name", handler.UpdateFullName)
			user.DELETE("/me", handler.DeleteAccount)
			user.GET("/me/thresholds", handler.ListMyThresholds)

			user.POST("/devices", handler.PairDevice)
			user.GET("/devices", handler.ListDevices)
			user.GET("/devices/:id", handler.GetDevice)
			user.DELETE("/devices/:id", handler.DeleteDevice)

			user.POST("/plants", handler.CreatePlant)
			user.GET("/plants", handler.ListPlants)
			user.GET("/plants/:id", handler.GetPlant)
			user.PUT("/plants/:id/name", handler.RenamePlant)
			user.DELETE("/plants/:id", handler.DeletePlant)
			user.GET("/plants/:id/readings", handler.GetPlantReadings)
			user.PUT("/plants/:id/thresholds", handler.UpsertThreshold)
			user.GET("/plants/:id/thresholds", handler.ListPlantThresholds)
			user.GET("/plants/:id/thresholds/:sensor", handler.GetThreshold)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
