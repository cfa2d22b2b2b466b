package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ustahub_backend/database"
	"ustahub_backend/internal/config"
	"ustahub_backend/internal/email"
	"ustahub_backend/internal/handlers"
	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/middleware"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/internal/routes"
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/validator"
	"ustahub_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewInvitationWorker(gormDB, repositories.NewInvitationRepository()).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the gin engine with all middleware and routes. Tests
// call this directly against their own database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	var emailService email.Provider
	smtpProvider := email.NewSMTPProvider(cfg)
	if smtpProvider.Validate() == nil {
		emailService = smtpProvider
	} else {
		logger.Warn("SMTP not configured, outbound email disabled")
		emailService = email.NewNoopProvider()
	}

	serviceContainer := services.NewServiceContainer(emailService)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
		middleware.DBMiddleware(gormDB),
	)
	return ginRouter
}
