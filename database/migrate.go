package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ustahub_backend/internal/config"
	"ustahub_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm initializes GORM with the configured DSN.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}
	return Migrate(db)
}

// Migrate runs the schema migration on the given connection. Tests use
// this directly with an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Job{},
		&models.JobProposal{},
		&models.Milestone{},
		&models.Contract{},
		&models.Invitation{},
		&models.Rating{},
		&models.Notification{},
	)
}
