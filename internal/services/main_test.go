package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ustahub_backend/database"
	"ustahub_backend/internal/config"
	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/models"
)

func init() {
	logger.Init("test")
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60
	config.AppConfig.Matching.DefaultMaxDistanceKm = 50
	config.AppConfig.Invitations.ExpiryDays = 7
	config.AppConfig.Invitations.SweepIntervalMinutes = 60
}

// newTestDB opens a fresh in-memory database per test and migrates the
// schema. One open connection keeps the memory database alive.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestServices() *ServiceContainer {
	return NewServiceContainer(nil)
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test " + string(role),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestJob(t *testing.T, db *gorm.DB, customerID string, status models.JobStatus) *models.Job {
	t.Helper()

	job := &models.Job{
		CustomerID: customerID,
		Title:      "Fix kitchen sink",
		Category:   "plumbing",
		BudgetMin:  100,
		BudgetMax:  300,
		Status:     status,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func createTestProposal(t *testing.T, db *gorm.DB, jobID, ustaID string) *models.JobProposal {
	t.Helper()

	proposal := &models.JobProposal{
		JobID:  jobID,
		UstaID: ustaID,
		Amount: 200,
		Type:   models.ProposalTypeFixed,
		Status: models.ProposalStatusPending,
	}
	require.NoError(t, db.Create(proposal).Error)
	return proposal
}

func createTestLocation(t *testing.T, db *gorm.DB, ownerType models.LocationOwner, ownerID string, lat, lon float64) *models.Location {
	t.Helper()

	location := &models.Location{
		OwnerID:   ownerID,
		OwnerType: ownerType,
		Latitude:  lat,
		Longitude: lon,
	}
	require.NoError(t, db.Create(location).Error)
	return location
}

func backdate(t *testing.T, db *gorm.DB, model interface{}, id string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Model(model).Where("id = ?", id).Update("created_at", createdAt).Error)
}
