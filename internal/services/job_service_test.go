package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

func TestJobCreateWithTagsAndLocation(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)

	job, err := sc.JobService.Create(db, customer.ID, &dto.CreateJobRequest{
		Title:     "Retile bathroom",
		Category:  "renovation",
		Tags:      []string{"tiles", "bathroom"},
		BudgetMin: 500,
		BudgetMax: 900,
		Location: &dto.SetLocationRequest{
			Latitude:  43.238949,
			Longitude: 76.889709,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.Equal(t, []string{"tiles", "bathroom"}, job.Tags)

	var location models.Location
	require.NoError(t, db.First(&location, "owner_id = ? AND owner_type = ?",
		job.ID, models.LocationOwnerJob).Error)
}

func TestJobCreateBudgetMaxBelowMinFails(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)

	_, err := sc.JobService.Create(db, customer.ID, &dto.CreateJobRequest{
		Title:     "Retile bathroom",
		Category:  "renovation",
		BudgetMin: 900,
		BudgetMax: 500,
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestJobOwnerCannotActivateDirectly(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	_, err := sc.JobService.UpdateStatus(db, job.ID, customer.ID, &dto.UpdateJobStatusRequest{
		Status: string(models.JobStatusActive),
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestJobActiveCanComplete(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	job := createTestJob(t, db, customer.ID, models.JobStatusActive)

	updated, err := sc.JobService.UpdateStatus(db, job.ID, customer.ID, &dto.UpdateJobStatusRequest{
		Status: string(models.JobStatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, updated.Status)
}

func TestJobCompletedIsTerminal(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	job := createTestJob(t, db, customer.ID, models.JobStatusCompleted)

	_, err := sc.JobService.UpdateStatus(db, job.ID, customer.ID, &dto.UpdateJobStatusRequest{
		Status: string(models.JobStatusCancelled),
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestJobStatusChangeByStrangerForbidden(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	stranger := createTestUser(t, db, models.UserRoleCustomer)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	_, err := sc.JobService.UpdateStatus(db, job.ID, stranger.ID, &dto.UpdateJobStatusRequest{
		Status: string(models.JobStatusCancelled),
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestJobViewsCountOnlyOtherViewers(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	viewer := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	own, err := sc.JobService.Get(db, job.ID, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, own.Views)

	viewed, err := sc.JobService.Get(db, job.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, viewed.Views)
}

func TestJobListOpenExcludesOtherStatuses(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)

	open := createTestJob(t, db, customer.ID, models.JobStatusPending)
	createTestJob(t, db, customer.ID, models.JobStatusActive)
	createTestJob(t, db, customer.ID, models.JobStatusCancelled)

	jobs, err := sc.JobService.ListOpen(db)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, open.ID, jobs[0].ID)
}
