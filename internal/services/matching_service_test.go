package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

// At the equator one degree of longitude is about 111 km, so offsets of
// 0.2 and 0.6 degrees land well inside and outside the 50 km default.
func TestMatchingHardDistanceCutoff(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 0, 0)

	near := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, near.ID, 0, 0.2)

	far := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, far.ID, 0, 0.6)

	matches, err := sc.MatchingService.UstasNearCustomer(db, customer.ID, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, near.ID, matches[0].UstaID)
}

func TestMatchingRanksByRatingThenHires(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 0, 0)

	// Closest but lowest rated.
	bronze := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, bronze.ID, 0, 0.05)
	require.NoError(t, db.Model(bronze).Updates(map[string]interface{}{
		"average_rating": 3.5, "total_hires": 20,
	}).Error)

	gold := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, gold.ID, 0, 0.3)
	require.NoError(t, db.Model(gold).Updates(map[string]interface{}{
		"average_rating": 4.8, "total_hires": 5,
	}).Error)

	// Same rating as gold, more hires.
	silver := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, silver.ID, 0, 0.25)
	require.NoError(t, db.Model(silver).Updates(map[string]interface{}{
		"average_rating": 4.8, "total_hires": 12,
	}).Error)

	matches, err := sc.MatchingService.UstasNearCustomer(db, customer.ID, nil)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, silver.ID, matches[0].UstaID)
	assert.Equal(t, gold.ID, matches[1].UstaID)
	assert.Equal(t, bronze.ID, matches[2].UstaID)
}

func TestMatchingExcludesUstasWithoutLocation(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 0, 0)

	located := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, located.ID, 0, 0.1)

	createTestUser(t, db, models.UserRoleUsta) // no location row

	matches, err := sc.MatchingService.UstasNearCustomer(db, customer.ID, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, located.ID, matches[0].UstaID)
}

func TestMatchingCustomerWithoutLocationFails(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)

	_, err := sc.MatchingService.UstasNearCustomer(db, customer.ID, nil)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestMatchingUstasNearJobUsesJobLocation(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	// Customer lives far from the job site.
	createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 10, 10)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)
	createTestLocation(t, db, models.LocationOwnerJob, job.ID, 0, 0)

	onSite := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, onSite.ID, 0, 0.1)

	nearCustomer := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, nearCustomer.ID, 10, 10.1)

	matches, err := sc.MatchingService.UstasNearJob(db, job.ID, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, onSite.ID, matches[0].UstaID)
}

func TestMatchingUstasNearJobFallsBackToCustomerLocation(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 0, 0)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	usta := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, usta.ID, 0, 0.1)

	matches, err := sc.MatchingService.UstasNearJob(db, job.ID, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, usta.ID, matches[0].UstaID)
}

func TestMatchingUstasNearJobWithoutAnyLocationFails(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	_, err := sc.MatchingService.UstasNearJob(db, job.ID, nil)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestMatchingFilterOverridesDefaultDistance(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 0, 0)

	usta := createTestUser(t, db, models.UserRoleUsta)
	// ~111 km out, beyond the 50 km default.
	createTestLocation(t, db, models.LocationOwnerUsta, usta.ID, 0, 1)

	matches, err := sc.MatchingService.UstasNearCustomer(db, customer.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)

	wide := 150.0
	matches, err = sc.MatchingService.UstasNearCustomer(db, customer.ID, &dto.NearbyFilter{
		MaxDistanceKm: &wide,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, usta.ID, matches[0].UstaID)
}

func TestMatchingOriginMaxDistanceWidensSearch(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	loc := createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 0, 0)
	require.NoError(t, db.Model(loc).Update("max_distance", 200).Error)

	usta := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, usta.ID, 0, 1)

	matches, err := sc.MatchingService.UstasNearCustomer(db, customer.ID, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestMatchingLimitCapsResults(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 0, 0)

	for i := 0; i < 3; i++ {
		usta := createTestUser(t, db, models.UserRoleUsta)
		createTestLocation(t, db, models.LocationOwnerUsta, usta.ID, 0, 0.1)
	}

	matches, err := sc.MatchingService.UstasNearCustomer(db, customer.ID, &dto.NearbyFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMatchingJobsNearUstaOrdersByDistance(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	usta := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, usta.ID, 0, 0)
	customer := createTestUser(t, db, models.UserRoleCustomer)

	farJob := createTestJob(t, db, customer.ID, models.JobStatusPending)
	createTestLocation(t, db, models.LocationOwnerJob, farJob.ID, 0, 0.3)

	nearJob := createTestJob(t, db, customer.ID, models.JobStatusPending)
	createTestLocation(t, db, models.LocationOwnerJob, nearJob.ID, 0, 0.1)

	// An active job already has an accepted contract and is no longer
	// discoverable.
	activeJob := createTestJob(t, db, customer.ID, models.JobStatusActive)
	createTestLocation(t, db, models.LocationOwnerJob, activeJob.ID, 0, 0.05)

	matches, err := sc.MatchingService.JobsNearUsta(db, usta.ID, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, nearJob.ID, matches[0].JobID)
	assert.Equal(t, farJob.ID, matches[1].JobID)
	assert.Less(t, matches[0].DistanceKm, matches[1].DistanceKm)
}

func TestMatchingJobsNearUstaFallsBackToCustomerLocation(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	usta := createTestUser(t, db, models.UserRoleUsta)
	createTestLocation(t, db, models.LocationOwnerUsta, usta.ID, 0, 0)
	customer := createTestUser(t, db, models.UserRoleCustomer)
	createTestLocation(t, db, models.LocationOwnerCustomer, customer.ID, 0, 0.2)

	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	matches, err := sc.MatchingService.JobsNearUsta(db, usta.ID, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, job.ID, matches[0].JobID)
}
