package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

func TestProposalCreateDefaultsToFixed(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	proposal, err := sc.ProposalService.Create(db, usta.ID, &dto.CreateProposalRequest{
		JobID:  job.ID,
		Amount: 250,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ProposalTypeFixed, proposal.Type)
	assert.Equal(t, models.ProposalStatusPending, proposal.Status)
}

func TestProposalCreateWithMilestones(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	proposal, err := sc.ProposalService.Create(db, usta.ID, &dto.CreateProposalRequest{
		JobID:  job.ID,
		Amount: 500,
		Type:   string(models.ProposalTypeMilestone),
		Milestones: []dto.MilestoneRequest{
			{Title: "Demolition", Amount: 200},
			{Title: "Installation", Amount: 300},
		},
	})
	require.NoError(t, err)

	require.Len(t, proposal.Milestones, 2)
	assert.Equal(t, 0, proposal.Milestones[0].Position)
	assert.Equal(t, 1, proposal.Milestones[1].Position)
}

func TestProposalMilestoneTypeRequiresMilestones(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	_, err := sc.ProposalService.Create(db, usta.ID, &dto.CreateProposalRequest{
		JobID:  job.ID,
		Amount: 500,
		Type:   string(models.ProposalTypeMilestone),
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestProposalDuplicateBidConflicts(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	req := &dto.CreateProposalRequest{JobID: job.ID, Amount: 250}
	_, err := sc.ProposalService.Create(db, usta.ID, req)
	require.NoError(t, err)

	_, err = sc.ProposalService.Create(db, usta.ID, req)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestProposalOnNonPendingJobInvalidState(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusActive)

	_, err := sc.ProposalService.Create(db, usta.ID, &dto.CreateProposalRequest{
		JobID:  job.ID,
		Amount: 250,
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestProposalListByJobOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	stranger := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)

	_, err := sc.ProposalService.Create(db, usta.ID, &dto.CreateProposalRequest{
		JobID:  job.ID,
		Amount: 250,
	})
	require.NoError(t, err)

	proposals, err := sc.ProposalService.ListByJob(db, job.ID, customer.ID)
	require.NoError(t, err)
	assert.Len(t, proposals, 1)

	_, err = sc.ProposalService.ListByJob(db, job.ID, stranger.ID)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}
