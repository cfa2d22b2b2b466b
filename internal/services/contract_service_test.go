package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

func TestContractCreatePending(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)
	proposal := createTestProposal(t, db, job.ID, usta.ID)

	contract, err := sc.ContractService.Create(db, customer.ID, &dto.CreateContractRequest{
		JobID:         job.ID,
		UstaID:        usta.ID,
		JobProposalID: proposal.ID,
		TotalCost:     200,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ContractStatusPending, contract.Status)
	assert.Equal(t, customer.ID, contract.CreatedBy)
	assert.Nil(t, contract.RespondedAt)
}

func TestContractCreateDuplicateForProposalConflicts(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)
	proposal := createTestProposal(t, db, job.ID, usta.ID)

	req := &dto.CreateContractRequest{
		JobID:         job.ID,
		UstaID:        usta.ID,
		JobProposalID: proposal.ID,
		TotalCost:     200,
	}
	_, err := sc.ContractService.Create(db, customer.ID, req)
	require.NoError(t, err)

	_, err = sc.ContractService.Create(db, customer.ID, req)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestContractAcceptCascadesAtomically(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)
	proposal := createTestProposal(t, db, job.ID, usta.ID)

	contract, err := sc.ContractService.Create(db, customer.ID, &dto.CreateContractRequest{
		JobID:         job.ID,
		UstaID:        usta.ID,
		JobProposalID: proposal.ID,
		TotalCost:     200,
	})
	require.NoError(t, err)

	accepted, err := sc.ContractService.Respond(db, contract.ID, usta.ID, &dto.UpdateContractStatusRequest{
		Status: string(models.ContractStatusAccepted),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.RespondedAt)

	var jobRow models.Job
	require.NoError(t, db.First(&jobRow, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusActive, jobRow.Status)

	var proposalRow models.JobProposal
	require.NoError(t, db.First(&proposalRow, "id = ?", proposal.ID).Error)
	assert.Equal(t, models.ProposalStatusAccepted, proposalRow.Status)

	var ustaRow models.User
	require.NoError(t, db.First(&ustaRow, "id = ?", usta.ID).Error)
	assert.Equal(t, int64(1), ustaRow.TotalHires)
}

func TestContractRejectLeavesJobAndHiresUntouched(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)
	proposal := createTestProposal(t, db, job.ID, usta.ID)

	contract, err := sc.ContractService.Create(db, customer.ID, &dto.CreateContractRequest{
		JobID:         job.ID,
		UstaID:        usta.ID,
		JobProposalID: proposal.ID,
		TotalCost:     200,
	})
	require.NoError(t, err)

	rejected, err := sc.ContractService.Respond(db, contract.ID, usta.ID, &dto.UpdateContractStatusRequest{
		Status: string(models.ContractStatusRejected),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContractStatusRejected, rejected.Status)

	var jobRow models.Job
	require.NoError(t, db.First(&jobRow, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusPending, jobRow.Status)

	var ustaRow models.User
	require.NoError(t, db.First(&ustaRow, "id = ?", usta.ID).Error)
	assert.Equal(t, int64(0), ustaRow.TotalHires)
}

func TestContractRespondByWrongUstaForbidden(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	otherUsta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)
	proposal := createTestProposal(t, db, job.ID, usta.ID)

	contract, err := sc.ContractService.Create(db, customer.ID, &dto.CreateContractRequest{
		JobID:         job.ID,
		UstaID:        usta.ID,
		JobProposalID: proposal.ID,
		TotalCost:     200,
	})
	require.NoError(t, err)

	_, err = sc.ContractService.Respond(db, contract.ID, otherUsta.ID, &dto.UpdateContractStatusRequest{
		Status: string(models.ContractStatusAccepted),
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
}

func TestContractSecondRespondInvalidState(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusPending)
	proposal := createTestProposal(t, db, job.ID, usta.ID)

	contract, err := sc.ContractService.Create(db, customer.ID, &dto.CreateContractRequest{
		JobID:         job.ID,
		UstaID:        usta.ID,
		JobProposalID: proposal.ID,
		TotalCost:     200,
	})
	require.NoError(t, err)

	_, err = sc.ContractService.Respond(db, contract.ID, usta.ID, &dto.UpdateContractStatusRequest{
		Status: string(models.ContractStatusAccepted),
	})
	require.NoError(t, err)

	_, err = sc.ContractService.Respond(db, contract.ID, usta.ID, &dto.UpdateContractStatusRequest{
		Status: string(models.ContractStatusRejected),
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestContractCreateOnActiveJobInvalidState(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	job := createTestJob(t, db, customer.ID, models.JobStatusActive)
	proposal := createTestProposal(t, db, job.ID, usta.ID)

	_, err := sc.ContractService.Create(db, customer.ID, &dto.CreateContractRequest{
		JobID:         job.ID,
		UstaID:        usta.ID,
		JobProposalID: proposal.ID,
		TotalCost:     200,
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}
