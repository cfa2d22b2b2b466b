package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

func TestInvitationCreateSetsExpiryAndPending(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	inv, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{
		UstaID: usta.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.InvitationStatusPending, inv.Status)
	assert.Equal(t, models.InvitationTypeDirect, inv.Type)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), inv.ExpiresAt, time.Minute)
	assert.Nil(t, inv.ViewedAt)
}

func TestInvitationCreateRejectsInactiveUsta(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)
	require.NoError(t, db.Model(usta).Update("status", models.UserStatusBlocked).Error)

	_, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{
		UstaID: usta.ID,
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestInvitationCreateDuplicatePendingConflicts(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	_, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)

	_, err = sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestInvitationMarkViewedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	inv, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)

	first, err := sc.InvitationService.MarkViewed(db, inv.ID, usta.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ViewedAt)

	second, err := sc.InvitationService.MarkViewed(db, inv.ID, usta.ID)
	require.NoError(t, err)
	require.NotNil(t, second.ViewedAt)
	assert.WithinDuration(t, *first.ViewedAt, *second.ViewedAt, time.Second)
}

func TestInvitationRespondAcceptThenSecondRespondFails(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	inv, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)

	accepted, err := sc.InvitationService.Respond(db, inv.ID, usta.ID, &dto.RespondInvitationRequest{
		Status: string(models.InvitationStatusAccepted),
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.RespondedAt)

	_, err = sc.InvitationService.Respond(db, inv.ID, usta.ID, &dto.RespondInvitationRequest{
		Status: string(models.InvitationStatusRejected),
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	// The first response stays.
	var row models.Invitation
	require.NoError(t, db.First(&row, "id = ?", inv.ID).Error)
	assert.Equal(t, models.InvitationStatusAccepted, row.Status)
}

func TestInvitationAcceptWithAlternativeTimeIsRejected(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	inv, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)

	alt := time.Now().Add(48 * time.Hour)
	_, err = sc.InvitationService.Respond(db, inv.ID, usta.ID, &dto.RespondInvitationRequest{
		Status:          string(models.InvitationStatusAccepted),
		AlternativeTime: &alt,
	})

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	// No mutation happened.
	var row models.Invitation
	require.NoError(t, db.First(&row, "id = ?", inv.ID).Error)
	assert.Equal(t, models.InvitationStatusPending, row.Status)
}

func TestInvitationLazyExpiryPersistsOnRespond(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	inv, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)

	// Push the deadline into the past without touching the status.
	require.NoError(t, db.Model(&models.Invitation{}).Where("id = ?", inv.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	// Reads already report expired.
	got, err := sc.InvitationService.Get(db, inv.ID, usta.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusExpired, got.Status)

	// Responding fails and persists the expiry.
	_, err = sc.InvitationService.Respond(db, inv.ID, usta.ID, &dto.RespondInvitationRequest{
		Status: string(models.InvitationStatusAccepted),
	})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)

	var row models.Invitation
	require.NoError(t, db.First(&row, "id = ?", inv.ID).Error)
	assert.Equal(t, models.InvitationStatusExpired, row.Status)
}

func TestInvitationCancelOnlyPending(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	inv, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)

	canceled, err := sc.InvitationService.Cancel(db, inv.ID, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusCanceled, canceled.Status)

	_, err = sc.InvitationService.Cancel(db, inv.ID, customer.ID)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestInvitationFollowUpChainsFromRejection(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	first, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)

	_, err = sc.InvitationService.Respond(db, first.ID, usta.ID, &dto.RespondInvitationRequest{
		Status: string(models.InvitationStatusRejected),
	})
	require.NoError(t, err)

	followUp, err := sc.InvitationService.FollowUp(db, first.ID, customer.ID, &dto.FollowUpInvitationRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.InvitationTypeFollowUp, followUp.Type)
	require.NotNil(t, followUp.PreviousInvitationID)
	assert.Equal(t, first.ID, *followUp.PreviousInvitationID)

	chain, err := sc.InvitationService.GetChain(db, followUp.ID, customer.ID)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, followUp.ID, chain[0].ID)
	assert.Equal(t, first.ID, chain[1].ID)
}

func TestInvitationFollowUpOnPendingFails(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	first, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)

	_, err = sc.InvitationService.FollowUp(db, first.ID, customer.ID, &dto.FollowUpInvitationRequest{})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestInvitationListLazilyExpiresView(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	customer := createTestUser(t, db, models.UserRoleCustomer)
	usta := createTestUser(t, db, models.UserRoleUsta)

	inv, err := sc.InvitationService.Create(db, customer.ID, &dto.CreateInvitationRequest{UstaID: usta.ID})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Invitation{}).Where("id = ?", inv.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	list, err := sc.InvitationService.List(db, &dto.InvitationListFilter{UstaID: usta.ID})
	require.NoError(t, err)
	require.Len(t, list.Invitations, 1)
	assert.Equal(t, models.InvitationStatusExpired, list.Invitations[0].Status)

	// The stored row is still pending; only the view is lazy.
	var row models.Invitation
	require.NoError(t, db.First(&row, "id = ?", inv.ID).Error)
	assert.Equal(t, models.InvitationStatusPending, row.Status)
}
