package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

func TestUserRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()

	email := uuid.NewString() + "@example.com"
	registered, err := sc.UserService.Register(db, &dto.RegisterRequest{
		Name:     "Aidar",
		Email:    email,
		Password: "correct-horse",
		Role:     string(models.UserRoleUsta),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, models.UserStatusActive, registered.User.Status)

	loggedIn, err := sc.UserService.Login(db, &dto.LoginRequest{
		Email:    email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()

	req := &dto.RegisterRequest{
		Name:     "Aidar",
		Email:    uuid.NewString() + "@example.com",
		Password: "correct-horse",
		Role:     string(models.UserRoleCustomer),
	}
	_, err := sc.UserService.Register(db, req)
	require.NoError(t, err)

	_, err = sc.UserService.Register(db, req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUserRegisterRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()

	_, err := sc.UserService.Register(db, &dto.RegisterRequest{
		Name:     "Aidar",
		Email:    uuid.NewString() + "@example.com",
		Password: "correct-horse",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestUserLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()

	email := uuid.NewString() + "@example.com"
	_, err := sc.UserService.Register(db, &dto.RegisterRequest{
		Name:     "Aidar",
		Email:    email,
		Password: "correct-horse",
		Role:     string(models.UserRoleCustomer),
	})
	require.NoError(t, err)

	_, err = sc.UserService.Login(db, &dto.LoginRequest{
		Email:    email,
		Password: "wrong-horse-entirely",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUserLoginBlockedAccount(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()

	email := uuid.NewString() + "@example.com"
	registered, err := sc.UserService.Register(db, &dto.RegisterRequest{
		Name:     "Aidar",
		Email:    email,
		Password: "correct-horse",
		Role:     string(models.UserRoleCustomer),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", registered.User.ID).
		Update("status", models.UserStatusBlocked).Error)

	_, err = sc.UserService.Login(db, &dto.LoginRequest{Email: email, Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)
}

func TestUserProfileViewsSkipSelf(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	usta := createTestUser(t, db, models.UserRoleUsta)
	viewer := createTestUser(t, db, models.UserRoleCustomer)

	self, err := sc.UserService.GetProfile(db, usta.ID, usta.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), self.TotalViews)

	viewed, err := sc.UserService.GetProfile(db, usta.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), viewed.TotalViews)
}

func TestUserPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()

	email := uuid.NewString() + "@example.com"
	registered, err := sc.UserService.Register(db, &dto.RegisterRequest{
		Name:     "Aidar",
		Email:    email,
		Password: "correct-horse",
		Role:     string(models.UserRoleCustomer),
	})
	require.NoError(t, err)

	require.NoError(t, sc.UserService.RequestPasswordReset(db, &dto.ForgotPasswordRequest{Email: email}))

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", registered.User.ID).Error)
	require.NotEmpty(t, user.ResetToken)

	require.NoError(t, sc.UserService.ResetPassword(db, &dto.ResetPasswordRequest{
		Token:       user.ResetToken,
		NewPassword: "brand-new-horse",
	}))

	// Old password stops working, new one works, token is spent.
	_, err = sc.UserService.Login(db, &dto.LoginRequest{Email: email, Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = sc.UserService.Login(db, &dto.LoginRequest{Email: email, Password: "brand-new-horse"})
	require.NoError(t, err)

	err = sc.UserService.ResetPassword(db, &dto.ResetPasswordRequest{
		Token:       user.ResetToken,
		NewPassword: "yet-another-horse",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestUserPasswordResetUnknownEmailIsSilent(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()

	require.NoError(t, sc.UserService.RequestPasswordReset(db, &dto.ForgotPasswordRequest{
		Email: "nobody@example.com",
	}))
}

func TestUserSetLocationUpserts(t *testing.T) {
	db := newTestDB(t)
	sc := newTestServices()
	usta := createTestUser(t, db, models.UserRoleUsta)

	require.NoError(t, sc.UserService.SetLocation(db, usta.ID, &dto.SetLocationRequest{
		Latitude:  43.238949,
		Longitude: 76.889709,
	}))
	// A second call replaces rather than duplicates.
	require.NoError(t, sc.UserService.SetLocation(db, usta.ID, &dto.SetLocationRequest{
		Latitude:  51.169392,
		Longitude: 71.449074,
	}))

	var locations []models.Location
	require.NoError(t, db.Where("owner_id = ? AND owner_type = ?", usta.ID, models.LocationOwnerUsta).
		Find(&locations).Error)
	require.Len(t, locations, 1)
	assert.InDelta(t, 51.169392, locations[0].Latitude, 1e-9)
}
