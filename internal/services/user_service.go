package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ustahub_backend/internal/auth"
	"ustahub_backend/internal/email"
	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

const userDomain = "user"

// resetTokenTTL bounds how long a password reset link stays usable.
const resetTokenTTL = time.Hour

type UserService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(db *gorm.DB, id string, viewerID string) (*dto.UserResponse, error)
	SetLocation(db *gorm.DB, userID string, req *dto.SetLocationRequest) error
	RequestPasswordReset(db *gorm.DB, req *dto.ForgotPasswordRequest) error
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error
}

type userService struct {
	userRepo     repositories.UserRepository
	locationRepo repositories.LocationRepository
	emailer      email.Provider
}

func NewUserService(userRepo repositories.UserRepository, locationRepo repositories.LocationRepository, emailer email.Provider) UserService {
	return &userService{userRepo: userRepo, locationRepo: locationRepo, emailer: emailer}
}

func (s *userService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.UserRole(req.Role)
	if role != models.UserRoleCustomer && role != models.UserRoleUsta {
		return nil, apperrors.ErrInvalidUserRole
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.StorageError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         role,
		Status:       models.UserStatusActive,
		City:         req.City,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		return nil, apperrors.StorageError(err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "role", user.Role)

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *userService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.StorageError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusBlocked || user.Status == models.UserStatusInactive {
		return nil, apperrors.ErrUserInactive
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *userService) GetProfile(db *gorm.DB, id string, viewerID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, userDomain, "user not found")
		}
		return nil, apperrors.StorageError(err)
	}

	// Self-views do not count.
	if viewerID != "" && viewerID != user.ID {
		if err := s.userRepo.IncrementTotalViews(db, user.ID); err != nil {
			logger.WithError(err).Warn("failed to record profile view", "user_id", user.ID)
		} else {
			user.TotalViews++
		}
	}

	return toUserResponse(user), nil
}

// RequestPasswordReset issues a one-hour reset token. An unknown email
// succeeds silently so the endpoint cannot be used to probe accounts.
func (s *userService) RequestPasswordReset(db *gorm.DB, req *dto.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.StorageError(err)
	}

	token := uuid.NewString()
	if err := s.userRepo.SetResetToken(db, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return apperrors.StorageError(err)
	}

	if s.emailer != nil {
		if err := s.emailer.SendPasswordReset(user.Email, token); err != nil {
			logger.WithError(err).Warn("failed to send password reset email", "user_id", user.ID)
		}
	}
	return nil
}

func (s *userService) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByResetToken(db, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.StorageError(err)
	}

	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"new_password": err.Error()})
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return apperrors.StorageError(err)
	}

	logger.Info("password reset", "user_id", user.ID)
	return nil
}

func (s *userService) SetLocation(db *gorm.DB, userID string, req *dto.SetLocationRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err, userDomain, "user not found")
		}
		return apperrors.StorageError(err)
	}

	ownerType := models.LocationOwnerCustomer
	if user.Role == models.UserRoleUsta {
		ownerType = models.LocationOwnerUsta
	}

	location := &models.Location{
		OwnerID:     user.ID,
		OwnerType:   ownerType,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Address:     req.Address,
		City:        req.City,
		MaxDistance: req.MaxDistance,
	}

	if err := s.locationRepo.Upsert(db, location); err != nil {
		return apperrors.StorageError(err)
	}
	return nil
}

func toUserResponse(u *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		Status:        u.Status,
		City:          u.City,
		AverageRating: u.AverageRating,
		TotalRatings:  u.TotalRatings,
		TotalHires:    u.TotalHires,
		TotalViews:    u.TotalViews,
		CreatedAt:     u.CreatedAt,
	}
}
