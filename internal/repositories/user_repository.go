package repositories

import (
	"errors"
	"time"

	"ustahub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindActiveWithRole(db *gorm.DB, id string, role models.UserRole) (*models.User, error)

	// Password reset
	SetResetToken(db *gorm.DB, userID, token string, expiresAt time.Time) error
	FindByResetToken(db *gorm.DB, token string) (*models.User, error)
	UpdatePassword(db *gorm.DB, userID, passwordHash string) error

	// Derived metrics
	UpdateRatingMetrics(db *gorm.DB, ustaID string, averageRating float64, totalRatings int64) error
	IncrementTotalHires(db *gorm.DB, ustaID string) error
	IncrementTotalViews(db *gorm.DB, userID string) error

	// Matching candidates: active ustas joined with their locations.
	FindActiveUstas(db *gorm.DB) ([]models.User, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := forUpdate(db).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindActiveWithRole resolves a user that must exist, carry the given role
// and be active. Any miss collapses into ErrUserNotFound so callers cannot
// probe which of the three checks failed.
func (r *UserRepositoryImpl) FindActiveWithRole(db *gorm.DB, id string, role models.UserRole) (*models.User, error) {
	user, err := r.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if user.Role != role || !user.IsActive() {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepositoryImpl) SetResetToken(db *gorm.DB, userID, token string, expiresAt time.Time) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":     token,
			"reset_token_exp": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByResetToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "reset_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the hash and invalidates any outstanding reset
// token in the same statement.
func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":   passwordHash,
			"reset_token":     "",
			"reset_token_exp": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateRatingMetrics(db *gorm.DB, ustaID string, averageRating float64, totalRatings int64) error {
	result := db.Model(&models.User{}).Where("id = ?", ustaID).
		Updates(map[string]interface{}{
			"average_rating": averageRating,
			"total_ratings":  totalRatings,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) IncrementTotalHires(db *gorm.DB, ustaID string) error {
	return db.Model(&models.User{}).Where("id = ?", ustaID).
		UpdateColumn("total_hires", gorm.Expr("total_hires + 1")).Error
}

func (r *UserRepositoryImpl) IncrementTotalViews(db *gorm.DB, userID string) error {
	return db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("total_views", gorm.Expr("total_views + 1")).Error
}

func (r *UserRepositoryImpl) FindActiveUstas(db *gorm.DB) ([]models.User, error) {
	var ustas []models.User
	err := db.Where("role = ? AND status = ?", models.UserRoleUsta, models.UserStatusActive).
		Find(&ustas).Error
	return ustas, err
}
