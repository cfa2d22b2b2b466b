package repositories

import (
	"errors"

	"ustahub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRatingNotFound      = errors.New("rating not found")
	ErrRatingAlreadyExists = errors.New("rating already exists for this job")
)

type RatingRepository interface {
	Create(db *gorm.DB, rating *models.Rating) error
	FindByID(db *gorm.DB, id string) (*models.Rating, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Rating, error)
	Update(db *gorm.DB, rating *models.Rating) error
	FindByUsta(db *gorm.DB, ustaID string) ([]models.Rating, error)
	FindByCustomer(db *gorm.DB, customerID string) ([]models.Rating, error)
	ExistsForJobAndCustomer(db *gorm.DB, jobID, customerID string) (bool, error)
}

type RatingRepositoryImpl struct{}

func NewRatingRepository() RatingRepository {
	return &RatingRepositoryImpl{}
}

func (r *RatingRepositoryImpl) Create(db *gorm.DB, rating *models.Rating) error {
	return db.Create(rating).Error
}

func (r *RatingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Rating, error) {
	var rating models.Rating
	err := db.First(&rating, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Rating, error) {
	var rating models.Rating
	err := forUpdate(db).First(&rating, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepositoryImpl) Update(db *gorm.DB, rating *models.Rating) error {
	result := db.Save(rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

// FindByUsta returns the full rating set for an usta. The aggregator
// recomputes from this scan rather than keeping incremental state.
func (r *RatingRepositoryImpl) FindByUsta(db *gorm.DB, ustaID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := db.Where("usta_id = ?", ustaID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepositoryImpl) FindByCustomer(db *gorm.DB, customerID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepositoryImpl) ExistsForJobAndCustomer(db *gorm.DB, jobID, customerID string) (bool, error) {
	var count int64
	err := db.Model(&models.Rating{}).
		Where("job_id = ? AND customer_id = ?", jobID, customerID).
		Count(&count).Error
	return count > 0, err
}
