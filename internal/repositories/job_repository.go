package repositories

import (
	"errors"

	"ustahub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Job, error)
	UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error
	FindByCustomer(db *gorm.DB, customerID string) ([]models.Job, error)
	FindOpen(db *gorm.DB) ([]models.Job, error)
	IncrementViews(db *gorm.DB, id string) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := forUpdate(db).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error {
	result := db.Model(&models.Job{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) FindByCustomer(db *gorm.DB, customerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// FindOpen returns jobs still accepting proposals. A job leaves this set
// the moment a contract on it is accepted.
func (r *JobRepositoryImpl) FindOpen(db *gorm.DB) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("status = ?", models.JobStatusPending).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
