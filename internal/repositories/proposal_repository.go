package repositories

import (
	"errors"

	"ustahub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProposalNotFound = errors.New("job proposal not found")
)

type ProposalRepository interface {
	Create(db *gorm.DB, proposal *models.JobProposal) error
	FindByID(db *gorm.DB, id string) (*models.JobProposal, error)
	FindByJob(db *gorm.DB, jobID string) ([]models.JobProposal, error)
	UpdateStatus(db *gorm.DB, id string, status models.ProposalStatus) error
}

type ProposalRepositoryImpl struct{}

func NewProposalRepository() ProposalRepository {
	return &ProposalRepositoryImpl{}
}

func (r *ProposalRepositoryImpl) Create(db *gorm.DB, proposal *models.JobProposal) error {
	return db.Create(proposal).Error
}

func (r *ProposalRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobProposal, error) {
	var proposal models.JobProposal
	err := db.Preload("Milestones").First(&proposal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) FindByJob(db *gorm.DB, jobID string) ([]models.JobProposal, error) {
	var proposals []models.JobProposal
	err := db.Preload("Milestones").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ProposalStatus) error {
	result := db.Model(&models.JobProposal{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}
