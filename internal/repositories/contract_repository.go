package repositories

import (
	"errors"
	"time"

	"ustahub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrContractNotFound = errors.New("contract not found")
)

type ContractRepository interface {
	Create(db *gorm.DB, contract *models.Contract) error
	FindByID(db *gorm.DB, id string) (*models.Contract, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Contract, error)
	UpdateStatus(db *gorm.DB, id string, status models.ContractStatus, respondedAt time.Time) error
	ExistsForProposal(db *gorm.DB, jobProposalID string) (bool, error)
	FindByUsta(db *gorm.DB, ustaID string) ([]models.Contract, error)
	FindByCustomer(db *gorm.DB, customerID string) ([]models.Contract, error)
}

type ContractRepositoryImpl struct{}

func NewContractRepository() ContractRepository {
	return &ContractRepositoryImpl{}
}

func (r *ContractRepositoryImpl) Create(db *gorm.DB, contract *models.Contract) error {
	return db.Create(contract).Error
}

func (r *ContractRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Contract, error) {
	var contract models.Contract
	err := db.First(&contract, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Contract, error) {
	var contract models.Contract
	err := forUpdate(db).First(&contract, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ContractStatus, respondedAt time.Time) error {
	result := db.Model(&models.Contract{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *ContractRepositoryImpl) ExistsForProposal(db *gorm.DB, jobProposalID string) (bool, error) {
	var count int64
	err := db.Model(&models.Contract{}).
		Where("job_proposal_id = ?", jobProposalID).
		Count(&count).Error
	return count > 0, err
}

func (r *ContractRepositoryImpl) FindByUsta(db *gorm.DB, ustaID string) ([]models.Contract, error) {
	var contracts []models.Contract
	err := db.Preload("Job").
		Where("usta_id = ?", ustaID).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *ContractRepositoryImpl) FindByCustomer(db *gorm.DB, customerID string) ([]models.Contract, error) {
	var contracts []models.Contract
	err := db.Preload("Job").
		Where("created_by = ?", customerID).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}
