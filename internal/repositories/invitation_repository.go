package repositories

import (
	"errors"
	"time"

	"ustahub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
)

// InvitationCriteria filters invitation listings.
type InvitationCriteria struct {
	UstaID     string
	CustomerID string
	JobID      string
	Status     models.InvitationStatus
	Page       int
	PageSize   int
}

type InvitationRepository interface {
	Create(db *gorm.DB, invitation *models.Invitation) error
	FindByID(db *gorm.DB, id string) (*models.Invitation, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Invitation, error)
	Update(db *gorm.DB, invitation *models.Invitation) error
	List(db *gorm.DB, criteria InvitationCriteria) ([]models.Invitation, int64, error)
	FindChain(db *gorm.DB, invitationID string) ([]models.Invitation, error)
	HasActivePending(db *gorm.DB, ustaID, customerID string, jobID *string, now time.Time) (bool, error)
	ExpireStale(db *gorm.DB, now time.Time) (int64, error)
}

type InvitationRepositoryImpl struct{}

func NewInvitationRepository() InvitationRepository {
	return &InvitationRepositoryImpl{}
}

func (r *InvitationRepositoryImpl) Create(db *gorm.DB, invitation *models.Invitation) error {
	return db.Create(invitation).Error
}

func (r *InvitationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := db.First(&invitation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := forUpdate(db).First(&invitation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepositoryImpl) Update(db *gorm.DB, invitation *models.Invitation) error {
	result := db.Save(invitation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

func (r *InvitationRepositoryImpl) List(db *gorm.DB, criteria InvitationCriteria) ([]models.Invitation, int64, error) {
	query := db.Model(&models.Invitation{})

	if criteria.UstaID != "" {
		query = query.Where("usta_id = ?", criteria.UstaID)
	}
	if criteria.CustomerID != "" {
		query = query.Where("customer_id = ?", criteria.CustomerID)
	}
	if criteria.JobID != "" {
		query = query.Where("job_id = ?", criteria.JobID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Limit(criteria.PageSize).Offset((criteria.Page - 1) * criteria.PageSize)
	}

	var invitations []models.Invitation
	err := query.Order("created_at DESC").Find(&invitations).Error
	return invitations, total, err
}

// FindChain walks PreviousInvitationID links back from the given
// invitation, returning the chain newest-first.
func (r *InvitationRepositoryImpl) FindChain(db *gorm.DB, invitationID string) ([]models.Invitation, error) {
	var chain []models.Invitation

	id := invitationID
	for id != "" {
		invitation, err := r.FindByID(db, id)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *invitation)

		if invitation.PreviousInvitationID == nil {
			break
		}
		id = *invitation.PreviousInvitationID
	}

	return chain, nil
}

// HasActivePending checks the at-most-one-active-invitation rule for the
// (usta, customer, job) triple. Rows past their deadline do not count.
func (r *InvitationRepositoryImpl) HasActivePending(db *gorm.DB, ustaID, customerID string, jobID *string, now time.Time) (bool, error) {
	query := db.Model(&models.Invitation{}).
		Where("usta_id = ? AND customer_id = ? AND status = ? AND expires_at > ?",
			ustaID, customerID, models.InvitationStatusPending, now)

	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	} else {
		query = query.Where("job_id IS NULL")
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// ExpireStale bulk-marks pending invitations past their deadline. Used by
// the background sweep; reads apply the same rule lazily.
func (r *InvitationRepositoryImpl) ExpireStale(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Invitation{}).
		Where("status = ? AND expires_at < ?", models.InvitationStatusPending, now).
		Update("status", models.InvitationStatusExpired)
	return result.RowsAffected, result.Error
}
