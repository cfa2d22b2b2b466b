package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"ustahub_backend/internal/config"
	"ustahub_backend/internal/email"
	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

const invitationDomain = "invitation"

// InvitationService drives the invitation lifecycle:
// pending -> accepted | rejected | expired | canceled.
// Expiry is evaluated lazily on every read and persisted on the first
// write that observes it; the background sweep catches the rest.
type InvitationService interface {
	Create(db *gorm.DB, customerID string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error)
	Get(db *gorm.DB, id, callerID string) (*dto.InvitationResponse, error)
	MarkViewed(db *gorm.DB, id, ustaID string) (*dto.InvitationResponse, error)
	Respond(db *gorm.DB, id, ustaID string, req *dto.RespondInvitationRequest) (*dto.InvitationResponse, error)
	Cancel(db *gorm.DB, id, customerID string) (*dto.InvitationResponse, error)
	FollowUp(db *gorm.DB, previousID, customerID string, req *dto.FollowUpInvitationRequest) (*dto.InvitationResponse, error)
	List(db *gorm.DB, filter *dto.InvitationListFilter) (*dto.InvitationListResponse, error)
	GetChain(db *gorm.DB, id, callerID string) ([]*dto.InvitationResponse, error)
}

type invitationService struct {
	invitationRepo   repositories.InvitationRepository
	userRepo         repositories.UserRepository
	jobRepo          repositories.JobRepository
	notificationRepo repositories.NotificationRepository
	emailer          email.Provider
}

func NewInvitationService(
	invitationRepo repositories.InvitationRepository,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	notificationRepo repositories.NotificationRepository,
	emailer email.Provider,
) InvitationService {
	return &invitationService{
		invitationRepo:   invitationRepo,
		userRepo:         userRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
		emailer:          emailer,
	}
}

func (s *invitationService) Create(db *gorm.DB, customerID string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if req.UstaID == customerID {
		return nil, apperrors.ErrInvalidOperation(invitationDomain, "cannot invite yourself")
	}

	customer, err := s.userRepo.FindActiveWithRole(db, customerID, models.UserRoleCustomer)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, invitationDomain, "customer not found or not active")
		}
		return nil, apperrors.StorageError(err)
	}

	usta, err := s.userRepo.FindActiveWithRole(db, req.UstaID, models.UserRoleUsta)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, invitationDomain, "usta not found or not active")
		}
		return nil, apperrors.StorageError(err)
	}

	invitationType := models.InvitationTypeDirect
	if req.JobID != nil {
		job, err := s.jobRepo.FindByID(db, *req.JobID)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return nil, apperrors.ErrNotFound(err, invitationDomain, "job not found")
			}
			return nil, apperrors.StorageError(err)
		}
		if job.CustomerID != customer.ID {
			return nil, apperrors.NewForbiddenError("job does not belong to you")
		}
		if job.Status != models.JobStatusPending && job.Status != models.JobStatusActive {
			return nil, apperrors.ErrInvalidState(invitationDomain, "job", string(job.Status))
		}
		invitationType = models.InvitationTypeJobBased
	}

	now := time.Now()
	invitation := &models.Invitation{
		UstaID:        req.UstaID,
		CustomerID:    customerID,
		JobID:         req.JobID,
		Status:        models.InvitationStatusPending,
		Type:          invitationType,
		Message:       req.Message,
		PreferredTime: req.PreferredTime,
		ExpiresAt:     now.AddDate(0, 0, config.GetConfig().Invitations.ExpiryDays),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		active, err := s.invitationRepo.HasActivePending(tx, req.UstaID, customerID, req.JobID, now)
		if err != nil {
			return apperrors.StorageError(err)
		}
		if active {
			return apperrors.ErrConflict(nil, invitationDomain, "an active invitation to this usta already exists")
		}

		if err := s.invitationRepo.Create(tx, invitation); err != nil {
			return apperrors.StorageError(err)
		}

		if err := s.notificationRepo.CreateInvitationNotification(tx, invitation.UstaID, invitation.ID, invitation.Type); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("invitation created",
		"invitation_id", invitation.ID,
		"customer_id", customerID,
		"usta_id", invitation.UstaID,
		"type", invitation.Type)

	// Mail is best-effort; the invitation is already committed.
	if s.emailer != nil {
		if err := s.emailer.SendInvitationReceived(usta.Email, customer.Name); err != nil {
			logger.WithError(err).Warn("failed to send invitation email", "invitation_id", invitation.ID)
		}
	}

	return toInvitationResponse(invitation, now), nil
}

func (s *invitationService) Get(db *gorm.DB, id, callerID string) (*dto.InvitationResponse, error) {
	invitation, err := s.invitationRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, apperrors.ErrNotFound(err, invitationDomain, "invitation not found")
		}
		return nil, apperrors.StorageError(err)
	}

	if invitation.UstaID != callerID && invitation.CustomerID != callerID {
		return nil, apperrors.NewForbiddenError("invitation does not involve you")
	}

	return toInvitationResponse(invitation, time.Now()), nil
}

// MarkViewed records the first time the usta opened the invitation.
// Repeat calls are no-ops.
func (s *invitationService) MarkViewed(db *gorm.DB, id, ustaID string) (*dto.InvitationResponse, error) {
	var invitation *models.Invitation
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		invitation, err = s.invitationRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrInvitationNotFound) {
				return apperrors.ErrNotFound(err, invitationDomain, "invitation not found")
			}
			return apperrors.StorageError(err)
		}

		if invitation.UstaID != ustaID {
			return apperrors.NewForbiddenError("invitation is not addressed to you")
		}

		if invitation.ViewedAt != nil {
			return nil
		}

		invitation.ViewedAt = &now
		if err := s.invitationRepo.Update(tx, invitation); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvitationResponse(invitation, now), nil
}

func (s *invitationService) Respond(db *gorm.DB, id, ustaID string, req *dto.RespondInvitationRequest) (*dto.InvitationResponse, error) {
	newStatus := models.InvitationStatus(req.Status)
	if newStatus != models.InvitationStatusAccepted && newStatus != models.InvitationStatusRejected {
		return nil, apperrors.ErrInvalidOperation(invitationDomain, "response status must be accepted or rejected")
	}

	// Alternative times belong to rejections. Accepting means agreeing to
	// the proposed terms as they are.
	if newStatus == models.InvitationStatusAccepted && req.AlternativeTime != nil {
		return nil, apperrors.ValidationError(map[string]string{
			"alternative_time": "cannot be combined with an acceptance",
		})
	}

	var invitation *models.Invitation
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		invitation, err = s.invitationRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrInvitationNotFound) {
				return apperrors.ErrNotFound(err, invitationDomain, "invitation not found")
			}
			return apperrors.StorageError(err)
		}

		if invitation.UstaID != ustaID {
			return apperrors.NewForbiddenError("invitation is not addressed to you")
		}

		if invitation.ExpiredBy(now) {
			// Persist the lazy expiry so the row stops looking pending.
			invitation.Status = models.InvitationStatusExpired
			if err := s.invitationRepo.Update(tx, invitation); err != nil {
				return apperrors.StorageError(err)
			}
			return apperrors.ErrInvalidState(invitationDomain, "invitation", string(models.InvitationStatusExpired))
		}

		if invitation.Status != models.InvitationStatusPending {
			return apperrors.ErrInvalidState(invitationDomain, "invitation", string(invitation.Status))
		}

		invitation.Status = newStatus
		invitation.ResponseMessage = req.Message
		invitation.AlternativeTime = req.AlternativeTime
		invitation.RespondedAt = &now
		if invitation.ViewedAt == nil {
			invitation.ViewedAt = &now
		}

		if err := s.invitationRepo.Update(tx, invitation); err != nil {
			return apperrors.StorageError(err)
		}

		if err := s.notificationRepo.CreateInvitationStatusNotification(tx, invitation.CustomerID, invitation.ID, newStatus); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("invitation responded",
		"invitation_id", invitation.ID,
		"usta_id", ustaID,
		"status", invitation.Status)

	return toInvitationResponse(invitation, now), nil
}

func (s *invitationService) Cancel(db *gorm.DB, id, customerID string) (*dto.InvitationResponse, error) {
	var invitation *models.Invitation
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		invitation, err = s.invitationRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrInvitationNotFound) {
				return apperrors.ErrNotFound(err, invitationDomain, "invitation not found")
			}
			return apperrors.StorageError(err)
		}

		if invitation.CustomerID != customerID {
			return apperrors.NewForbiddenError("invitation was not sent by you")
		}

		if invitation.ExpiredBy(now) {
			invitation.Status = models.InvitationStatusExpired
			if err := s.invitationRepo.Update(tx, invitation); err != nil {
				return apperrors.StorageError(err)
			}
			return apperrors.ErrInvalidState(invitationDomain, "invitation", string(models.InvitationStatusExpired))
		}

		if invitation.Status != models.InvitationStatusPending {
			return apperrors.ErrInvalidState(invitationDomain, "invitation", string(invitation.Status))
		}

		invitation.Status = models.InvitationStatusCanceled
		invitation.CanceledAt = &now
		if err := s.invitationRepo.Update(tx, invitation); err != nil {
			return apperrors.StorageError(err)
		}

		if err := s.notificationRepo.CreateInvitationStatusNotification(tx, invitation.UstaID, invitation.ID, models.InvitationStatusCanceled); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("invitation canceled", "invitation_id", invitation.ID, "customer_id", customerID)

	return toInvitationResponse(invitation, now), nil
}

// FollowUp creates a new invitation chained to a rejected or expired one.
// The original row stays untouched.
func (s *invitationService) FollowUp(db *gorm.DB, previousID, customerID string, req *dto.FollowUpInvitationRequest) (*dto.InvitationResponse, error) {
	var invitation *models.Invitation
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		previous, err := s.invitationRepo.FindByIDForUpdate(tx, previousID)
		if err != nil {
			if errors.Is(err, repositories.ErrInvitationNotFound) {
				return apperrors.ErrNotFound(err, invitationDomain, "invitation not found")
			}
			return apperrors.StorageError(err)
		}

		if previous.CustomerID != customerID {
			return apperrors.NewForbiddenError("invitation was not sent by you")
		}

		if previous.ExpiredBy(now) {
			previous.Status = models.InvitationStatusExpired
			if err := s.invitationRepo.Update(tx, previous); err != nil {
				return apperrors.StorageError(err)
			}
		}

		if previous.Status != models.InvitationStatusRejected && previous.Status != models.InvitationStatusExpired {
			return apperrors.ErrInvalidOperation(invitationDomain,
				"follow-up is only allowed after a rejected or expired invitation")
		}

		active, err := s.invitationRepo.HasActivePending(tx, previous.UstaID, customerID, previous.JobID, now)
		if err != nil {
			return apperrors.StorageError(err)
		}
		if active {
			return apperrors.ErrConflict(nil, invitationDomain, "an active invitation to this usta already exists")
		}

		invitation = &models.Invitation{
			UstaID:               previous.UstaID,
			CustomerID:           customerID,
			JobID:                previous.JobID,
			Status:               models.InvitationStatusPending,
			Type:                 models.InvitationTypeFollowUp,
			Message:              req.Message,
			PreferredTime:        req.PreferredTime,
			ExpiresAt:            now.AddDate(0, 0, config.GetConfig().Invitations.ExpiryDays),
			PreviousInvitationID: &previous.ID,
		}

		if err := s.invitationRepo.Create(tx, invitation); err != nil {
			return apperrors.StorageError(err)
		}

		if err := s.notificationRepo.CreateInvitationNotification(tx, invitation.UstaID, invitation.ID, invitation.Type); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("follow-up invitation created",
		"invitation_id", invitation.ID,
		"previous_invitation_id", previousID)

	return toInvitationResponse(invitation, now), nil
}

func (s *invitationService) List(db *gorm.DB, filter *dto.InvitationListFilter) (*dto.InvitationListResponse, error) {
	criteria := repositories.InvitationCriteria{
		UstaID:     filter.UstaID,
		CustomerID: filter.CustomerID,
		Status:     filter.Status,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}

	invitations, total, err := s.invitationRepo.List(db, criteria)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	now := time.Now()
	items := make([]*dto.InvitationResponse, 0, len(invitations))
	for i := range invitations {
		items = append(items, toInvitationResponse(&invitations[i], now))
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.InvitationListResponse{
		Invitations: items,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func (s *invitationService) GetChain(db *gorm.DB, id, callerID string) ([]*dto.InvitationResponse, error) {
	chain, err := s.invitationRepo.FindChain(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, apperrors.ErrNotFound(err, invitationDomain, "invitation not found")
		}
		return nil, apperrors.StorageError(err)
	}

	if len(chain) > 0 {
		head := chain[0]
		if head.UstaID != callerID && head.CustomerID != callerID {
			return nil, apperrors.NewForbiddenError("invitation does not involve you")
		}
	}

	now := time.Now()
	items := make([]*dto.InvitationResponse, 0, len(chain))
	for i := range chain {
		items = append(items, toInvitationResponse(&chain[i], now))
	}
	return items, nil
}

// toInvitationResponse maps a row to its API shape, applying lazy expiry
// so callers never see a pending invitation past its deadline.
func toInvitationResponse(inv *models.Invitation, now time.Time) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:                   inv.ID,
		UstaID:               inv.UstaID,
		CustomerID:           inv.CustomerID,
		JobID:                inv.JobID,
		Status:               inv.EffectiveStatus(now),
		Type:                 inv.Type,
		Message:              inv.Message,
		PreferredTime:        inv.PreferredTime,
		ResponseMessage:      inv.ResponseMessage,
		AlternativeTime:      inv.AlternativeTime,
		ExpiresAt:            inv.ExpiresAt,
		ViewedAt:             inv.ViewedAt,
		RespondedAt:          inv.RespondedAt,
		PreviousInvitationID: inv.PreviousInvitationID,
		CreatedAt:            inv.CreatedAt,
	}
}
