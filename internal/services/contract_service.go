package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"ustahub_backend/internal/email"
	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

const contractDomain = "contract"

// ContractService drives contract offers: pending -> accepted | rejected.
// Acceptance cascades in one transaction: the job goes active, the
// proposal is marked accepted and the usta's hire counter increments.
type ContractService interface {
	Create(db *gorm.DB, customerID string, req *dto.CreateContractRequest) (*dto.ContractResponse, error)
	Respond(db *gorm.DB, id, ustaID string, req *dto.UpdateContractStatusRequest) (*dto.ContractResponse, error)
	Get(db *gorm.DB, id, callerID string) (*dto.ContractResponse, error)
	ListByUsta(db *gorm.DB, ustaID string) ([]*dto.ContractResponse, error)
	ListByCustomer(db *gorm.DB, customerID string) ([]*dto.ContractResponse, error)
}

type contractService struct {
	contractRepo     repositories.ContractRepository
	jobRepo          repositories.JobRepository
	proposalRepo     repositories.ProposalRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	emailer          email.Provider
}

func NewContractService(
	contractRepo repositories.ContractRepository,
	jobRepo repositories.JobRepository,
	proposalRepo repositories.ProposalRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	emailer email.Provider,
) ContractService {
	return &contractService{
		contractRepo:     contractRepo,
		jobRepo:          jobRepo,
		proposalRepo:     proposalRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailer:          emailer,
	}
}

func (s *contractService) Create(db *gorm.DB, customerID string, req *dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, apperrors.ValidationError(map[string]string{
			"end_date": "must not precede start_date",
		})
	}

	var (
		contract *models.Contract
		job      *models.Job
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		job, err = s.jobRepo.FindByIDForUpdate(tx, req.JobID)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return apperrors.ErrNotFound(err, contractDomain, "job not found")
			}
			return apperrors.StorageError(err)
		}
		if job.CustomerID != customerID {
			return apperrors.NewForbiddenError("job does not belong to you")
		}
		if job.Status != models.JobStatusPending {
			return apperrors.ErrInvalidState(contractDomain, "job", string(job.Status))
		}

		proposal, err := s.proposalRepo.FindByID(tx, req.JobProposalID)
		if err != nil {
			if errors.Is(err, repositories.ErrProposalNotFound) {
				return apperrors.ErrNotFound(err, contractDomain, "proposal not found")
			}
			return apperrors.StorageError(err)
		}
		if proposal.JobID != job.ID {
			return apperrors.ErrInvalidOperation(contractDomain, "proposal does not belong to this job")
		}
		if proposal.UstaID != req.UstaID {
			return apperrors.ErrInvalidOperation(contractDomain, "proposal does not belong to this usta")
		}
		if proposal.Status != models.ProposalStatusPending {
			return apperrors.ErrInvalidState(contractDomain, "proposal", string(proposal.Status))
		}

		exists, err := s.contractRepo.ExistsForProposal(tx, proposal.ID)
		if err != nil {
			return apperrors.StorageError(err)
		}
		if exists {
			return apperrors.ErrConflict(nil, contractDomain, "a contract for this proposal already exists")
		}

		contract = &models.Contract{
			JobID:         job.ID,
			JobProposalID: proposal.ID,
			UstaID:        proposal.UstaID,
			CreatedBy:     customerID,
			Status:        models.ContractStatusPending,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			TotalCost:     req.TotalCost,
			Details:       req.Details,
		}

		if err := s.contractRepo.Create(tx, contract); err != nil {
			return apperrors.StorageError(err)
		}

		if err := s.notificationRepo.CreateContractNotification(tx, contract.UstaID, contract.ID); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("contract created",
		"contract_id", contract.ID,
		"job_id", contract.JobID,
		"usta_id", contract.UstaID)

	// Mail is best-effort; the contract is already committed.
	if s.emailer != nil {
		if usta, err := s.userRepo.FindByID(db, contract.UstaID); err == nil {
			if err := s.emailer.SendContractOffer(usta.Email, job.Title); err != nil {
				logger.WithError(err).Warn("failed to send contract email", "contract_id", contract.ID)
			}
		}
	}

	return toContractResponse(contract), nil
}

func (s *contractService) Respond(db *gorm.DB, id, ustaID string, req *dto.UpdateContractStatusRequest) (*dto.ContractResponse, error) {
	newStatus := models.ContractStatus(req.Status)
	if newStatus != models.ContractStatusAccepted && newStatus != models.ContractStatusRejected {
		return nil, apperrors.ErrInvalidOperation(contractDomain, "response status must be accepted or rejected")
	}

	var contract *models.Contract
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		contract, err = s.contractRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrContractNotFound) {
				return apperrors.ErrNotFound(err, contractDomain, "contract not found")
			}
			return apperrors.StorageError(err)
		}

		if contract.UstaID != ustaID {
			return apperrors.NewForbiddenError("contract is not addressed to you")
		}

		if contract.Status != models.ContractStatusPending {
			return apperrors.ErrInvalidState(contractDomain, "contract", string(contract.Status))
		}

		if err := s.contractRepo.UpdateStatus(tx, contract.ID, newStatus, now); err != nil {
			return apperrors.StorageError(err)
		}
		contract.Status = newStatus
		contract.RespondedAt = &now

		if newStatus == models.ContractStatusAccepted {
			// Acceptance is atomic with its side effects: if any of these
			// fail the contract stays pending.
			if err := s.jobRepo.UpdateStatus(tx, contract.JobID, models.JobStatusActive); err != nil {
				return apperrors.StorageError(err)
			}
			if err := s.proposalRepo.UpdateStatus(tx, contract.JobProposalID, models.ProposalStatusAccepted); err != nil {
				return apperrors.StorageError(err)
			}
			if err := s.userRepo.IncrementTotalHires(tx, contract.UstaID); err != nil {
				return apperrors.StorageError(err)
			}
		}

		if err := s.notificationRepo.CreateContractStatusNotification(tx, contract.CreatedBy, contract.ID, newStatus); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("contract responded",
		"contract_id", contract.ID,
		"usta_id", ustaID,
		"status", contract.Status)

	return toContractResponse(contract), nil
}

func (s *contractService) Get(db *gorm.DB, id, callerID string) (*dto.ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrContractNotFound) {
			return nil, apperrors.ErrNotFound(err, contractDomain, "contract not found")
		}
		return nil, apperrors.StorageError(err)
	}

	if contract.UstaID != callerID && contract.CreatedBy != callerID {
		return nil, apperrors.NewForbiddenError("contract does not involve you")
	}

	return toContractResponse(contract), nil
}

func (s *contractService) ListByUsta(db *gorm.DB, ustaID string) ([]*dto.ContractResponse, error) {
	contracts, err := s.contractRepo.FindByUsta(db, ustaID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return toContractResponses(contracts), nil
}

func (s *contractService) ListByCustomer(db *gorm.DB, customerID string) ([]*dto.ContractResponse, error) {
	contracts, err := s.contractRepo.FindByCustomer(db, customerID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return toContractResponses(contracts), nil
}

func toContractResponse(c *models.Contract) *dto.ContractResponse {
	return &dto.ContractResponse{
		ID:            c.ID,
		JobID:         c.JobID,
		JobProposalID: c.JobProposalID,
		UstaID:        c.UstaID,
		CreatedBy:     c.CreatedBy,
		Status:        c.Status,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		TotalCost:     c.TotalCost,
		Details:       c.Details,
		RespondedAt:   c.RespondedAt,
		CreatedAt:     c.CreatedAt,
	}
}

func toContractResponses(contracts []models.Contract) []*dto.ContractResponse {
	items := make([]*dto.ContractResponse, 0, len(contracts))
	for i := range contracts {
		items = append(items, toContractResponse(&contracts[i]))
	}
	return items
}
