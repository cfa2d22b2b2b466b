package services

import (
	"errors"

	"gorm.io/gorm"

	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

const proposalDomain = "proposal"

type ProposalService interface {
	Create(db *gorm.DB, ustaID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error)
	Get(db *gorm.DB, id, callerID string) (*dto.ProposalResponse, error)
	ListByJob(db *gorm.DB, jobID, customerID string) ([]*dto.ProposalResponse, error)
}

type proposalService struct {
	proposalRepo repositories.ProposalRepository
	jobRepo      repositories.JobRepository
	userRepo     repositories.UserRepository
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
) ProposalService {
	return &proposalService{proposalRepo: proposalRepo, jobRepo: jobRepo, userRepo: userRepo}
}

func (s *proposalService) Create(db *gorm.DB, ustaID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	if _, err := s.userRepo.FindActiveWithRole(db, ustaID, models.UserRoleUsta); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, proposalDomain, "usta not found or not active")
		}
		return nil, apperrors.StorageError(err)
	}

	proposalType := models.ProposalTypeFixed
	if req.Type != "" {
		proposalType = models.ProposalType(req.Type)
	}
	if proposalType == models.ProposalTypeMilestone && len(req.Milestones) == 0 {
		return nil, apperrors.ValidationError(map[string]string{
			"milestones": "milestone proposals need at least one milestone",
		})
	}

	var proposal *models.JobProposal

	err := db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.FindByID(tx, req.JobID)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return apperrors.ErrNotFound(err, proposalDomain, "job not found")
			}
			return apperrors.StorageError(err)
		}
		if job.CustomerID == ustaID {
			return apperrors.ErrInvalidOperation(proposalDomain, "cannot bid on your own job")
		}
		if job.Status != models.JobStatusPending {
			return apperrors.ErrInvalidState(proposalDomain, "job", string(job.Status))
		}

		existing, err := s.proposalRepo.FindByJob(tx, job.ID)
		if err != nil {
			return apperrors.StorageError(err)
		}
		for i := range existing {
			if existing[i].UstaID == ustaID {
				return apperrors.ErrConflict(nil, proposalDomain, "you already bid on this job")
			}
		}

		milestones := make([]models.Milestone, 0, len(req.Milestones))
		for i, m := range req.Milestones {
			milestones = append(milestones, models.Milestone{
				Title:       m.Title,
				Description: m.Description,
				Amount:      m.Amount,
				DueDate:     m.DueDate,
				Position:    i,
			})
		}

		proposal = &models.JobProposal{
			JobID:       job.ID,
			UstaID:      ustaID,
			CoverLetter: req.CoverLetter,
			Amount:      req.Amount,
			Type:        proposalType,
			Status:      models.ProposalStatusPending,
			Milestones:  milestones,
		}

		if err := s.proposalRepo.Create(tx, proposal); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("proposal created", "proposal_id", proposal.ID, "job_id", proposal.JobID, "usta_id", ustaID)

	return toProposalResponse(proposal), nil
}

func (s *proposalService) Get(db *gorm.DB, id, callerID string) (*dto.ProposalResponse, error) {
	proposal, err := s.proposalRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProposalNotFound) {
			return nil, apperrors.ErrNotFound(err, proposalDomain, "proposal not found")
		}
		return nil, apperrors.StorageError(err)
	}

	if proposal.UstaID != callerID {
		job, err := s.jobRepo.FindByID(db, proposal.JobID)
		if err != nil {
			return nil, apperrors.StorageError(err)
		}
		if job.CustomerID != callerID {
			return nil, apperrors.NewForbiddenError("proposal does not involve you")
		}
	}

	return toProposalResponse(proposal), nil
}

func (s *proposalService) ListByJob(db *gorm.DB, jobID, customerID string) ([]*dto.ProposalResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err, proposalDomain, "job not found")
		}
		return nil, apperrors.StorageError(err)
	}
	if job.CustomerID != customerID {
		return nil, apperrors.NewForbiddenError("job does not belong to you")
	}

	proposals, err := s.proposalRepo.FindByJob(db, jobID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		items = append(items, toProposalResponse(&proposals[i]))
	}
	return items, nil
}

func toProposalResponse(p *models.JobProposal) *dto.ProposalResponse {
	milestones := make([]dto.MilestoneResponse, 0, len(p.Milestones))
	for _, m := range p.Milestones {
		milestones = append(milestones, dto.MilestoneResponse{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Amount:      m.Amount,
			DueDate:     m.DueDate,
			Position:    m.Position,
		})
	}

	return &dto.ProposalResponse{
		ID:          p.ID,
		JobID:       p.JobID,
		UstaID:      p.UstaID,
		CoverLetter: p.CoverLetter,
		Amount:      p.Amount,
		Type:        p.Type,
		Status:      p.Status,
		Milestones:  milestones,
		CreatedAt:   p.CreatedAt,
	}
}
