package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

const jobDomain = "job"

type JobService interface {
	Create(db *gorm.DB, customerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	Get(db *gorm.DB, id string, viewerID string) (*dto.JobResponse, error)
	ListOpen(db *gorm.DB) ([]*dto.JobResponse, error)
	ListByCustomer(db *gorm.DB, customerID string) ([]*dto.JobResponse, error)
	UpdateStatus(db *gorm.DB, id, customerID string, req *dto.UpdateJobStatusRequest) (*dto.JobResponse, error)
}

type jobService struct {
	jobRepo      repositories.JobRepository
	userRepo     repositories.UserRepository
	locationRepo repositories.LocationRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	locationRepo repositories.LocationRepository,
) JobService {
	return &jobService{jobRepo: jobRepo, userRepo: userRepo, locationRepo: locationRepo}
}

func (s *jobService) Create(db *gorm.DB, customerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if _, err := s.userRepo.FindActiveWithRole(db, customerID, models.UserRoleCustomer); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, jobDomain, "customer not found or not active")
		}
		return nil, apperrors.StorageError(err)
	}

	if req.BudgetMin > 0 && req.BudgetMax > 0 && req.BudgetMax < req.BudgetMin {
		return nil, apperrors.ValidationError(map[string]string{
			"budget_max": "must not be below budget_min",
		})
	}

	var tags datatypes.JSON
	if len(req.Tags) > 0 {
		raw, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		tags = datatypes.JSON(raw)
	}

	job := &models.Job{
		CustomerID:  customerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        tags,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Status:      models.JobStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.jobRepo.Create(tx, job); err != nil {
			return apperrors.StorageError(err)
		}

		if req.Location != nil {
			location := &models.Location{
				OwnerID:     job.ID,
				OwnerType:   models.LocationOwnerJob,
				Latitude:    req.Location.Latitude,
				Longitude:   req.Location.Longitude,
				Address:     req.Location.Address,
				City:        req.Location.City,
				MaxDistance: req.Location.MaxDistance,
			}
			if err := s.locationRepo.Upsert(tx, location); err != nil {
				return apperrors.StorageError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("job created", "job_id", job.ID, "customer_id", customerID)

	return toJobResponse(job), nil
}

func (s *jobService) Get(db *gorm.DB, id string, viewerID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err, jobDomain, "job not found")
		}
		return nil, apperrors.StorageError(err)
	}

	if viewerID != "" && viewerID != job.CustomerID {
		if err := s.jobRepo.IncrementViews(db, job.ID); err != nil {
			logger.WithError(err).Warn("failed to record job view", "job_id", job.ID)
		} else {
			job.Views++
		}
	}

	return toJobResponse(job), nil
}

func (s *jobService) ListOpen(db *gorm.DB) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindOpen(db)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return toJobResponses(jobs), nil
}

func (s *jobService) ListByCustomer(db *gorm.DB, customerID string) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByCustomer(db, customerID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	return toJobResponses(jobs), nil
}

// jobTransitions lists the owner-driven status moves. Activation happens
// through contract acceptance, not here.
var jobTransitions = map[models.JobStatus][]models.JobStatus{
	models.JobStatusPending: {models.JobStatusCancelled},
	models.JobStatusActive:  {models.JobStatusCompleted, models.JobStatusCancelled},
}

func (s *jobService) UpdateStatus(db *gorm.DB, id, customerID string, req *dto.UpdateJobStatusRequest) (*dto.JobResponse, error) {
	newStatus := models.JobStatus(req.Status)

	var job *models.Job
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		job, err = s.jobRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return apperrors.ErrNotFound(err, jobDomain, "job not found")
			}
			return apperrors.StorageError(err)
		}

		if job.CustomerID != customerID {
			return apperrors.NewForbiddenError("job does not belong to you")
		}

		allowed := false
		for _, next := range jobTransitions[job.Status] {
			if next == newStatus {
				allowed = true
				break
			}
		}
		if !allowed {
			return apperrors.ErrInvalidState(jobDomain, "job", string(job.Status))
		}

		if err := s.jobRepo.UpdateStatus(tx, job.ID, newStatus); err != nil {
			return apperrors.StorageError(err)
		}
		job.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("job status updated", "job_id", job.ID, "status", job.Status)

	return toJobResponse(job), nil
}

func toJobResponse(j *models.Job) *dto.JobResponse {
	var tags []string
	if len(j.Tags) > 0 {
		_ = json.Unmarshal(j.Tags, &tags)
	}

	return &dto.JobResponse{
		ID:          j.ID,
		CustomerID:  j.CustomerID,
		Title:       j.Title,
		Description: j.Description,
		Category:    j.Category,
		Tags:        tags,
		BudgetMin:   j.BudgetMin,
		BudgetMax:   j.BudgetMax,
		Status:      j.Status,
		Views:       j.Views,
		CreatedAt:   j.CreatedAt,
	}
}

func toJobResponses(jobs []models.Job) []*dto.JobResponse {
	items := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, toJobResponse(&jobs[i]))
	}
	return items
}
