package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"ustahub_backend/internal/logger"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

const ratingDomain = "rating"

// ratingEditWindow bounds how long a customer may amend their rating.
const ratingEditWindow = 7 * 24 * time.Hour

// RatingService owns ratings and the derived aggregates on the usta row.
// Every write recomputes AverageRating and TotalRatings from the full
// rating set inside the same transaction, under a lock on the user row.
type RatingService interface {
	Create(db *gorm.DB, customerID string, req *dto.CreateRatingRequest) (*dto.RatingResponse, error)
	Update(db *gorm.DB, id, customerID string, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error)
	Respond(db *gorm.DB, id, ustaID string, req *dto.RespondRatingRequest) (*dto.RatingResponse, error)
	Get(db *gorm.DB, id string) (*dto.RatingResponse, error)
	ListByUsta(db *gorm.DB, ustaID string) ([]*dto.RatingResponse, error)
	Stats(db *gorm.DB, ustaID string) (*dto.RatingStats, error)
	Recompute(db *gorm.DB, ustaID string) (*dto.RatingStats, error)
}

type ratingService struct {
	ratingRepo       repositories.RatingRepository
	userRepo         repositories.UserRepository
	jobRepo          repositories.JobRepository
	notificationRepo repositories.NotificationRepository
}

func NewRatingService(
	ratingRepo repositories.RatingRepository,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	notificationRepo repositories.NotificationRepository,
) RatingService {
	return &ratingService{
		ratingRepo:       ratingRepo,
		userRepo:         userRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *ratingService) Create(db *gorm.DB, customerID string, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if req.UstaID == customerID {
		return nil, apperrors.ErrInvalidOperation(ratingDomain, "cannot rate yourself")
	}

	if _, err := s.userRepo.FindActiveWithRole(db, req.UstaID, models.UserRoleUsta); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, ratingDomain, "usta not found or not active")
		}
		return nil, apperrors.StorageError(err)
	}

	if req.JobID != nil {
		job, err := s.jobRepo.FindByID(db, *req.JobID)
		if err != nil {
			if errors.Is(err, repositories.ErrJobNotFound) {
				return nil, apperrors.ErrNotFound(err, ratingDomain, "job not found")
			}
			return nil, apperrors.StorageError(err)
		}
		if job.CustomerID != customerID {
			return nil, apperrors.NewForbiddenError("job does not belong to you")
		}
		if job.Status != models.JobStatusCompleted {
			return nil, apperrors.ErrInvalidState(ratingDomain, "job", string(job.Status))
		}
	}

	rating := &models.Rating{
		UstaID:              req.UstaID,
		CustomerID:          customerID,
		JobID:               req.JobID,
		Rating:              req.Rating,
		Comment:             req.Comment,
		ServiceSatisfaction: req.ServiceSatisfaction,
		Communication:       req.Communication,
		Timeliness:          req.Timeliness,
		ValueForMoney:       req.ValueForMoney,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if req.JobID != nil {
			exists, err := s.ratingRepo.ExistsForJobAndCustomer(tx, *req.JobID, customerID)
			if err != nil {
				return apperrors.StorageError(err)
			}
			if exists {
				return apperrors.ErrConflict(repositories.ErrRatingAlreadyExists, ratingDomain,
					"you already rated this job")
			}
		}

		if err := s.ratingRepo.Create(tx, rating); err != nil {
			return apperrors.StorageError(err)
		}

		if _, err := s.recomputeLocked(tx, rating.UstaID); err != nil {
			return err
		}

		if err := s.notificationRepo.CreateRatingNotification(tx, rating.UstaID, rating.ID, rating.Rating); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("rating created",
		"rating_id", rating.ID,
		"usta_id", rating.UstaID,
		"rating", rating.Rating)

	return toRatingResponse(rating), nil
}

func (s *ratingService) Update(db *gorm.DB, id, customerID string, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error) {
	var rating *models.Rating
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		rating, err = s.ratingRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrRatingNotFound) {
				return apperrors.ErrNotFound(err, ratingDomain, "rating not found")
			}
			return apperrors.StorageError(err)
		}

		if rating.CustomerID != customerID {
			return apperrors.NewForbiddenError("rating was not written by you")
		}

		if now.Sub(rating.CreatedAt) > ratingEditWindow {
			return apperrors.ErrEditWindowExpired(ratingDomain,
				"ratings can only be edited within 7 days of creation")
		}

		if req.Rating != nil {
			rating.Rating = *req.Rating
		}
		if req.Comment != nil {
			rating.Comment = *req.Comment
		}
		if req.ServiceSatisfaction != nil {
			rating.ServiceSatisfaction = req.ServiceSatisfaction
		}
		if req.Communication != nil {
			rating.Communication = req.Communication
		}
		if req.Timeliness != nil {
			rating.Timeliness = req.Timeliness
		}
		if req.ValueForMoney != nil {
			rating.ValueForMoney = req.ValueForMoney
		}

		if err := s.ratingRepo.Update(tx, rating); err != nil {
			return apperrors.StorageError(err)
		}

		_, err = s.recomputeLocked(tx, rating.UstaID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("rating updated", "rating_id", rating.ID, "customer_id", customerID)

	return toRatingResponse(rating), nil
}

// Respond attaches the usta's single textual reply to a rating.
func (s *ratingService) Respond(db *gorm.DB, id, ustaID string, req *dto.RespondRatingRequest) (*dto.RatingResponse, error) {
	var rating *models.Rating
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		rating, err = s.ratingRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrRatingNotFound) {
				return apperrors.ErrNotFound(err, ratingDomain, "rating not found")
			}
			return apperrors.StorageError(err)
		}

		if rating.UstaID != ustaID {
			return apperrors.NewForbiddenError("rating is not about you")
		}

		if rating.Response != nil {
			return apperrors.ErrConflict(nil, ratingDomain, "rating already has a response")
		}

		rating.Response = &req.Response
		rating.RespondedAt = &now

		if err := s.ratingRepo.Update(tx, rating); err != nil {
			return apperrors.StorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toRatingResponse(rating), nil
}

func (s *ratingService) Get(db *gorm.DB, id string) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRatingNotFound) {
			return nil, apperrors.ErrNotFound(err, ratingDomain, "rating not found")
		}
		return nil, apperrors.StorageError(err)
	}
	return toRatingResponse(rating), nil
}

func (s *ratingService) ListByUsta(db *gorm.DB, ustaID string) ([]*dto.RatingResponse, error) {
	ratings, err := s.ratingRepo.FindByUsta(db, ustaID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	items := make([]*dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		items = append(items, toRatingResponse(&ratings[i]))
	}
	return items, nil
}

// Stats computes the aggregate view without persisting anything. It uses
// the same computation as Recompute, so the two never disagree.
func (s *ratingService) Stats(db *gorm.DB, ustaID string) (*dto.RatingStats, error) {
	if _, err := s.userRepo.FindByID(db, ustaID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, ratingDomain, "usta not found")
		}
		return nil, apperrors.StorageError(err)
	}

	ratings, err := s.ratingRepo.FindByUsta(db, ustaID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return computeRatingStats(ustaID, ratings), nil
}

// Recompute rebuilds the persisted aggregates from the full rating set.
func (s *ratingService) Recompute(db *gorm.DB, ustaID string) (*dto.RatingStats, error) {
	var stats *dto.RatingStats
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = s.recomputeLocked(tx, ustaID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// recomputeLocked recalculates and persists the usta's aggregates. The
// user row is locked first so concurrent rating writes serialize here.
func (s *ratingService) recomputeLocked(tx *gorm.DB, ustaID string) (*dto.RatingStats, error) {
	if _, err := s.userRepo.FindByIDForUpdate(tx, ustaID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, ratingDomain, "usta not found")
		}
		return nil, apperrors.StorageError(err)
	}

	ratings, err := s.ratingRepo.FindByUsta(tx, ustaID)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	stats := computeRatingStats(ustaID, ratings)

	if err := s.userRepo.UpdateRatingMetrics(tx, ustaID, stats.AverageRating, stats.TotalRatings); err != nil {
		return nil, apperrors.StorageError(err)
	}
	return stats, nil
}

// computeRatingStats is the single source of truth for rating math.
// The mean is rounded to two decimals; the distribution buckets by
// floor(rating) clamped to 1..5; dimension means skip null scores.
func computeRatingStats(ustaID string, ratings []models.Rating) *dto.RatingStats {
	stats := &dto.RatingStats{
		UstaID:             ustaID,
		RatingDistribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	if len(ratings) == 0 {
		return stats
	}

	var sum float64
	dims := map[string]struct {
		sum   float64
		count int64
	}{}

	addDim := func(name string, v *float64) {
		if v == nil {
			return
		}
		d := dims[name]
		d.sum += *v
		d.count++
		dims[name] = d
	}

	for i := range ratings {
		r := &ratings[i]
		sum += r.Rating

		bucket := int(math.Floor(r.Rating))
		if bucket < 1 {
			bucket = 1
		}
		if bucket > 5 {
			bucket = 5
		}
		stats.RatingDistribution[bucket]++

		addDim("service_satisfaction", r.ServiceSatisfaction)
		addDim("communication", r.Communication)
		addDim("timeliness", r.Timeliness)
		addDim("value_for_money", r.ValueForMoney)
	}

	stats.TotalRatings = int64(len(ratings))
	stats.AverageRating = round2(sum / float64(len(ratings)))

	dimAvg := func(name string) float64 {
		d := dims[name]
		if d.count == 0 {
			return 0
		}
		return round2(d.sum / float64(d.count))
	}
	stats.DimensionAverages = dto.DimensionAverages{
		ServiceSatisfaction: dimAvg("service_satisfaction"),
		Communication:       dimAvg("communication"),
		Timeliness:          dimAvg("timeliness"),
		ValueForMoney:       dimAvg("value_for_money"),
	}

	return stats
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func toRatingResponse(r *models.Rating) *dto.RatingResponse {
	return &dto.RatingResponse{
		ID:                  r.ID,
		UstaID:              r.UstaID,
		CustomerID:          r.CustomerID,
		JobID:               r.JobID,
		Rating:              r.Rating,
		Comment:             r.Comment,
		ServiceSatisfaction: r.ServiceSatisfaction,
		Communication:       r.Communication,
		Timeliness:          r.Timeliness,
		ValueForMoney:       r.ValueForMoney,
		Response:            r.Response,
		RespondedAt:         r.RespondedAt,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
