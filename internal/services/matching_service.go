package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"ustahub_backend/internal/config"
	"ustahub_backend/internal/geo"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/repositories"
	"ustahub_backend/internal/services/dto"
	"ustahub_backend/pkg/apperrors"
)

const matchingDomain = "matching"

const defaultMatchLimit = 20

// MatchingService answers proximity queries between customers, jobs and
// ustas. The distance cutoff is a hard filter; within it ustas rank by
// rating, then hires, then distance. Candidates without a stored location
// never match.
type MatchingService interface {
	UstasNearCustomer(db *gorm.DB, customerID string, filter *dto.NearbyFilter) ([]*dto.UstaMatch, error)
	UstasNearJob(db *gorm.DB, jobID string, filter *dto.NearbyFilter) ([]*dto.UstaMatch, error)
	JobsNearUsta(db *gorm.DB, ustaID string, filter *dto.NearbyFilter) ([]*dto.JobMatch, error)
}

type matchingService struct {
	userRepo     repositories.UserRepository
	jobRepo      repositories.JobRepository
	locationRepo repositories.LocationRepository
}

func NewMatchingService(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	locationRepo repositories.LocationRepository,
) MatchingService {
	return &matchingService{
		userRepo:     userRepo,
		jobRepo:      jobRepo,
		locationRepo: locationRepo,
	}
}

func (s *matchingService) UstasNearCustomer(db *gorm.DB, customerID string, filter *dto.NearbyFilter) ([]*dto.UstaMatch, error) {
	origin, err := s.ownerLocation(db, models.LocationOwnerCustomer, customerID)
	if err != nil {
		return nil, err
	}
	return s.ustasNear(db, origin, filter)
}

func (s *matchingService) UstasNearJob(db *gorm.DB, jobID string, filter *dto.NearbyFilter) ([]*dto.UstaMatch, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err, matchingDomain, "job not found")
		}
		return nil, apperrors.StorageError(err)
	}

	// Jobs fall back to the customer's location when they carry none of
	// their own.
	origin, err := s.locationRepo.FindByOwner(db, models.LocationOwnerJob, job.ID)
	if errors.Is(err, repositories.ErrLocationNotFound) {
		origin, err = s.locationRepo.FindByOwner(db, models.LocationOwnerCustomer, job.CustomerID)
		if errors.Is(err, repositories.ErrLocationNotFound) {
			return nil, apperrors.ErrInvalidOperation(matchingDomain, "job has no location to search from")
		}
	}
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return s.ustasNear(db, origin, filter)
}

func (s *matchingService) JobsNearUsta(db *gorm.DB, ustaID string, filter *dto.NearbyFilter) ([]*dto.JobMatch, error) {
	origin, err := s.ownerLocation(db, models.LocationOwnerUsta, ustaID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.FindOpen(db)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	jobIDs := make([]string, 0, len(jobs))
	customerIDs := make([]string, 0, len(jobs))
	for i := range jobs {
		jobIDs = append(jobIDs, jobs[i].ID)
		customerIDs = append(customerIDs, jobs[i].CustomerID)
	}

	jobLocations, err := s.locationRepo.FindByOwners(db, models.LocationOwnerJob, jobIDs)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}
	customerLocations, err := s.locationRepo.FindByOwners(db, models.LocationOwnerCustomer, customerIDs)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	maxDist, limit := resolveFilter(origin, filter)
	from := geo.Point{Latitude: origin.Latitude, Longitude: origin.Longitude}

	matches := make([]*dto.JobMatch, 0)
	for i := range jobs {
		job := &jobs[i]

		loc, ok := jobLocations[job.ID]
		if !ok {
			loc, ok = customerLocations[job.CustomerID]
		}
		if !ok {
			continue
		}

		dist := geo.DistanceKm(from, geo.Point{Latitude: loc.Latitude, Longitude: loc.Longitude})
		if dist > maxDist {
			continue
		}

		matches = append(matches, &dto.JobMatch{
			JobID:      job.ID,
			Title:      job.Title,
			Category:   job.Category,
			BudgetMin:  job.BudgetMin,
			BudgetMax:  job.BudgetMax,
			Status:     job.Status,
			DistanceKm: round2(dist),
			CreatedAt:  job.CreatedAt,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *matchingService) ustasNear(db *gorm.DB, origin *models.Location, filter *dto.NearbyFilter) ([]*dto.UstaMatch, error) {
	ustas, err := s.userRepo.FindActiveUstas(db)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	ustaIDs := make([]string, 0, len(ustas))
	for i := range ustas {
		ustaIDs = append(ustaIDs, ustas[i].ID)
	}

	locations, err := s.locationRepo.FindByOwners(db, models.LocationOwnerUsta, ustaIDs)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	maxDist, limit := resolveFilter(origin, filter)
	from := geo.Point{Latitude: origin.Latitude, Longitude: origin.Longitude}

	matches := make([]*dto.UstaMatch, 0)
	for i := range ustas {
		usta := &ustas[i]

		loc, ok := locations[usta.ID]
		if !ok {
			continue
		}

		dist := geo.DistanceKm(from, geo.Point{Latitude: loc.Latitude, Longitude: loc.Longitude})
		if dist > maxDist {
			continue
		}

		matches = append(matches, &dto.UstaMatch{
			UstaID:        usta.ID,
			Name:          usta.Name,
			City:          usta.City,
			AverageRating: usta.AverageRating,
			TotalRatings:  usta.TotalRatings,
			TotalHires:    usta.TotalHires,
			DistanceKm:    round2(dist),
		})
	}

	// Distance already filtered hard above; ranking is quality-first.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].AverageRating != matches[j].AverageRating {
			return matches[i].AverageRating > matches[j].AverageRating
		}
		if matches[i].TotalHires != matches[j].TotalHires {
			return matches[i].TotalHires > matches[j].TotalHires
		}
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *matchingService) ownerLocation(db *gorm.DB, ownerType models.LocationOwner, ownerID string) (*models.Location, error) {
	origin, err := s.locationRepo.FindByOwner(db, ownerType, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrLocationNotFound) {
			return nil, apperrors.ErrInvalidOperation(matchingDomain, "no location on file to search from")
		}
		return nil, apperrors.StorageError(err)
	}
	return origin, nil
}

// resolveFilter picks the effective cutoff and result cap. Precedence:
// explicit filter, then the origin's own MaxDistance, then the
// configured default.
func resolveFilter(origin *models.Location, filter *dto.NearbyFilter) (maxDist float64, limit int) {
	maxDist = config.GetConfig().Matching.DefaultMaxDistanceKm
	if origin.MaxDistance != nil && *origin.MaxDistance > 0 {
		maxDist = *origin.MaxDistance
	}
	limit = defaultMatchLimit

	if filter != nil {
		if filter.MaxDistanceKm != nil && *filter.MaxDistanceKm > 0 {
			maxDist = *filter.MaxDistanceKm
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
	}
	return maxDist, limit
}
