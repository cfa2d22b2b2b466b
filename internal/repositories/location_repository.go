package repositories

import (
	"errors"

	"ustahub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrLocationNotFound = errors.New("location not found")
)

type LocationRepository interface {
	Upsert(db *gorm.DB, location *models.Location) error
	FindByOwner(db *gorm.DB, ownerType models.LocationOwner, ownerID string) (*models.Location, error)
	FindByOwners(db *gorm.DB, ownerType models.LocationOwner, ownerIDs []string) (map[string]models.Location, error)
}

type LocationRepositoryImpl struct{}

func NewLocationRepository() LocationRepository {
	return &LocationRepositoryImpl{}
}

// Upsert writes the single location an owner may have.
func (r *LocationRepositoryImpl) Upsert(db *gorm.DB, location *models.Location) error {
	var existing models.Location
	err := db.Where("owner_type = ? AND owner_id = ?", location.OwnerType, location.OwnerID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(location).Error
	}
	if err != nil {
		return err
	}

	location.ID = existing.ID
	location.CreatedAt = existing.CreatedAt
	return db.Save(location).Error
}

func (r *LocationRepositoryImpl) FindByOwner(db *gorm.DB, ownerType models.LocationOwner, ownerID string) (*models.Location, error) {
	var location models.Location
	err := db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByOwners loads locations for a candidate set in one query, keyed by
// owner ID. Owners without a location are simply absent from the map.
func (r *LocationRepositoryImpl) FindByOwners(db *gorm.DB, ownerType models.LocationOwner, ownerIDs []string) (map[string]models.Location, error) {
	if len(ownerIDs) == 0 {
		return map[string]models.Location{}, nil
	}

	var locations []models.Location
	err := db.Where("owner_type = ? AND owner_id IN ?", ownerType, ownerIDs).
		Find(&locations).Error
	if err != nil {
		return nil, err
	}

	byOwner := make(map[string]models.Location, len(locations))
	for _, loc := range locations {
		byOwner[loc.OwnerID] = loc
	}
	return byOwner, nil
}
