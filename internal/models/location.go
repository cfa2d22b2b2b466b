package models

// Location stores a point owned by a customer, an usta or a job.
// MaxDistance, when set, bounds proximity searches originating here.
type Location struct {
	BaseModel
	OwnerID     string        `gorm:"not null;index:idx_location_owner" json:"owner_id"`
	OwnerType   LocationOwner `gorm:"type:varchar(20);not null;index:idx_location_owner" json:"owner_type"`
	Latitude    float64       `gorm:"not null" json:"latitude"`
	Longitude   float64       `gorm:"not null" json:"longitude"`
	Address     string        `json:"address,omitempty"`
	City        string        `json:"city,omitempty"`
	MaxDistance *float64      `json:"max_distance,omitempty"` // km
}
