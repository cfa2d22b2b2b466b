package dto

import (
	"time"

	"ustahub_backend/internal/models"
)

type NearbyFilter struct {
	MaxDistanceKm *float64 `form:"max_distance_km" validate:"omitempty,gt=0"`
	Limit         int      `form:"limit" validate:"omitempty,min=1,max=100"`
}

// JobMatch is a job within range of an usta, with the computed distance.
type JobMatch struct {
	JobID      string           `json:"job_id"`
	Title      string           `json:"title"`
	Category   string           `json:"category"`
	BudgetMin  float64          `json:"budget_min"`
	BudgetMax  float64          `json:"budget_max"`
	Status     models.JobStatus `json:"status"`
	DistanceKm float64          `json:"distance_km"`
	CreatedAt  time.Time        `json:"created_at"`
}

// UstaMatch is an usta within range of a job's location.
type UstaMatch struct {
	UstaID        string  `json:"usta_id"`
	Name          string  `json:"name"`
	City          string  `json:"city,omitempty"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
	TotalHires    int64   `json:"total_hires"`
	DistanceKm    float64 `json:"distance_km"`
}
