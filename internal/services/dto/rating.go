package dto

import "time"

type CreateRatingRequest struct {
	UstaID  string  `json:"usta_id" validate:"required"`
	JobID   *string `json:"job_id"`
	Rating  float64 `json:"rating" validate:"required,min=1,max=5"`
	Comment string  `json:"comment" validate:"omitempty,max=2000"`

	ServiceSatisfaction *float64 `json:"service_satisfaction" validate:"omitempty,min=1,max=5"`
	Communication       *float64 `json:"communication" validate:"omitempty,min=1,max=5"`
	Timeliness          *float64 `json:"timeliness" validate:"omitempty,min=1,max=5"`
	ValueForMoney       *float64 `json:"value_for_money" validate:"omitempty,min=1,max=5"`
}

type UpdateRatingRequest struct {
	Rating  *float64 `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string  `json:"comment" validate:"omitempty,max=2000"`

	ServiceSatisfaction *float64 `json:"service_satisfaction" validate:"omitempty,min=1,max=5"`
	Communication       *float64 `json:"communication" validate:"omitempty,min=1,max=5"`
	Timeliness          *float64 `json:"timeliness" validate:"omitempty,min=1,max=5"`
	ValueForMoney       *float64 `json:"value_for_money" validate:"omitempty,min=1,max=5"`
}

type RespondRatingRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

type RatingResponse struct {
	ID         string  `json:"id"`
	UstaID     string  `json:"usta_id"`
	CustomerID string  `json:"customer_id"`
	JobID      *string `json:"job_id,omitempty"`
	Rating     float64 `json:"rating"`
	Comment    string  `json:"comment,omitempty"`

	ServiceSatisfaction *float64 `json:"service_satisfaction,omitempty"`
	Communication       *float64 `json:"communication,omitempty"`
	Timeliness          *float64 `json:"timeliness,omitempty"`
	ValueForMoney       *float64 `json:"value_for_money,omitempty"`

	Response    *string    `json:"response,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DimensionAverages are per-dimension means over non-null scores only.
// A dimension nobody ever supplied averages to 0.
type DimensionAverages struct {
	ServiceSatisfaction float64 `json:"service_satisfaction"`
	Communication       float64 `json:"communication"`
	Timeliness          float64 `json:"timeliness"`
	ValueForMoney       float64 `json:"value_for_money"`
}

// RatingStats is the aggregate view of an usta's rating set. Recompute
// persists AverageRating/TotalRatings onto the user row; Stats returns the
// same numbers without persisting.
type RatingStats struct {
	UstaID             string            `json:"usta_id"`
	AverageRating      float64           `json:"average_rating"`
	TotalRatings       int64             `json:"total_ratings"`
	RatingDistribution map[int]int64     `json:"rating_distribution"` // keys 1..5, bucketed by floor(rating)
	DimensionAverages  DimensionAverages `json:"dimension_averages"`
}
