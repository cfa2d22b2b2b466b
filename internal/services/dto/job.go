package dto

import (
	"time"

	"ustahub_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Category    string   `json:"category" validate:"omitempty,max=100"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	BudgetMin   float64  `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax   float64  `json:"budget_max" validate:"omitempty,gte=0"`

	Location *SetLocationRequest `json:"location"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,is-job-status"`
}

type JobResponse struct {
	ID          string           `json:"id"`
	CustomerID  string           `json:"customer_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	BudgetMin   float64          `json:"budget_min"`
	BudgetMax   float64          `json:"budget_max"`
	Status      models.JobStatus `json:"status"`
	Views       int              `json:"views"`
	CreatedAt   time.Time        `json:"created_at"`
}
