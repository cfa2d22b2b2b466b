package dto

import (
	"time"

	"ustahub_backend/internal/models"
)

type CreateContractRequest struct {
	JobID         string     `json:"job_id" validate:"required"`
	UstaID        string     `json:"usta_id" validate:"required"`
	JobProposalID string     `json:"job_proposal_id" validate:"required"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	TotalCost     float64    `json:"total_cost" validate:"required,gt=0"`
	Details       string     `json:"details" validate:"omitempty,max=5000"`
}

type UpdateContractStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ContractResponse struct {
	ID            string                `json:"id"`
	JobID         string                `json:"job_id"`
	JobProposalID string                `json:"job_proposal_id"`
	UstaID        string                `json:"usta_id"`
	CreatedBy     string                `json:"created_by"`
	Status        models.ContractStatus `json:"status"`
	StartDate     *time.Time            `json:"start_date,omitempty"`
	EndDate       *time.Time            `json:"end_date,omitempty"`
	TotalCost     float64               `json:"total_cost"`
	Details       string                `json:"details,omitempty"`
	RespondedAt   *time.Time            `json:"responded_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}
