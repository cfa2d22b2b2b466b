package dto

import (
	"time"

	"ustahub_backend/internal/models"
)

type MilestoneRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	DueDate     *time.Time `json:"due_date"`
}

type CreateProposalRequest struct {
	JobID       string             `json:"job_id" validate:"required"`
	CoverLetter string             `json:"cover_letter" validate:"omitempty,max=5000"`
	Amount      float64            `json:"amount" validate:"required,gt=0"`
	Type        string             `json:"type" validate:"omitempty,oneof=fixed milestone"`
	Milestones  []MilestoneRequest `json:"milestones" validate:"omitempty,dive"`
}

type MilestoneResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Amount      float64    `json:"amount"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Position    int        `json:"position"`
}

type ProposalResponse struct {
	ID          string                `json:"id"`
	JobID       string                `json:"job_id"`
	UstaID      string                `json:"usta_id"`
	CoverLetter string                `json:"cover_letter,omitempty"`
	Amount      float64               `json:"amount"`
	Type        models.ProposalType   `json:"type"`
	Status      models.ProposalStatus `json:"status"`
	Milestones  []MilestoneResponse   `json:"milestones,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}
