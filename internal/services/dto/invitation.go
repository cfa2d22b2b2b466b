package dto

import (
	"time"

	"ustahub_backend/internal/models"
)

type CreateInvitationRequest struct {
	UstaID        string     `json:"usta_id" validate:"required"`
	JobID         *string    `json:"job_id"`
	Message       *string    `json:"message" validate:"omitempty,max=2000"`
	PreferredTime *time.Time `json:"preferred_time"`
}

type RespondInvitationRequest struct {
	Status          string     `json:"status" validate:"required,oneof=accepted rejected"`
	Message         *string    `json:"message" validate:"omitempty,max=2000"`
	AlternativeTime *time.Time `json:"alternative_time"`
}

type FollowUpInvitationRequest struct {
	Message       *string    `json:"message" validate:"omitempty,max=2000"`
	PreferredTime *time.Time `json:"preferred_time"`
}

type InvitationResponse struct {
	ID                   string                  `json:"id"`
	UstaID               string                  `json:"usta_id"`
	CustomerID           string                  `json:"customer_id"`
	JobID                *string                 `json:"job_id,omitempty"`
	Status               models.InvitationStatus `json:"status"`
	Type                 models.InvitationType   `json:"invitation_type"`
	Message              *string                 `json:"message,omitempty"`
	PreferredTime        *time.Time              `json:"preferred_time,omitempty"`
	ResponseMessage      *string                 `json:"response_message,omitempty"`
	AlternativeTime      *time.Time              `json:"alternative_time,omitempty"`
	ExpiresAt            time.Time               `json:"expires_at"`
	ViewedAt             *time.Time              `json:"viewed_at,omitempty"`
	RespondedAt          *time.Time              `json:"responded_at,omitempty"`
	PreviousInvitationID *string                 `json:"previous_invitation_id,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
}

type InvitationListResponse struct {
	Invitations []*InvitationResponse `json:"invitations"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
}

type InvitationListFilter struct {
	UstaID     string                  `form:"usta_id"`
	CustomerID string                  `form:"customer_id"`
	Status     models.InvitationStatus `form:"status"`
	Page       int                     `form:"page"`
	PageSize   int                     `form:"page_size"`
}
