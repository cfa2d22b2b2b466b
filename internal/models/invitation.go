package models

import "time"

// Invitation is a customer's outreach to an usta, optionally tied to a
// job. Follow-ups are new records chained through PreviousInvitationID;
// the original row is never rewritten.
type Invitation struct {
	BaseModel
	UstaID     string           `gorm:"not null;index" json:"usta_id"`
	CustomerID string           `gorm:"not null;index" json:"customer_id"`
	JobID      *string          `gorm:"index" json:"job_id,omitempty"`
	Status     InvitationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Type       InvitationType   `gorm:"type:varchar(20);default:'direct'" json:"invitation_type"`

	Message         *string    `json:"message,omitempty"`
	PreferredTime   *time.Time `json:"preferred_time,omitempty"`
	ResponseMessage *string    `json:"response_message,omitempty"`
	AlternativeTime *time.Time `json:"alternative_time,omitempty"`

	ExpiresAt   time.Time  `gorm:"not null;index" json:"expires_at"`
	ViewedAt    *time.Time `json:"viewed_at,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`

	// Self-reference for follow-up chains, non-owning.
	PreviousInvitationID *string `gorm:"index" json:"previous_invitation_id,omitempty"`

	// Relations
	Usta     *User `gorm:"foreignKey:UstaID" json:"usta,omitempty"`
	Customer *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Job      *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// ExpiredBy reports whether a pending invitation has passed its deadline.
// Callers treat such rows as expired even before the sweep persists it.
func (i *Invitation) ExpiredBy(now time.Time) bool {
	return i.Status == InvitationStatusPending && now.After(i.ExpiresAt)
}

// EffectiveStatus is the status after lazy expiry evaluation.
func (i *Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.ExpiredBy(now) {
		return InvitationStatusExpired
	}
	return i.Status
}
