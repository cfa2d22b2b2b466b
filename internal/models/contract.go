package models

import "time"

// Contract binds a job, an accepted proposal and an usta. One contract
// per proposal.
type Contract struct {
	BaseModel
	JobID         string         `gorm:"not null;index" json:"job_id"`
	JobProposalID string         `gorm:"not null;uniqueIndex" json:"job_proposal_id"`
	UstaID        string         `gorm:"not null;index" json:"usta_id"`
	CreatedBy     string         `gorm:"not null" json:"created_by"`
	Status        ContractStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	TotalCost     float64        `json:"total_cost"`
	Details       string         `json:"details,omitempty"`
	RespondedAt   *time.Time     `json:"responded_at,omitempty"`

	// Relations
	Job      *Job         `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Proposal *JobProposal `gorm:"foreignKey:JobProposalID" json:"proposal,omitempty"`
	Usta     *User        `gorm:"foreignKey:UstaID" json:"usta,omitempty"`
}
