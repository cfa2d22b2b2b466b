package models

import "time"

// JobProposal is an usta's bid on a job. Once a contract references a
// proposal it must not be modified.
type JobProposal struct {
	BaseModel
	JobID       string         `gorm:"not null;index" json:"job_id"`
	UstaID      string         `gorm:"not null;index" json:"usta_id"`
	CoverLetter string         `json:"cover_letter"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Type        ProposalType   `gorm:"type:varchar(20);default:'fixed'" json:"type"`
	Status      ProposalStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Relations
	Job        *Job        `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Usta       *User       `gorm:"foreignKey:UstaID" json:"usta,omitempty"`
	Milestones []Milestone `gorm:"foreignKey:JobProposalID" json:"milestones,omitempty"`
}

type Milestone struct {
	BaseModel
	JobProposalID string     `gorm:"not null;index" json:"job_proposal_id"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `json:"description,omitempty"`
	Amount        float64    `gorm:"not null" json:"amount"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Position      int        `gorm:"default:0" json:"position"`
}
