package models

import "time"

// Rating is a customer's review of an usta for an optional job.
// Sub-dimension scores are nullable; absent values never drag averages.
type Rating struct {
	BaseModel
	UstaID     string  `gorm:"not null;index" json:"usta_id"`
	CustomerID string  `gorm:"not null;index" json:"customer_id"`
	JobID      *string `gorm:"index" json:"job_id,omitempty"`
	Rating     float64 `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string  `json:"comment,omitempty"`

	ServiceSatisfaction *float64 `json:"service_satisfaction,omitempty"`
	Communication       *float64 `json:"communication,omitempty"`
	Timeliness          *float64 `json:"timeliness,omitempty"`
	ValueForMoney       *float64 `json:"value_for_money,omitempty"`

	// The rated usta may attach exactly one textual response.
	Response    *string    `json:"response,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	// Relations
	Usta     *User `gorm:"foreignKey:UstaID" json:"usta,omitempty"`
	Customer *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Job      *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
