package models

import "gorm.io/datatypes"

type Job struct {
	BaseModel
	CustomerID  string         `gorm:"not null;index" json:"customer_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Category    string         `gorm:"index" json:"category"`
	Tags        datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`
	BudgetMin   float64        `json:"budget_min"`
	BudgetMax   float64        `json:"budget_max"`
	Status      JobStatus      `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Views       int            `gorm:"default:0" json:"views"`

	// Relations
	Customer *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}
