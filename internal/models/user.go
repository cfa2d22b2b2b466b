package models

import "time"

type User struct {
	BaseModel
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'inprogress'" json:"status"`
	City         string     `json:"city,omitempty"`

	// Derived metrics, maintained by the rating aggregator and the
	// contract state machine. Never written by request handlers directly.
	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	TotalRatings  int64   `gorm:"default:0" json:"total_ratings"`
	TotalHires    int64   `gorm:"default:0" json:"total_hires"`
	TotalViews    int64   `gorm:"default:0" json:"total_views"`

	ResetToken    string     `json:"-"`
	ResetTokenExp *time.Time `json:"-"`
}

// IsActive reports whether the user may take part in new engagements.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
