package dto

import (
	"time"

	"ustahub_backend/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Role     string `json:"role" validate:"required,is-user-role"`
	City     string `json:"city" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type UserResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone,omitempty"`
	Role          models.UserRole   `json:"role"`
	Status        models.UserStatus `json:"status"`
	City          string            `json:"city,omitempty"`
	AverageRating float64           `json:"average_rating"`
	TotalRatings  int64             `json:"total_ratings"`
	TotalHires    int64             `json:"total_hires"`
	TotalViews    int64             `json:"total_views"`
	CreatedAt     time.Time         `json:"created_at"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type SetLocationRequest struct {
	Latitude    float64  `json:"latitude" validate:"required,latitude"`
	Longitude   float64  `json:"longitude" validate:"required,longitude"`
	Address     string   `json:"address" validate:"omitempty,max=300"`
	City        string   `json:"city" validate:"omitempty,max=100"`
	MaxDistance *float64 `json:"max_distance" validate:"omitempty,gt=0"`
}
