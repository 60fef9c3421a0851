package model

import (
	"time"

	"github.com/google/uuid"
)

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type TokenClaims struct {
	BusinessID uuid.UUID `json:"business_id"`
	Phone      string    `json:"phone"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type SendTokenRequest struct {
	Phone string `json:"phone_number" binding:"required,max=30"`
	Email string `json:"email" binding:"omitempty,email"`
}

type ValidateTokenRequest struct {
	Phone string `json:"phone_number" binding:"required,max=30"`
	Code  string `json:"token" binding:"required,len=6,numeric"`
}

type CheckPhoneRequest struct {
	Phone string `json:"phone_number" binding:"required,max=30"`
}

type CheckUsernameRequest struct {
	Username string `json:"username" binding:"required,min=3,max=60"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}
