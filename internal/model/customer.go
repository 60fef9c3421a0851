package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Customer struct {
	Base
	BusinessID        uuid.UUID      `db:"business_id" json:"business_id"`
	Name              string         `db:"name" json:"name"`
	Phone             string         `db:"phone" json:"phone"`
	Email             string         `db:"email" json:"email,omitempty"`
	Address           string         `db:"address" json:"address,omitempty"`
	Notes             string         `db:"notes" json:"notes,omitempty"`
	PreferredServices pq.StringArray `db:"preferred_services" json:"preferred_services,omitempty"`
}

type CreateCustomerRequest struct {
	Name              string   `json:"name" binding:"required,max=200"`
	Phone             string   `json:"phone" binding:"required,max=30"`
	Email             string   `json:"email" binding:"omitempty,email"`
	Address           string   `json:"address" binding:"max=500"`
	Notes             string   `json:"notes" binding:"max=2000"`
	PreferredServices []string `json:"preferred_services"`
}
