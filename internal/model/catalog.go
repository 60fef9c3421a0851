package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PriceType string

const (
	PriceTypeFixed    PriceType = "fixed"
	PriceTypeStartsAt PriceType = "starts_at"
	PriceTypeVaries   PriceType = "varies"
	PriceTypeFree     PriceType = "free"
)

// Service is an offering a business sells. Referenced, never owned, by
// appointments (which snapshot name/price/duration instead).
type Service struct {
	Base
	BusinessID    uuid.UUID      `db:"business_id" json:"business_id"`
	ServiceTypeID *uuid.UUID     `db:"service_type_id" json:"service_type_id,omitempty"`
	Name          string         `db:"name" json:"name"`
	Price         float64        `db:"price" json:"price"`
	PriceType     PriceType      `db:"price_type" json:"price_type"`
	DurationHours int            `db:"duration_hours" json:"duration_hours"`
	DurationMins  int            `db:"duration_mins" json:"duration_mins"`
	Category      string         `db:"category" json:"category,omitempty"`
	Target        string         `db:"target" json:"target,omitempty"`
	PhotoURLs     pq.StringArray `db:"photo_urls" json:"photo_urls,omitempty"`
}

// DurationMinutes flattens hours+minutes for scheduling math.
func (s *Service) DurationMinutes() int {
	return s.DurationHours*60 + s.DurationMins
}

// ServiceType is a directory entry for classifying services.
type ServiceType struct {
	Base
	Name string `db:"name" json:"name"`
}

type CreateServiceRequest struct {
	Name          string     `json:"name" binding:"required,max=200"`
	Price         float64    `json:"price" binding:"gte=0"`
	PriceType     PriceType  `json:"price_type" binding:"required,oneof=fixed starts_at varies free"`
	DurationHours int        `json:"duration_hours" binding:"gte=0,lte=24"`
	DurationMins  int        `json:"duration_mins" binding:"gte=0,lt=60"`
	Category      string     `json:"category" binding:"max=100"`
	Target        string     `json:"target" binding:"max=100"`
	ServiceTypeID *uuid.UUID `json:"service_type_id"`
	PhotoURLs     []string   `json:"photo_urls"`
}

type UpdateServiceRequest struct {
	Name          *string    `json:"name"`
	Price         *float64   `json:"price"`
	PriceType     *PriceType `json:"price_type"`
	DurationHours *int       `json:"duration_hours"`
	DurationMins  *int       `json:"duration_mins"`
	Category      *string    `json:"category"`
	Target        *string    `json:"target"`
	ServiceTypeID *uuid.UUID `json:"service_type_id"`
	PhotoURLs     *[]string  `json:"photo_urls"`
}
