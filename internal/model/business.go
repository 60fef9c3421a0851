package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Business struct {
	Base
	CategoryID        *uuid.UUID     `db:"category_id" json:"category_id,omitempty"`
	Name              string         `db:"name" json:"name"`
	Username          string         `db:"username" json:"username"`
	Phone             string         `db:"phone" json:"phone"`
	Email             string         `db:"email" json:"email,omitempty"`
	HasPhysical       bool           `db:"has_physical" json:"has_physical"`
	OffersHomeService bool           `db:"offers_home_service" json:"offers_home_service"`
	Address           string         `db:"address" json:"address,omitempty"`
	Latitude          *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude         *float64       `db:"longitude" json:"longitude,omitempty"`
	ChargesTravelFee  bool           `db:"charges_travel_fee" json:"charges_travel_fee"`
	TravelFee         float64        `db:"travel_fee" json:"travel_fee"`
	Goals             pq.StringArray `db:"goals" json:"goals,omitempty"`
	TeamSize          string         `db:"team_size" json:"team_size,omitempty"`
	GoLive            string         `db:"go_live" json:"go_live,omitempty"`
	OnboardingStep    string         `db:"onboarding_step" json:"onboarding_step,omitempty"`
	OnboardingDone    bool           `db:"onboarding_done" json:"onboarding_done"`
	Hours             []BusinessHour `db:"-" json:"hours,omitempty"`
}

// BusinessHour is the opening window for one weekday, with an optional break.
// Times are "HH:MM" 24h strings.
type BusinessHour struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	BusinessID uuid.UUID    `db:"business_id" json:"business_id"`
	Weekday    time.Weekday `db:"weekday" json:"weekday" binding:"gte=0,lte=6"`
	Open       string       `db:"open_time" json:"open" binding:"omitempty,clock"`
	Close      string       `db:"close_time" json:"close" binding:"omitempty,clock"`
	Closed     bool         `db:"closed" json:"closed"`
	BreakStart *string      `db:"break_start" json:"break_start,omitempty" binding:"omitempty,clock"`
	BreakEnd   *string      `db:"break_end" json:"break_end,omitempty" binding:"omitempty,clock"`
}

// NewBusiness returns a minimal record for a phone that just passed login,
// parked at the first onboarding step.
func NewBusiness(phone string) *Business {
	now := time.Now()
	return &Business{
		Base: Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Phone:          phone,
		OnboardingStep: string(StepCategory),
	}
}

type BusinessCategory struct {
	Base
	Name string `db:"name" json:"name"`
}

type UpdateBusinessRequest struct {
	CategoryID        *uuid.UUID     `json:"category_id"`
	Name              *string        `json:"name"`
	Phone             *string        `json:"phone"`
	Email             *string        `json:"email"`
	HasPhysical       *bool          `json:"has_physical"`
	OffersHomeService *bool          `json:"offers_home_service"`
	Address           *string        `json:"address"`
	Latitude          *float64       `json:"latitude"`
	Longitude         *float64       `json:"longitude"`
	ChargesTravelFee  *bool          `json:"charges_travel_fee"`
	TravelFee         *float64       `json:"travel_fee"`
	Goals             *[]string      `json:"goals"`
	TeamSize          *string        `json:"team_size"`
	GoLive            *string        `json:"go_live"`
	Hours             []BusinessHour `json:"hours"`
}
