package model

import "github.com/google/uuid"

// OnboardingStep identifies one page of the signup wizard.
type OnboardingStep string

const (
	StepCategory     OnboardingStep = "category"
	StepName         OnboardingStep = "name"
	StepPhone        OnboardingStep = "phone"
	StepLocationType OnboardingStep = "location_type"
	StepAddress      OnboardingStep = "address"
	StepTravelFee    OnboardingStep = "travel_fee"
	StepHours        OnboardingStep = "hours"
	StepServices     OnboardingStep = "services"
	StepGoals        OnboardingStep = "goals"
	StepTeamSize     OnboardingStep = "team_size"
	StepGoLive       OnboardingStep = "go_live"
	StepDone         OnboardingStep = "done"
)

// OnboardingDraft accumulates wizard answers page by page. Only checkpoint
// steps flush it to the business record; an abandoned draft expires with
// its cache entry.
type OnboardingDraft struct {
	BusinessID        uuid.UUID              `json:"business_id"`
	Step              OnboardingStep         `json:"step"`
	CategoryID        *uuid.UUID             `json:"category_id,omitempty"`
	Name              string                 `json:"name,omitempty"`
	Phone             string                 `json:"phone,omitempty"`
	HasPhysical       bool                   `json:"has_physical"`
	OffersHomeService bool                   `json:"offers_home_service"`
	Address           string                 `json:"address,omitempty"`
	Latitude          *float64               `json:"latitude,omitempty"`
	Longitude         *float64               `json:"longitude,omitempty"`
	ChargesTravelFee  bool                   `json:"charges_travel_fee"`
	TravelFee         float64                `json:"travel_fee"`
	Hours             []BusinessHour         `json:"hours,omitempty"`
	Services          []CreateServiceRequest `json:"services,omitempty"`
	Goals             []string               `json:"goals,omitempty"`
	TeamSize          string                 `json:"team_size,omitempty"`
	GoLive            string                 `json:"go_live,omitempty"`
}

// OnboardingStepInfo describes one wizard page for clients: its key and the
// progress-bar value shown while the page is active.
type OnboardingStepInfo struct {
	Key      OnboardingStep `json:"key"`
	Progress int            `json:"progress"` // 0..100
}
