package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// DefaultAppointmentDuration is used when no services are attached,
// so the end time can still be derived from the start.
const DefaultAppointmentDuration = 30 * time.Minute

// Transition guard errors. Handlers map these to 422 responses.
var (
	ErrBeforeImageRequired = errors.New("a before photo is required to start the appointment")
	ErrAfterImageRequired  = errors.New("an after photo is required to complete the appointment")
	ErrAppointmentFinal    = errors.New("appointment is in a final status")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

type Appointment struct {
	Base
	BusinessID    uuid.UUID            `db:"business_id" json:"business_id"`
	CustomerID    *uuid.UUID           `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName  string               `db:"customer_name" json:"customer_name,omitempty"`
	CustomerPhone string               `db:"customer_phone" json:"customer_phone,omitempty"`
	StartTime     time.Time            `db:"start_time" json:"start_time"`
	EndTime       time.Time            `db:"end_time" json:"end_time"`
	Status        AppointmentStatus    `db:"status" json:"status"`
	Services      []AppointmentService `db:"-" json:"services,omitempty"`
	BeforeImage   string               `db:"before_image" json:"before_image,omitempty"`
	AfterImage    string               `db:"after_image" json:"after_image,omitempty"`
	Location      string               `db:"location" json:"location,omitempty"`
	Description   string               `db:"description" json:"description,omitempty"`
}

// AppointmentService is a denormalized snapshot of a catalog service at the
// time it was attached to the appointment. Later catalog edits do not
// rewrite history.
type AppointmentService struct {
	ID              uuid.UUID `db:"id" json:"id"`
	AppointmentID   uuid.UUID `db:"appointment_id" json:"-"`
	ServiceID       uuid.UUID `db:"service_id" json:"service_id"`
	Name            string    `db:"name" json:"name"`
	Price           float64   `db:"price" json:"price"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
}

// IsFinal reports whether the status is absorbing.
func (s AppointmentStatus) IsFinal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransition checks whether the appointment may move to target. It is a
// pure function so the rule can be exercised without HTTP and mirrored by
// clients. A same-status transition is a no-op and always allowed.
func CanTransition(apt *Appointment, target AppointmentStatus) error {
	if apt.Status == target {
		return nil
	}
	if apt.Status.IsFinal() {
		return ErrAppointmentFinal
	}

	switch {
	case apt.Status == AppointmentStatusScheduled && target == AppointmentStatusInProgress:
		if apt.BeforeImage == "" {
			return ErrBeforeImageRequired
		}
		return nil
	case apt.Status == AppointmentStatusInProgress && target == AppointmentStatusCompleted:
		if apt.AfterImage == "" {
			return ErrAfterImageRequired
		}
		return nil
	case apt.Status == AppointmentStatusScheduled && target == AppointmentStatusCancelled:
		return nil
	}
	return ErrInvalidTransition
}

// DeriveEndTime returns start plus the summed service durations, or start
// plus the default duration when no services are attached. The result is
// never before start.
func DeriveEndTime(start time.Time, services []AppointmentService) time.Time {
	var total time.Duration
	for _, svc := range services {
		if svc.DurationMinutes > 0 {
			total += time.Duration(svc.DurationMinutes) * time.Minute
		}
	}
	if total <= 0 {
		total = DefaultAppointmentDuration
	}
	return start.Add(total)
}

type CreateAppointmentRequest struct {
	CustomerID    *uuid.UUID  `json:"customer_id"`
	CustomerName  string      `json:"customer_name" binding:"max=200"`
	CustomerPhone string      `json:"customer_phone" binding:"max=30"`
	StartTime     time.Time   `json:"start_time" binding:"required"`
	EndTime       *time.Time  `json:"end_time"`
	ServiceIDs    []uuid.UUID `json:"service_ids"`
	Location      string      `json:"location" binding:"max=500"`
	Description   string      `json:"description" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	CustomerID    *uuid.UUID   `json:"customer_id"`
	CustomerName  *string      `json:"customer_name"`
	CustomerPhone *string      `json:"customer_phone"`
	StartTime     *time.Time   `json:"start_time"`
	EndTime       *time.Time   `json:"end_time"`
	ServiceIDs    *[]uuid.UUID `json:"service_ids"`
	Location      *string      `json:"location"`
	Description   *string      `json:"description"`
}

type AppointmentFilters struct {
	BusinessID uuid.UUID
	FromDate   time.Time
	ToDate     time.Time
	Status     AppointmentStatus
	Limit      int
}
