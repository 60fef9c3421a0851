package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/repository"
	"github.com/nillow/booking-api/internal/service/event"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/metrics"
)

const (
	MinAppointmentDuration = 5 * time.Minute
	MaxAppointmentDuration = 12 * time.Hour
)

// Service owns the server-authoritative appointment list. Every mutation
// goes through here; dashboard sessions only hold a working copy.
type Service struct {
	repo        repository.AppointmentRepository
	serviceRepo repository.ServiceRepository
	events      *event.Service
	metrics     *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, serviceRepo repository.ServiceRepository, events *event.Service, m *metrics.Metrics) *Service {
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		events:      events,
		metrics:     m,
	}
}

func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	services, err := s.snapshotServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		BusinessID:    businessID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StartTime:     req.StartTime,
		Status:        model.AppointmentStatusScheduled,
		Services:      services,
		Location:      req.Location,
		Description:   req.Description,
	}

	// End time follows the selected services unless the caller pinned one.
	if len(services) > 0 || req.EndTime == nil {
		apt.EndTime = model.DeriveEndTime(req.StartTime, services)
	} else {
		apt.EndTime = *req.EndTime
	}

	if err := s.validateTimes(apt.StartTime, apt.EndTime); err != nil {
		return nil, err
	}

	hasConflict, err := s.repo.CheckConflict(ctx, businessID, apt.StartTime, apt.EndTime, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	if hasConflict {
		return nil, apperrors.Conflict("appointment overlaps an existing booking", nil)
	}

	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = apt.CreatedAt

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.emit(ctx, "appointment.created", apt)
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if apt.Status.IsFinal() {
		return nil, apperrors.GuardViolation(model.ErrAppointmentFinal)
	}

	if req.CustomerID != nil {
		apt.CustomerID = req.CustomerID
	}
	if req.CustomerName != nil {
		apt.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		apt.CustomerPhone = *req.CustomerPhone
	}
	if req.StartTime != nil {
		apt.StartTime = *req.StartTime
	}
	if req.Location != nil {
		apt.Location = *req.Location
	}
	if req.Description != nil {
		apt.Description = *req.Description
	}

	servicesChanged := false
	if req.ServiceIDs != nil {
		services, err := s.snapshotServices(ctx, *req.ServiceIDs)
		if err != nil {
			return nil, err
		}
		apt.Services = services
		servicesChanged = true
	}

	// Recompute the end when the services or the start moved; an explicit
	// end from the caller wins only when no services are attached.
	switch {
	case servicesChanged || (req.StartTime != nil && len(apt.Services) > 0):
		apt.EndTime = model.DeriveEndTime(apt.StartTime, apt.Services)
	case req.EndTime != nil:
		apt.EndTime = *req.EndTime
	case req.StartTime != nil:
		apt.EndTime = model.DeriveEndTime(apt.StartTime, apt.Services)
	}

	if err := s.validateTimes(apt.StartTime, apt.EndTime); err != nil {
		return nil, err
	}

	hasConflict, err := s.repo.CheckConflict(ctx, apt.BusinessID, apt.StartTime, apt.EndTime, &apt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}
	if hasConflict {
		return nil, apperrors.Conflict("appointment overlaps an existing booking", nil)
	}

	apt.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}

	s.emit(ctx, "appointment.updated", apt)
	return apt, nil
}

// Transition applies the status state machine. Guard violations leave the
// stored appointment untouched.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := model.CanTransition(apt, target); err != nil {
		return nil, apperrors.GuardViolation(err)
	}

	if apt.Status == target {
		return apt, nil
	}

	apt.Status = target
	apt.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AppointmentsState.WithLabelValues(string(target)).Inc()
	}
	s.emit(ctx, "appointment.status_changed", apt)
	return apt, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.Transition(ctx, id, model.AppointmentStatusCancelled)
}

func (s *Service) AttachBeforeImage(ctx context.Context, id uuid.UUID, url string) (*model.Appointment, error) {
	return s.attachImage(ctx, id, url, true)
}

func (s *Service) AttachAfterImage(ctx context.Context, id uuid.UUID, url string) (*model.Appointment, error) {
	return s.attachImage(ctx, id, url, false)
}

func (s *Service) attachImage(ctx context.Context, id uuid.UUID, url string, before bool) (*model.Appointment, error) {
	if url == "" {
		return nil, apperrors.BadRequest("image url is required", nil)
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if before {
		apt.BeforeImage = url
	} else {
		apt.AfterImage = url
	}
	apt.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

// Delete removes an appointment; only cancelled ones may be deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if apt.Status != model.AppointmentStatusCancelled {
		return apperrors.GuardViolation(fmt.Errorf("only cancelled appointments can be deleted"))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.emit(ctx, "appointment.deleted", apt)
	return nil
}

func (s *Service) snapshotServices(ctx context.Context, ids []uuid.UUID) ([]model.AppointmentService, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	catalog, err := s.serviceRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	if len(catalog) != len(ids) {
		return nil, apperrors.BadRequest("one or more services do not exist", nil)
	}

	snapshots := make([]model.AppointmentService, 0, len(catalog))
	for _, svc := range catalog {
		snapshots = append(snapshots, model.AppointmentService{
			ID:              uuid.New(),
			ServiceID:       svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes(),
		})
	}
	return snapshots, nil
}

func (s *Service) validateTimes(start, end time.Time) error {
	if end.Before(start) {
		return apperrors.BadRequest("end time cannot be before start time", nil)
	}

	duration := end.Sub(start)
	if duration < MinAppointmentDuration {
		return apperrors.BadRequest(fmt.Sprintf("appointment must be at least %v", MinAppointmentDuration), nil)
	}
	if duration > MaxAppointmentDuration {
		return apperrors.BadRequest(fmt.Sprintf("appointment cannot exceed %v", MaxAppointmentDuration), nil)
	}
	return nil
}

func (s *Service) emit(ctx context.Context, eventType string, apt *model.Appointment) {
	if s.events == nil {
		return
	}
	// Best effort: the mutation already committed.
	_ = s.events.Emit(ctx, eventType, apt)
}
