package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nillow/booking-api/internal/model"
	apperrors "github.com/nillow/booking-api/pkg/errors"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	r.appointments[apt.ID] = apt
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	clone := *apt
	return &clone, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, apt *model.Appointment) error {
	r.appointments[apt.ID] = apt
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		out = append(out, apt)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) CheckConflict(_ context.Context, businessID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	for _, apt := range r.appointments {
		if apt.BusinessID != businessID || apt.Status.IsFinal() {
			continue
		}
		if excludeID != nil && apt.ID == *excludeID {
			continue
		}
		if apt.StartTime.Before(end) && start.Before(apt.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (r *fakeServiceRepo) add(name string, minutes int, price float64) uuid.UUID {
	svc := &model.Service{
		Name:         name,
		Price:        price,
		DurationMins: minutes,
	}
	svc.ID = uuid.New()
	r.services[svc.ID] = svc
	return svc.ID
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *model.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	return r.services[id], nil
}

func (r *fakeServiceRepo) Update(_ context.Context, _ *model.Service) error { return nil }
func (r *fakeServiceRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }

func (r *fakeServiceRepo) List(_ context.Context, _ uuid.UUID) ([]*model.Service, error) {
	return nil, nil
}

func (r *fakeServiceRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	var out []*model.Service
	for _, id := range ids {
		if svc, ok := r.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeAppointmentRepo, *fakeServiceRepo) {
	repo := newFakeAppointmentRepo()
	serviceRepo := newFakeServiceRepo()
	return NewService(repo, serviceRepo, nil, nil), repo, serviceRepo
}

func TestCreateDerivesEndFromServices(t *testing.T) {
	svc, _, serviceRepo := newTestService()
	businessID := uuid.New()
	haircut := serviceRepo.add("Haircut", 45, 40)
	color := serviceRepo.add("Color", 30, 80)

	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Create(context.Background(), businessID, &model.CreateAppointmentRequest{
		StartTime:  start,
		ServiceIDs: []uuid.UUID{haircut, color},
	})
	require.NoError(t, err)

	assert.Equal(t, start.Add(75*time.Minute), apt.EndTime)
	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	require.Len(t, apt.Services, 2)
	assert.Equal(t, "Haircut", apt.Services[0].Name)
}

func TestCreateDefaultDurationWithoutServices(t *testing.T) {
	svc, _, _ := newTestService()

	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		StartTime: start,
	})
	require.NoError(t, err)
	assert.Equal(t, start.Add(model.DefaultAppointmentDuration), apt.EndTime)
}

func TestCreateHonorsExplicitEndWithoutServices(t *testing.T) {
	svc, _, _ := newTestService()

	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	apt, err := svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		StartTime: start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, end, apt.EndTime)
}

func TestCreateRejectsUnknownService(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		StartTime:  time.Now(),
		ServiceIDs: []uuid.UUID{uuid.New()},
	})
	assert.Error(t, err)
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, _, _ := newTestService()
	businessID := uuid.New()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), businessID, &model.CreateAppointmentRequest{
		StartTime: start,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), businessID, &model.CreateAppointmentRequest{
		StartTime: start.Add(10 * time.Minute),
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestCreateAllowsOverlapAcrossBusinesses(t *testing.T) {
	svc, _, _ := newTestService()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{StartTime: start})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{StartTime: start})
	assert.NoError(t, err)
}

func TestCreateRejectsBadDurations(t *testing.T) {
	svc, _, _ := newTestService()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	tooShort := start.Add(time.Minute)
	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		StartTime: start,
		EndTime:   &tooShort,
	})
	assert.Error(t, err)

	tooLong := start.Add(13 * time.Hour)
	_, err = svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		StartTime: start,
		EndTime:   &tooLong,
	})
	assert.Error(t, err)
}

func TestUpdateRecomputesEndWhenStartMoves(t *testing.T) {
	svc, _, serviceRepo := newTestService()
	businessID := uuid.New()
	haircut := serviceRepo.add("Haircut", 45, 40)

	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Create(context.Background(), businessID, &model.CreateAppointmentRequest{
		StartTime:  start,
		ServiceIDs: []uuid.UUID{haircut},
	})
	require.NoError(t, err)

	newStart := start.Add(3 * time.Hour)
	updated, err := svc.Update(context.Background(), apt.ID, &model.UpdateAppointmentRequest{
		StartTime: &newStart,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart.Add(45*time.Minute), updated.EndTime)
}

func TestUpdateRejectsFinalAppointment(t *testing.T) {
	svc, repo, _ := newTestService()
	businessID := uuid.New()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	apt, err := svc.Create(context.Background(), businessID, &model.CreateAppointmentRequest{StartTime: start})
	require.NoError(t, err)
	repo.appointments[apt.ID].Status = model.AppointmentStatusCompleted

	name := "Dana"
	_, err = svc.Update(context.Background(), apt.ID, &model.UpdateAppointmentRequest{CustomerName: &name})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrGuardViolation, appErr.Code)
}

func TestTransitionGuards(t *testing.T) {
	svc, repo, _ := newTestService()
	businessID := uuid.New()
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	apt, err := svc.Create(context.Background(), businessID, &model.CreateAppointmentRequest{StartTime: start})
	require.NoError(t, err)

	// Starting without a before photo is rejected and nothing is stored.
	_, err = svc.Transition(context.Background(), apt.ID, model.AppointmentStatusInProgress)
	require.Error(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, repo.appointments[apt.ID].Status)

	_, err = svc.AttachBeforeImage(context.Background(), apt.ID, "https://img/before.jpg")
	require.NoError(t, err)

	got, err := svc.Transition(context.Background(), apt.ID, model.AppointmentStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusInProgress, got.Status)

	_, err = svc.Transition(context.Background(), apt.ID, model.AppointmentStatusCompleted)
	require.Error(t, err)

	_, err = svc.AttachAfterImage(context.Background(), apt.ID, "https://img/after.jpg")
	require.NoError(t, err)

	got, err = svc.Transition(context.Background(), apt.ID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)
}

func TestTransitionSameStatusIsNoop(t *testing.T) {
	svc, _, _ := newTestService()
	apt, err := svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		StartTime: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	got, err := svc.Transition(context.Background(), apt.ID, model.AppointmentStatusScheduled)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, got.Status)
}

func TestDeleteOnlyCancelled(t *testing.T) {
	svc, repo, _ := newTestService()
	apt, err := svc.Create(context.Background(), uuid.New(), &model.CreateAppointmentRequest{
		StartTime: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), apt.ID)
	assert.Error(t, err)

	_, err = svc.Cancel(context.Background(), apt.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), apt.ID))
	assert.Empty(t, repo.appointments)
}
