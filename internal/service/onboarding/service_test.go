package onboarding

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nillow/booking-api/internal/model"
)

type fakeBusinessRepo struct {
	businesses map[uuid.UUID]*model.Business
	hours      map[uuid.UUID][]model.BusinessHour
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{
		businesses: make(map[uuid.UUID]*model.Business),
		hours:      make(map[uuid.UUID][]model.BusinessHour),
	}
}

func (r *fakeBusinessRepo) Get(_ context.Context, id uuid.UUID) (*model.Business, error) {
	b := *r.businesses[id]
	return &b, nil
}

func (r *fakeBusinessRepo) GetByPhone(_ context.Context, phone string) (*model.Business, error) {
	for _, b := range r.businesses {
		if b.Phone == phone {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBusinessRepo) List(_ context.Context) ([]*model.Business, error) { return nil, nil }

func (r *fakeBusinessRepo) Create(_ context.Context, b *model.Business) error {
	r.businesses[b.ID] = b
	return nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, b *model.Business) error {
	r.businesses[b.ID] = b
	return nil
}

func (r *fakeBusinessRepo) PhoneExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeBusinessRepo) UsernameExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeBusinessRepo) ReplaceHours(_ context.Context, id uuid.UUID, hours []model.BusinessHour) error {
	r.hours[id] = hours
	return nil
}

func (r *fakeBusinessRepo) GetCalendarSettings(_ context.Context, id uuid.UUID) (*model.CalendarSettings, error) {
	return model.DefaultCalendarSettings(id), nil
}

func (r *fakeBusinessRepo) SaveCalendarSettings(_ context.Context, _ *model.CalendarSettings) error {
	return nil
}

type fakeServiceRepo struct {
	created []*model.Service
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *model.Service) error {
	r.created = append(r.created, svc)
	return nil
}

func (r *fakeServiceRepo) Get(_ context.Context, _ uuid.UUID) (*model.Service, error) {
	return nil, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, _ *model.Service) error { return nil }
func (r *fakeServiceRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }

func (r *fakeServiceRepo) List(_ context.Context, _ uuid.UUID) ([]*model.Service, error) {
	return nil, nil
}

func (r *fakeServiceRepo) ListByIDs(_ context.Context, _ []uuid.UUID) ([]*model.Service, error) {
	return nil, nil
}

func seedBusiness(repo *fakeBusinessRepo) uuid.UUID {
	b := model.NewBusiness("+15550001111")
	repo.businesses[b.ID] = b
	return b.ID
}

func TestStepsAreOrderedAndEndAtDone(t *testing.T) {
	svc := NewService(newFakeBusinessRepo(), &fakeServiceRepo{})

	infos := svc.Steps()
	require.NotEmpty(t, infos)
	assert.Equal(t, model.StepCategory, infos[0].Key)
	assert.Equal(t, model.StepDone, infos[len(infos)-1].Key)

	last := 0
	for _, info := range infos {
		assert.Greater(t, info.Progress, last)
		last = info.Progress
	}
	assert.Equal(t, 100, last)
}

func TestProgress(t *testing.T) {
	svc := NewService(newFakeBusinessRepo(), &fakeServiceRepo{})
	assert.Equal(t, 8, svc.Progress(model.StepCategory))
	assert.Equal(t, 100, svc.Progress(model.StepDone))
	assert.Equal(t, 0, svc.Progress("bogus"))
}

func TestSubmitAdvancesSteps(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	svc := NewService(repo, &fakeServiceRepo{})

	draft, err := svc.Submit(context.Background(), id, model.StepCategory, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, model.StepName, draft.Step)

	draft, err = svc.Submit(context.Background(), id, model.StepName, json.RawMessage(`{"name":"Glow Studio"}`))
	require.NoError(t, err)
	assert.Equal(t, model.StepPhone, draft.Step)
	assert.Equal(t, "Glow Studio", draft.Name)
}

func TestSubmitUnknownStep(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	svc := NewService(repo, &fakeServiceRepo{})

	_, err := svc.Submit(context.Background(), id, "bogus", nil)
	assert.Error(t, err)
}

func TestIntermediateStepsDoNotPersist(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	svc := NewService(repo, &fakeServiceRepo{})

	_, err := svc.Submit(context.Background(), id, model.StepName, json.RawMessage(`{"name":"Glow Studio"}`))
	require.NoError(t, err)

	// Name is only in the draft; the stored record is untouched.
	assert.Empty(t, repo.businesses[id].Name)
}

func TestCheckpointFlushesDraft(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	svc := NewService(repo, &fakeServiceRepo{})

	_, err := svc.Submit(context.Background(), id, model.StepName, json.RawMessage(`{"name":"Glow Studio"}`))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), id, model.StepAddress, json.RawMessage(`{"address":"12 Main St"}`))
	require.NoError(t, err)

	stored := repo.businesses[id]
	assert.Equal(t, "Glow Studio", stored.Name)
	assert.Equal(t, "12 Main St", stored.Address)
	assert.Equal(t, string(model.StepAddress), stored.OnboardingStep)
	assert.False(t, stored.OnboardingDone)
}

func TestHoursCheckpointReplacesHours(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	svc := NewService(repo, &fakeServiceRepo{})

	payload := `{"hours":[{"weekday":1,"open":"09:00","close":"17:00"}]}`
	_, err := svc.Submit(context.Background(), id, model.StepHours, json.RawMessage(payload))
	require.NoError(t, err)

	require.Len(t, repo.hours[id], 1)
	assert.Equal(t, time.Monday, repo.hours[id][0].Weekday)
}

func TestServicesCheckpointCreatesServices(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	serviceRepo := &fakeServiceRepo{}
	svc := NewService(repo, serviceRepo)

	payload := `{"services":[{"name":"Haircut","price":40,"price_type":"fixed","duration_mins":45}]}`
	draft, err := svc.Submit(context.Background(), id, model.StepServices, json.RawMessage(payload))
	require.NoError(t, err)

	require.Len(t, serviceRepo.created, 1)
	assert.Equal(t, "Haircut", serviceRepo.created[0].Name)
	assert.Equal(t, id, serviceRepo.created[0].BusinessID)
	// Flushed services are cleared so a later checkpoint does not recreate them.
	assert.Empty(t, draft.Services)
}

func TestDoneMarksOnboardingComplete(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	svc := NewService(repo, &fakeServiceRepo{})

	draft, err := svc.Submit(context.Background(), id, model.StepDone, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StepDone, draft.Step)
	assert.True(t, repo.businesses[id].OnboardingDone)
}

func TestBack(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	svc := NewService(repo, &fakeServiceRepo{})

	_, err := svc.Submit(context.Background(), id, model.StepCategory, nil)
	require.NoError(t, err)

	draft, err := svc.Back(id)
	require.NoError(t, err)
	assert.Equal(t, model.StepCategory, draft.Step)
}

func TestBackOnFirstStep(t *testing.T) {
	repo := newFakeBusinessRepo()
	id := seedBusiness(repo)
	svc := NewService(repo, &fakeServiceRepo{})

	_, err := svc.Back(id)
	assert.ErrorIs(t, err, ErrNoPreviousStep)

	// The draft stays at the first step.
	assert.Equal(t, model.StepCategory, svc.Draft(id).Step)
}
