package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	gocache "github.com/patrickmn/go-cache"

	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/repository"
	apperrors "github.com/nillow/booking-api/pkg/errors"
)

// ErrNoPreviousStep is returned by Back on the first wizard page. The caller
// exits the wizard (signs out or returns to the prior route).
var ErrNoPreviousStep = errors.New("no previous step")

// draftTTL bounds how long an abandoned draft survives.
const draftTTL = 24 * time.Hour

// steps is the wizard page order with the progress value shown on each page.
var steps = []model.OnboardingStepInfo{
	{Key: model.StepCategory, Progress: 8},
	{Key: model.StepName, Progress: 16},
	{Key: model.StepPhone, Progress: 24},
	{Key: model.StepLocationType, Progress: 32},
	{Key: model.StepAddress, Progress: 40},
	{Key: model.StepTravelFee, Progress: 48},
	{Key: model.StepHours, Progress: 58},
	{Key: model.StepServices, Progress: 68},
	{Key: model.StepGoals, Progress: 78},
	{Key: model.StepTeamSize, Progress: 88},
	{Key: model.StepGoLive, Progress: 96},
	{Key: model.StepDone, Progress: 100},
}

// checkpoints are the steps whose submission flushes the draft to storage.
// Pages in between only accumulate into the draft.
var checkpoints = map[model.OnboardingStep]bool{
	model.StepAddress:  true,
	model.StepHours:    true,
	model.StepServices: true,
	model.StepDone:     true,
}

type Service struct {
	businessRepo repository.BusinessRepository
	serviceRepo  repository.ServiceRepository
	drafts       *gocache.Cache
}

func NewService(businessRepo repository.BusinessRepository, serviceRepo repository.ServiceRepository) *Service {
	return &Service{
		businessRepo: businessRepo,
		serviceRepo:  serviceRepo,
		drafts:       gocache.New(draftTTL, time.Hour),
	}
}

// Steps returns the ordered wizard pages and their progress values.
func (s *Service) Steps() []model.OnboardingStepInfo {
	return steps
}

// Progress returns the progress value for a step, or 0 for unknown keys.
func (s *Service) Progress(step model.OnboardingStep) int {
	for _, info := range steps {
		if info.Key == step {
			return info.Progress
		}
	}
	return 0
}

// Draft returns the business's current draft, creating a fresh one at the
// first step when none exists.
func (s *Service) Draft(businessID uuid.UUID) *model.OnboardingDraft {
	if cached, ok := s.drafts.Get(businessID.String()); ok {
		return cached.(*model.OnboardingDraft)
	}
	draft := &model.OnboardingDraft{BusinessID: businessID, Step: steps[0].Key}
	s.drafts.Set(businessID.String(), draft, draftTTL)
	return draft
}

// Submit merges one page's payload into the draft and advances to the next
// step. Checkpoint steps also persist the accumulated answers; every page in
// between stays local so an abandoned wizard leaves no partial writes.
func (s *Service) Submit(ctx context.Context, businessID uuid.UUID, step model.OnboardingStep, payload json.RawMessage) (*model.OnboardingDraft, error) {
	idx := stepIndex(step)
	if idx < 0 {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown onboarding step %q", step), nil)
	}

	draft := s.Draft(businessID)
	if err := s.merge(draft, step, payload); err != nil {
		return nil, err
	}

	if checkpoints[step] {
		if err := s.flush(ctx, draft, step); err != nil {
			return nil, err
		}
	}

	if idx+1 < len(steps) {
		draft.Step = steps[idx+1].Key
	} else {
		draft.Step = model.StepDone
	}
	s.drafts.Set(businessID.String(), draft, draftTTL)
	return draft, nil
}

// Back moves the draft to the previous step. On the first step it returns
// ErrNoPreviousStep and leaves the draft unchanged.
func (s *Service) Back(businessID uuid.UUID) (*model.OnboardingDraft, error) {
	draft := s.Draft(businessID)

	idx := stepIndex(draft.Step)
	if idx <= 0 {
		return nil, ErrNoPreviousStep
	}

	draft.Step = steps[idx-1].Key
	s.drafts.Set(businessID.String(), draft, draftTTL)
	return draft, nil
}

// merge decodes one page's payload onto the draft. Each page carries only
// its own fields, so unmarshalling in place accumulates answers without
// clobbering earlier ones.
func (s *Service) merge(draft *model.OnboardingDraft, step model.OnboardingStep, payload json.RawMessage) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, draft); err != nil {
		return apperrors.BadRequest("invalid onboarding payload", err)
	}
	return nil
}

func (s *Service) flush(ctx context.Context, draft *model.OnboardingDraft, step model.OnboardingStep) error {
	business, err := s.businessRepo.Get(ctx, draft.BusinessID)
	if err != nil {
		return err
	}

	if draft.CategoryID != nil {
		business.CategoryID = draft.CategoryID
	}
	if draft.Name != "" {
		business.Name = draft.Name
	}
	if draft.Phone != "" {
		business.Phone = draft.Phone
	}
	business.HasPhysical = draft.HasPhysical
	business.OffersHomeService = draft.OffersHomeService
	if draft.Address != "" {
		business.Address = draft.Address
		business.Latitude = draft.Latitude
		business.Longitude = draft.Longitude
	}
	business.ChargesTravelFee = draft.ChargesTravelFee
	business.TravelFee = draft.TravelFee
	if len(draft.Goals) > 0 {
		business.Goals = pq.StringArray(draft.Goals)
	}
	if draft.TeamSize != "" {
		business.TeamSize = draft.TeamSize
	}
	if draft.GoLive != "" {
		business.GoLive = draft.GoLive
	}

	business.OnboardingStep = string(step)
	if step == model.StepDone {
		business.OnboardingDone = true
	}
	business.UpdatedAt = time.Now()

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return err
	}

	if len(draft.Hours) > 0 {
		if err := s.businessRepo.ReplaceHours(ctx, draft.BusinessID, draft.Hours); err != nil {
			return err
		}
	}

	if step == model.StepServices || step == model.StepDone {
		for _, req := range draft.Services {
			svc := &model.Service{
				BusinessID:    draft.BusinessID,
				ServiceTypeID: req.ServiceTypeID,
				Name:          req.Name,
				Price:         req.Price,
				PriceType:     req.PriceType,
				DurationHours: req.DurationHours,
				DurationMins:  req.DurationMins,
				Category:      req.Category,
				Target:        req.Target,
				PhotoURLs:     pq.StringArray(req.PhotoURLs),
			}
			svc.ID = uuid.New()
			svc.CreatedAt = time.Now()
			svc.UpdatedAt = svc.CreatedAt
			if err := s.serviceRepo.Create(ctx, svc); err != nil {
				return err
			}
		}
		draft.Services = nil
	}
	return nil
}

func stepIndex(step model.OnboardingStep) int {
	for i, info := range steps {
		if info.Key == step {
			return i
		}
	}
	return -1
}
