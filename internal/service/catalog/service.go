package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	gocache "github.com/patrickmn/go-cache"

	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/repository"
	"github.com/nillow/booking-api/internal/service/event"
	apperrors "github.com/nillow/booking-api/pkg/errors"
)

const typeCacheKey = "service-types"

// Service manages the offerings a business sells and the shared
// service-type directory.
type Service struct {
	repo     repository.ServiceRepository
	typeRepo repository.ServiceTypeRepository
	events   *event.Service
	cache    *gocache.Cache
}

func NewService(repo repository.ServiceRepository, typeRepo repository.ServiceTypeRepository, events *event.Service) *Service {
	return &Service{
		repo:     repo,
		typeRepo: typeRepo,
		events:   events,
		cache:    gocache.New(15*time.Minute, time.Hour),
	}
}

func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	if req.DurationHours == 0 && req.DurationMins == 0 {
		return nil, apperrors.BadRequest("service duration is required", nil)
	}

	svc := &model.Service{
		BusinessID:    businessID,
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

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Emit(ctx, "service.created", svc)
	}
	return svc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error) {
	return s.repo.List(ctx, businessID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, businessID uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.BusinessID != businessID {
		return nil, apperrors.Forbidden("service belongs to another business", nil)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.PriceType != nil {
		svc.PriceType = *req.PriceType
	}
	if req.DurationHours != nil {
		svc.DurationHours = *req.DurationHours
	}
	if req.DurationMins != nil {
		svc.DurationMins = *req.DurationMins
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Target != nil {
		svc.Target = *req.Target
	}
	if req.ServiceTypeID != nil {
		svc.ServiceTypeID = req.ServiceTypeID
	}
	if req.PhotoURLs != nil {
		svc.PhotoURLs = pq.StringArray(*req.PhotoURLs)
	}

	if svc.DurationHours == 0 && svc.DurationMins == 0 {
		return nil, apperrors.BadRequest("service duration is required", nil)
	}

	svc.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Emit(ctx, "service.updated", svc)
	}
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, businessID uuid.UUID) error {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if svc.BusinessID != businessID {
		return apperrors.Forbidden("service belongs to another business", nil)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListTypes(ctx context.Context) ([]*model.ServiceType, error) {
	if cached, ok := s.cache.Get(typeCacheKey); ok {
		return cached.([]*model.ServiceType), nil
	}

	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(typeCacheKey, types)
	return types, nil
}

func (s *Service) CreateType(ctx context.Context, name string) (*model.ServiceType, error) {
	if name == "" {
		return nil, apperrors.BadRequest("service type name is required", nil)
	}

	st := &model.ServiceType{Name: name}
	st.ID = uuid.New()
	st.CreatedAt = time.Now()
	st.UpdatedAt = st.CreatedAt

	if err := s.typeRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	s.cache.Delete(typeCacheKey)
	return st, nil
}
