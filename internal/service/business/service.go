package business

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

const categoryCacheKey = "business-categories"

type Service struct {
	repo         repository.BusinessRepository
	categoryRepo repository.CategoryRepository
	events       *event.Service
	cache        *gocache.Cache
}

func NewService(repo repository.BusinessRepository, categoryRepo repository.CategoryRepository, events *event.Service) *Service {
	return &Service{
		repo:         repo,
		categoryRepo: categoryRepo,
		events:       events,
		cache:        gocache.New(15*time.Minute, time.Hour),
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Business, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		business.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Phone != nil {
		business.Phone = *req.Phone
	}
	if req.Email != nil {
		business.Email = *req.Email
	}
	if req.HasPhysical != nil {
		business.HasPhysical = *req.HasPhysical
	}
	if req.OffersHomeService != nil {
		business.OffersHomeService = *req.OffersHomeService
	}
	if req.Address != nil {
		business.Address = *req.Address
	}
	if req.Latitude != nil {
		business.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		business.Longitude = req.Longitude
	}
	if req.ChargesTravelFee != nil {
		business.ChargesTravelFee = *req.ChargesTravelFee
	}
	if req.TravelFee != nil {
		business.TravelFee = *req.TravelFee
	}
	if req.Goals != nil {
		business.Goals = pq.StringArray(*req.Goals)
	}
	if req.TeamSize != nil {
		business.TeamSize = *req.TeamSize
	}
	if req.GoLive != nil {
		business.GoLive = *req.GoLive
	}

	business.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, business); err != nil {
		return nil, err
	}

	if len(req.Hours) > 0 {
		if err := s.repo.ReplaceHours(ctx, id, req.Hours); err != nil {
			return nil, err
		}
		business.Hours = req.Hours
	}

	if s.events != nil {
		_ = s.events.Emit(ctx, "business.updated", business)
	}
	return business, nil
}

// ListCategories serves the category directory through a short-lived cache;
// the directory changes rarely and is read on every onboarding start.
func (s *Service) ListCategories(ctx context.Context) ([]*model.BusinessCategory, error) {
	if cached, ok := s.cache.Get(categoryCacheKey); ok {
		return cached.([]*model.BusinessCategory), nil
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(categoryCacheKey, categories)
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*model.BusinessCategory, error) {
	if name == "" {
		return nil, apperrors.BadRequest("category name is required", nil)
	}

	category := &model.BusinessCategory{Name: name}
	category.ID = uuid.New()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.cache.Delete(categoryCacheKey)
	return category, nil
}

func (s *Service) GetCalendarSettings(ctx context.Context, businessID uuid.UUID) (*model.CalendarSettings, error) {
	return s.repo.GetCalendarSettings(ctx, businessID)
}

func (s *Service) SaveCalendarSettings(ctx context.Context, settings *model.CalendarSettings) error {
	if settings.EndHour <= settings.StartHour {
		return apperrors.BadRequest("end hour must be after start hour", nil)
	}
	return s.repo.SaveCalendarSettings(ctx, settings)
}
