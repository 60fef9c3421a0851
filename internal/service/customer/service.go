package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/repository"
)

// Directory is the customer lookup collaborator the booking screens use.
// The production implementation is database-backed; tests substitute fakes.
type Directory interface {
	Search(ctx context.Context, businessID uuid.UUID, query string) ([]*model.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Create(ctx context.Context, businessID uuid.UUID, req *model.CreateCustomerRequest) (*model.Customer, error)
}

type Service struct {
	repo repository.CustomerRepository
}

func NewService(repo repository.CustomerRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Search(ctx context.Context, businessID uuid.UUID, query string) ([]*model.Customer, error) {
	return s.repo.Search(ctx, businessID, query)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, businessID uuid.UUID, req *model.CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		BusinessID:        businessID,
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		Notes:             req.Notes,
		PreferredServices: pq.StringArray(req.PreferredServices),
	}
	customer.ID = uuid.New()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
