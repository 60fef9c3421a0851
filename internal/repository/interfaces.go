package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nillow/booking-api/internal/model"
)

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	CheckConflict(ctx context.Context, businessID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

type BusinessRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
	GetByPhone(ctx context.Context, phone string) (*model.Business, error)
	List(ctx context.Context) ([]*model.Business, error)
	Create(ctx context.Context, b *model.Business) error
	Update(ctx context.Context, b *model.Business) error
	PhoneExists(ctx context.Context, phone string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	ReplaceHours(ctx context.Context, businessID uuid.UUID, hours []model.BusinessHour) error
	GetCalendarSettings(ctx context.Context, businessID uuid.UUID) (*model.CalendarSettings, error)
	SaveCalendarSettings(ctx context.Context, settings *model.CalendarSettings) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]*model.BusinessCategory, error)
	Create(ctx context.Context, category *model.BusinessCategory) error
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error)
}

type ServiceTypeRepository interface {
	List(ctx context.Context) ([]*model.ServiceType, error)
	Create(ctx context.Context, st *model.ServiceType) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Search(ctx context.Context, businessID uuid.UUID, query string) ([]*model.Customer, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	Get(ctx context.Context, id uuid.UUID) (*model.Image, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
