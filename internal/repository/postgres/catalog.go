package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nillow/booking-api/internal/model"
	apperrors "github.com/nillow/booking-api/pkg/errors"
)

const serviceColumns = `
	id, business_id, service_type_id, name, price, price_type,
	duration_hours, duration_mins, category, target, photo_urls,
	created_at, updated_at
`

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		svc.ID, svc.BusinessID, svc.ServiceTypeID, svc.Name, svc.Price, svc.PriceType,
		svc.DurationHours, svc.DurationMins, svc.Category, svc.Target, svc.PhotoURLs,
		svc.CreatedAt, svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND deleted_at IS NULL`

	var svc model.Service
	if err := r.db.GetContext(ctx, &svc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	query := `
		UPDATE services
		SET service_type_id = $1, name = $2, price = $3, price_type = $4,
			duration_hours = $5, duration_mins = $6, category = $7,
			target = $8, photo_urls = $9, updated_at = $10
		WHERE id = $11 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		svc.ServiceTypeID, svc.Name, svc.Price, svc.PriceType,
		svc.DurationHours, svc.DurationMins, svc.Category,
		svc.Target, svc.PhotoURLs, svc.UpdatedAt, svc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service", nil)
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE services SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service", nil)
	}
	return nil
}

func (r *serviceRepository) List(ctx context.Context, businessID uuid.UUID) ([]*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE business_id = $1 AND deleted_at IS NULL ORDER BY name`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, businessID); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+serviceColumns+` FROM services WHERE id IN (?) AND deleted_at IS NULL`, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build services query: %w", err)
	}
	query = r.db.Rebind(query)

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list services by ids: %w", err)
	}
	return services, nil
}

func (r *serviceTypeRepository) List(ctx context.Context) ([]*model.ServiceType, error) {
	query := `SELECT id, name, created_at, updated_at FROM service_types WHERE deleted_at IS NULL ORDER BY name`

	var types []*model.ServiceType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	return types, nil
}

func (r *serviceTypeRepository) Create(ctx context.Context, st *model.ServiceType) error {
	query := `INSERT INTO service_types (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, st.ID, st.Name, st.CreatedAt, st.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create service type: %w", err)
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.BusinessCategory, error) {
	query := `SELECT id, name, created_at, updated_at FROM business_categories WHERE deleted_at IS NULL ORDER BY name`

	var categories []*model.BusinessCategory
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list business categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.BusinessCategory) error {
	query := `INSERT INTO business_categories (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.CreatedAt, category.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create business category: %w", err)
	}
	return nil
}
