package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nillow/booking-api/internal/model"
	apperrors "github.com/nillow/booking-api/pkg/errors"
)

const customerColumns = `
	id, business_id, name, phone, email, address, notes, preferred_services,
	created_at, updated_at
`

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.BusinessID, customer.Name, customer.Phone,
		customer.Email, customer.Address, customer.Notes, customer.PreferredServices,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND deleted_at IS NULL`

	var customer model.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("customer", err)
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) Search(ctx context.Context, businessID uuid.UUID, query string) ([]*model.Customer, error) {
	sqlQuery := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE business_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{businessID}

	if query != "" {
		sqlQuery += ` AND (name ILIKE $2 OR phone ILIKE $2)`
		args = append(args, "%"+query+"%")
	}

	sqlQuery += ` ORDER BY name LIMIT 50`

	var customers []*model.Customer
	if err := r.db.SelectContext(ctx, &customers, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return customers, nil
}
