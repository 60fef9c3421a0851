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

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO appointments (
				id, business_id, customer_id, customer_name, customer_phone,
				start_time, end_time, status, before_image, after_image,
				location, description, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`
		_, err := tx.ExecContext(ctx, query,
			apt.ID,
			apt.BusinessID,
			apt.CustomerID,
			apt.CustomerName,
			apt.CustomerPhone,
			apt.StartTime,
			apt.EndTime,
			apt.Status,
			apt.BeforeImage,
			apt.AfterImage,
			apt.Location,
			apt.Description,
			apt.CreatedAt,
			apt.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		return r.insertServices(ctx, tx, apt)
	})
}

func (r *appointmentRepository) insertServices(ctx context.Context, tx *sqlx.Tx, apt *model.Appointment) error {
	query := `
		INSERT INTO appointment_services (
			id, appointment_id, service_id, name, price, duration_minutes
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range apt.Services {
		svc := &apt.Services[i]
		if svc.ID == uuid.Nil {
			svc.ID = uuid.New()
		}
		svc.AppointmentID = apt.ID
		if _, err := tx.ExecContext(ctx, query,
			svc.ID, svc.AppointmentID, svc.ServiceID, svc.Name, svc.Price, svc.DurationMinutes,
		); err != nil {
			return fmt.Errorf("failed to attach service to appointment: %w", err)
		}
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, business_id, customer_id, customer_name, customer_phone,
			   start_time, end_time, status, before_image, after_image,
			   location, description, created_at, updated_at
		FROM appointments
		WHERE id = $1 AND deleted_at IS NULL
	`
	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := r.loadServices(ctx, &apt); err != nil {
		return nil, err
	}
	return &apt, nil
}

func (r *appointmentRepository) loadServices(ctx context.Context, apt *model.Appointment) error {
	query := `
		SELECT id, appointment_id, service_id, name, price, duration_minutes
		FROM appointment_services
		WHERE appointment_id = $1
	`
	var services []model.AppointmentService
	if err := r.db.SelectContext(ctx, &services, query, apt.ID); err != nil {
		return fmt.Errorf("failed to load appointment services: %w", err)
	}
	apt.Services = services
	return nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE appointments
			SET customer_id = $1, customer_name = $2, customer_phone = $3,
				start_time = $4, end_time = $5, status = $6,
				before_image = $7, after_image = $8,
				location = $9, description = $10, updated_at = $11
			WHERE id = $12 AND deleted_at IS NULL
		`
		result, err := tx.ExecContext(ctx, query,
			apt.CustomerID,
			apt.CustomerName,
			apt.CustomerPhone,
			apt.StartTime,
			apt.EndTime,
			apt.Status,
			apt.BeforeImage,
			apt.AfterImage,
			apt.Location,
			apt.Description,
			apt.UpdatedAt,
			apt.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("appointment", nil)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM appointment_services WHERE appointment_id = $1`, apt.ID,
		); err != nil {
			return fmt.Errorf("failed to clear appointment services: %w", err)
		}
		return r.insertServices(ctx, tx, apt)
	})
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE appointments SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, business_id, customer_id, customer_name, customer_phone,
			   start_time, end_time, status, before_image, after_image,
			   location, description, created_at, updated_at
		FROM appointments
		WHERE business_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{filters.BusinessID}
	argCount := 2

	if !filters.FromDate.IsZero() {
		query += fmt.Sprintf(" AND end_time >= $%d", argCount)
		args = append(args, filters.FromDate)
		argCount++
	}

	if !filters.ToDate.IsZero() {
		query += fmt.Sprintf(" AND start_time <= $%d", argCount)
		args = append(args, filters.ToDate)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	query += " ORDER BY start_time ASC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filters.Limit)
	}

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	for _, apt := range appointments {
		if err := r.loadServices(ctx, apt); err != nil {
			return nil, err
		}
	}
	return appointments, nil
}

func (r *appointmentRepository) CheckConflict(ctx context.Context, businessID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE business_id = $1
			AND deleted_at IS NULL
			AND status NOT IN ('cancelled', 'completed')
			AND start_time < $3
			AND end_time > $2
	`
	args := []interface{}{businessID, start, end}

	if excludeID != nil {
		query += " AND id != $4"
		args = append(args, *excludeID)
	}

	query += ")"

	var hasConflict bool
	if err := r.db.GetContext(ctx, &hasConflict, query, args...); err != nil {
		return false, fmt.Errorf("failed to check conflicts: %w", err)
	}
	return hasConflict, nil
}
