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

const businessColumns = `
	id, category_id, name, username, phone, email,
	has_physical, offers_home_service, address, latitude, longitude,
	charges_travel_fee, travel_fee, goals, team_size, go_live,
	onboarding_step, onboarding_done, created_at, updated_at
`

func (r *businessRepository) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1 AND deleted_at IS NULL`

	var b model.Business
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("business", err)
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	if err := r.loadHours(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *businessRepository) GetByPhone(ctx context.Context, phone string) (*model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE phone = $1 AND deleted_at IS NULL`

	var b model.Business
	if err := r.db.GetContext(ctx, &b, query, phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("business", err)
		}
		return nil, fmt.Errorf("failed to get business by phone: %w", err)
	}
	return &b, nil
}

func (r *businessRepository) List(ctx context.Context) ([]*model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE deleted_at IS NULL ORDER BY created_at`

	var businesses []*model.Business
	if err := r.db.SelectContext(ctx, &businesses, query); err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

func (r *businessRepository) Create(ctx context.Context, b *model.Business) error {
	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.CategoryID, b.Name, b.Username, b.Phone, b.Email,
		b.HasPhysical, b.OffersHomeService, b.Address, b.Latitude, b.Longitude,
		b.ChargesTravelFee, b.TravelFee, b.Goals, b.TeamSize, b.GoLive,
		b.OnboardingStep, b.OnboardingDone, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create business: %w", err)
	}
	return nil
}

func (r *businessRepository) Update(ctx context.Context, b *model.Business) error {
	query := `
		UPDATE businesses
		SET category_id = $1, name = $2, username = $3, phone = $4, email = $5,
			has_physical = $6, offers_home_service = $7, address = $8,
			latitude = $9, longitude = $10, charges_travel_fee = $11,
			travel_fee = $12, goals = $13, team_size = $14, go_live = $15,
			onboarding_step = $16, onboarding_done = $17, updated_at = $18
		WHERE id = $19 AND deleted_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query,
		b.CategoryID, b.Name, b.Username, b.Phone, b.Email,
		b.HasPhysical, b.OffersHomeService, b.Address,
		b.Latitude, b.Longitude, b.ChargesTravelFee,
		b.TravelFee, b.Goals, b.TeamSize, b.GoLive,
		b.OnboardingStep, b.OnboardingDone, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("business", nil)
	}
	return nil
}

func (r *businessRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM businesses WHERE phone = $1 AND deleted_at IS NULL)`
	if err := r.db.GetContext(ctx, &exists, query, phone); err != nil {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}
	return exists, nil
}

func (r *businessRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM businesses WHERE username = $1 AND deleted_at IS NULL)`
	if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *businessRepository) loadHours(ctx context.Context, b *model.Business) error {
	query := `
		SELECT id, business_id, weekday, open_time, close_time, closed, break_start, break_end
		FROM business_hours
		WHERE business_id = $1
		ORDER BY weekday
	`
	var hours []model.BusinessHour
	if err := r.db.SelectContext(ctx, &hours, query, b.ID); err != nil {
		return fmt.Errorf("failed to load business hours: %w", err)
	}
	b.Hours = hours
	return nil
}

func (r *businessRepository) ReplaceHours(ctx context.Context, businessID uuid.UUID, hours []model.BusinessHour) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM business_hours WHERE business_id = $1`, businessID,
		); err != nil {
			return fmt.Errorf("failed to clear business hours: %w", err)
		}

		query := `
			INSERT INTO business_hours (
				id, business_id, weekday, open_time, close_time, closed, break_start, break_end
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		for _, h := range hours {
			id := h.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			if _, err := tx.ExecContext(ctx, query,
				id, businessID, h.Weekday, h.Open, h.Close, h.Closed, h.BreakStart, h.BreakEnd,
			); err != nil {
				return fmt.Errorf("failed to insert business hours: %w", err)
			}
		}
		return nil
	})
}

func (r *businessRepository) GetCalendarSettings(ctx context.Context, businessID uuid.UUID) (*model.CalendarSettings, error) {
	query := `
		SELECT business_id, start_hour, end_hour, timezone, date_format, time_format, slot_duration_min
		FROM calendar_settings
		WHERE business_id = $1
	`
	var settings model.CalendarSettings
	if err := r.db.GetContext(ctx, &settings, query, businessID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultCalendarSettings(businessID), nil
		}
		return nil, fmt.Errorf("failed to get calendar settings: %w", err)
	}

	slotQuery := `
		SELECT id, business_id, weekday, date, start_time, end_time
		FROM disabled_slots
		WHERE business_id = $1
	`
	var slots []model.DisabledSlot
	if err := r.db.SelectContext(ctx, &slots, slotQuery, businessID); err != nil {
		return nil, fmt.Errorf("failed to load disabled slots: %w", err)
	}
	settings.DisabledSlots = slots
	return &settings, nil
}

func (r *businessRepository) SaveCalendarSettings(ctx context.Context, settings *model.CalendarSettings) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO calendar_settings (
				business_id, start_hour, end_hour, timezone, date_format, time_format, slot_duration_min, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (business_id) DO UPDATE SET
				start_hour = EXCLUDED.start_hour,
				end_hour = EXCLUDED.end_hour,
				timezone = EXCLUDED.timezone,
				date_format = EXCLUDED.date_format,
				time_format = EXCLUDED.time_format,
				slot_duration_min = EXCLUDED.slot_duration_min,
				updated_at = EXCLUDED.updated_at
		`
		if _, err := tx.ExecContext(ctx, query,
			settings.BusinessID, settings.StartHour, settings.EndHour,
			settings.Timezone, settings.DateFormat, settings.TimeFormat,
			settings.SlotDurationMin, time.Now(),
		); err != nil {
			return fmt.Errorf("failed to save calendar settings: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM disabled_slots WHERE business_id = $1`, settings.BusinessID,
		); err != nil {
			return fmt.Errorf("failed to clear disabled slots: %w", err)
		}

		slotQuery := `
			INSERT INTO disabled_slots (id, business_id, weekday, date, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		for _, slot := range settings.DisabledSlots {
			id := slot.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			if _, err := tx.ExecContext(ctx, slotQuery,
				id, settings.BusinessID, slot.Weekday, slot.Date, slot.StartTime, slot.EndTime,
			); err != nil {
				return fmt.Errorf("failed to insert disabled slot: %w", err)
			}
		}
		return nil
	})
}
