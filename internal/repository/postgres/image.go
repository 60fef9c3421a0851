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

func (r *imageRepository) Create(ctx context.Context, image *model.Image) error {
	query := `
		INSERT INTO images (id, business_id, file_name, url, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		image.ID, image.BusinessID, image.FileName, image.URL, image.SizeBytes, image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create image record: %w", err)
	}
	return nil
}

func (r *imageRepository) Get(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	query := `
		SELECT id, business_id, file_name, url, size_bytes, created_at
		FROM images
		WHERE id = $1
	`
	var image model.Image
	if err := r.db.GetContext(ctx, &image, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("image", err)
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &image, nil
}
