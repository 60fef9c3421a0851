package model

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	ID         uuid.UUID `db:"id" json:"id"`
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	FileName   string    `db:"file_name" json:"file_name"`
	URL        string    `db:"url" json:"url"`
	SizeBytes  int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
