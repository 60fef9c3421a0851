package image

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/repository"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/metrics"
)

const maxImageSize = 10 << 20 // 10 MiB per file

// Store persists raw image bytes and returns a public URL. The default
// implementation writes to local disk; an object store can replace it
// without touching the service.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (url string, size int64, err error)
}

type DiskStore struct {
	Dir     string
	BaseURL string
}

func (d *DiskStore) Save(ctx context.Context, name string, r io.Reader) (string, int64, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create image directory: %w", err)
	}

	path := filepath.Join(d.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, io.LimitReader(r, maxImageSize+1))
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("failed to write image: %w", err)
	}
	if size > maxImageSize {
		os.Remove(path)
		return "", 0, apperrors.BadRequest("image exceeds the size limit", nil)
	}

	return strings.TrimRight(d.BaseURL, "/") + "/" + name, size, nil
}

type Service struct {
	store   Store
	repo    repository.ImageRepository
	metrics *metrics.Metrics
}

func NewService(store Store, repo repository.ImageRepository, m *metrics.Metrics) *Service {
	return &Service{store: store, repo: repo, metrics: m}
}

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true,
}

// UploadMultiple stores each file and records it, returning the new image
// refs in input order. It fails fast on the first bad file.
func (s *Service) UploadMultiple(ctx context.Context, businessID uuid.UUID, files []*multipart.FileHeader) ([]*model.Image, error) {
	if len(files) == 0 {
		return nil, apperrors.BadRequest("no files provided", nil)
	}

	images := make([]*model.Image, 0, len(files))
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			return nil, apperrors.BadRequest(fmt.Sprintf("unsupported image type %q", ext), nil)
		}

		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		id := uuid.New()
		url, size, err := s.store.Save(ctx, id.String()+ext, src)
		src.Close()
		if err != nil {
			return nil, err
		}

		img := &model.Image{
			ID:         id,
			BusinessID: businessID,
			FileName:   fh.Filename,
			URL:        url,
			SizeBytes:  size,
			CreatedAt:  time.Now(),
		}
		if err := s.repo.Create(ctx, img); err != nil {
			return nil, err
		}

		if s.metrics != nil {
			s.metrics.ImagesUploaded.Inc()
			s.metrics.ImageUploadBytes.Add(float64(size))
		}
		images = append(images, img)
	}
	return images, nil
}
