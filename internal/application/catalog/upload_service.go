package catalog

import (
	"context"
	"fmt"
	"regexp"

	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"github.com/horologe/storefront/internal/infrastructure/storage"
	"go.uber.org/zap"
)

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,49}$`)

// UploadService stores catalog images in object storage
type UploadService struct {
	store   storage.ObjectStore
	maxSize int64
	logger  *zap.Logger
}

// NewUploadService creates a new UploadService. maxSize is in bytes.
func NewUploadService(store storage.ObjectStore, maxSize int64, logger *zap.Logger) *UploadService {
	return &UploadService{store: store, maxSize: maxSize, logger: logger}
}

// MaxSize returns the largest accepted upload in bytes
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// UploadImage validates and stores an image under folder and returns its
// public URL
func (s *UploadService) UploadImage(ctx context.Context, folder string, data []byte, contentType string) (*UploadResponse, error) {
	if len(data) == 0 {
		return nil, shared.NewValidationError("file is empty")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, shared.NewValidationError("file exceeds the %d byte limit", s.maxSize)
	}
	ext, ok := storage.ImageExtension(contentType)
	if !ok {
		return nil, shared.NewValidationError("unsupported image type %q", contentType)
	}
	if folder == "" {
		folder = "products"
	}
	if !folderPattern.MatchString(folder) {
		return nil, shared.NewValidationError("folder must be lowercase letters, digits, '-' or '_'")
	}

	key := storage.NewImageKey(folder, ext)
	url, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodePersistence, "failed to store image", fmt.Errorf("put %s: %w", key, err))
	}

	logger.Enrich(ctx, s.logger).Info("Image uploaded",
		zap.String("key", key),
		zap.Int("size", len(data)),
	)
	return &UploadResponse{Key: key, URL: url}, nil
}
