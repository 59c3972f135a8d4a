// Package storage keeps uploaded catalog images in S3-compatible object
// storage or on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/horologe/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrEmptyKey is returned when an operation is given no object key
var ErrEmptyKey = errors.New("storage key is required")

// ObjectStore saves objects and returns the URL clients fetch them from
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageExtension returns the file extension for an accepted image content
// type, or false when the type is not accepted
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// NewImageKey builds a unique key under folder, e.g. products/<uuid>.jpg
func NewImageKey(folder, ext string) string {
	return path.Join(folder, uuid.NewString()+ext)
}

// New returns the ObjectStore selected by cfg.Provider
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ObjectStore, error) {
	switch cfg.Provider {
	case "s3":
		s, err := NewS3Store(ctx, cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			logger.Warn("Could not verify storage bucket", zap.String("bucket", cfg.S3Bucket), zap.Error(err))
		}
		return s, nil
	case "local", "":
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
