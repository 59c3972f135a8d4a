package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/horologe/storefront/internal/domain/shared"
	"github.com/horologe/storefront/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUploadService_LocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)
	svc := NewUploadService(store, 1024, zap.NewNop())

	resp, err := svc.UploadImage(context.Background(), "", []byte("\x89PNG fake"), "image/png")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "products/"))
	assert.True(t, strings.HasSuffix(resp.Key, ".png"))
	assert.Equal(t, "http://localhost:8080/uploads/"+resp.Key, resp.URL)
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(resp.Key)))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(data))
}

func TestUploadService_Validation(t *testing.T) {
	store := new(MockObjectStore)
	svc := NewUploadService(store, 4, zap.NewNop())
	ctx := context.Background()

	_, err := svc.UploadImage(ctx, "products", nil, "image/png")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.UploadImage(ctx, "products", []byte("too large"), "image/png")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.UploadImage(ctx, "products", []byte("ok"), "application/pdf")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.UploadImage(ctx, "../etc", []byte("ok"), "image/png")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_StoreFailure(t *testing.T) {
	store := new(MockObjectStore)
	store.On("Put", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").Return("", errors.New("access denied"))

	_, err := NewUploadService(store, 0, zap.NewNop()).UploadImage(context.Background(), "categories", []byte("jpg"), "image/jpeg")
	assert.ErrorIs(t, err, shared.ErrPersistence)
}
