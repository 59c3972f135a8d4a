package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/horologe/storefront/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add_orders_index", "add_orders_index"},
		{"Add Orders Index", "add_orders_index"},
		{"add--reviews  table", "add_reviews_table"},
		{"  leading and trailing  ", "leading_and_trailing"},
		{"v2 settings!", "v2_settings"},
		{"***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	first, err := CreateMigration(dir, "init schema")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_init_schema.up.sql"), first.UpPath)
	assert.FileExists(t, first.UpPath)
	assert.FileExists(t, first.DownPath)

	content, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "init_schema (rollback)")

	second, err := CreateMigration(dir, "Add Coupons")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	_, err = CreateMigration(dir, "!!!")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000010_later.up.sql",
		"000010_later.down.sql",
		"000002_second.up.sql",
		"README.md",
		"nonsense.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

	files, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, uint(2), files[0].Version)
	assert.Equal(t, "second", files[0].Name)
	assert.Equal(t, uint(10), files[1].Version)

	missing, err := ListMigrations(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := migrationsGlob("*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := migrations.FS.Open(down)
		assert.NoError(t, err, "missing rollback for %s", up)
	}
}

func migrationsGlob(pattern string) ([]string, error) {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
