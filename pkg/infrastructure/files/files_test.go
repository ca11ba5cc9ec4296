package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/domain/repositories"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/xlsx"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "inventory.xlsx", "manifest.csv", "~$inventory.xlsx", "notes.txt")

	files, err := Discover(dir, "*.xlsx", "*.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inventory.xlsx"), files.Inventory)
	assert.Equal(t, filepath.Join(dir, "manifest.csv"), files.Manifest)
}

func TestDiscover_ManifestWorkbookExcludedFromInventory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "inventory.xlsx", "manifest_0110.xlsx")

	files, err := Discover(dir, "*.xlsx", "manifest*.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inventory.xlsx"), files.Inventory)
	assert.Equal(t, filepath.Join(dir, "manifest_0110.xlsx"), files.Manifest)
}

func TestDiscover_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		wantErr error
	}{
		{"no inventory", []string{"manifest.csv"}, repositories.ErrInputNotFound},
		{"no manifest", []string{"inventory.xlsx"}, repositories.ErrInputNotFound},
		{"two inventories", []string{"a.xlsx", "b.xlsx", "manifest.csv"}, repositories.ErrAmbiguousInput},
		{"two manifests", []string{"inventory.xlsx", "m1.csv", "m2.csv"}, repositories.ErrAmbiguousInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)

			_, err := Discover(dir, "*.xlsx", "*.csv")
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDiscover_MissingFolder(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"), "*.xlsx", "*.csv")
	assert.Error(t, err)
}

func TestLoader_RejectsLegacyWorkbook(t *testing.T) {
	loader := NewLoader(xlsx.NewLoader(xlsx.DefaultConfig(), zap.NewNop()), csv.NewLoader(csv.Config{}, zap.NewNop()))

	_, err := loader.LoadCarriers(context.Background(), "manifest.xls")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "re-save")

	_, err = loader.LoadInventory(context.Background(), "inventory.ods")
	assert.True(t, errors.Is(err, repositories.ErrUnsupportedFormat))
}
