package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scacmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Inventory.HeaderRow)
	assert.Equal(t, int64(20000), cfg.LotSize)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/inbound
manifest_glob: "manifest_*.xlsx"
inventory:
  sheet: Report
  header_row: 1
match_mode: exact
sheets:
  spreadsheet_id: abc123
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/inbound", cfg.InputDir)
	assert.Equal(t, "manifest_*.xlsx", cfg.ManifestGlob)
	assert.Equal(t, SheetLayout{Sheet: "Report", HeaderRow: 1}, cfg.Inventory)
	assert.Equal(t, "exact", cfg.MatchMode)
	assert.Equal(t, "abc123", cfg.Sheets.SpreadsheetID)

	// untouched keys keep their defaults
	assert.Equal(t, "*.xlsx", cfg.InventoryGlob)
	assert.Equal(t, "ORDERS", cfg.Sheets.SheetName)
	assert.Equal(t, "last-write", cfg.ConflictPolicy)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "lot_size: 10000\nconflict_policy: last-write\n")
	t.Setenv("SCACMATCH_LOT_SIZE", "25000")
	t.Setenv("SCACMATCH_CONFLICT_POLICY", "error")
	t.Setenv("SCACMATCH_MANIFEST_HEADER_ROW", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), cfg.LotSize)
	assert.Equal(t, "error", cfg.ConflictPolicy)
	assert.Equal(t, 2, cfg.Manifest.HeaderRow)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad match mode", "match_mode: fuzzy\n", "MatchMode"},
		{"zero lot size", "lot_size: 0\n", "LotSize"},
		{"header row", "inventory:\n  header_row: 0\n", "HeaderRow"},
		{"log level", "logging:\n  level: chatty\n", "Level"},
		{"malformed yaml", "lot_size: [\n", "failed to parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn", Encoding: "json"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	logger, err = NewLogger(LoggingConfig{Level: "warn", Encoding: "console"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = NewLogger(LoggingConfig{Level: "chatty"}, false)
	assert.Error(t, err)
}
