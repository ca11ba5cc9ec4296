package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/tabular"
)

// DefaultEncoding is the encoding legacy manifest exports are written in
const DefaultEncoding = "windows-1252"

// Config holds the encoding and header layout of CSV exports
type Config struct {
	Encoding           string
	InventoryHeaderRow int
	ManifestHeaderRow  int
}

// Loader handles loading inventory and manifest data from CSV exports
type Loader struct {
	config Config
	logger *zap.Logger
}

// NewLoader creates a new CSV loader
func NewLoader(config Config, logger *zap.Logger) *Loader {
	if config.Encoding == "" {
		config.Encoding = DefaultEncoding
	}
	if config.InventoryHeaderRow == 0 {
		config.InventoryHeaderRow = 1
	}
	if config.ManifestHeaderRow == 0 {
		config.ManifestHeaderRow = 1
	}
	return &Loader{config: config, logger: logger}
}

// LoadInventory loads inventory rows from a CSV file
func (l *Loader) LoadInventory(ctx context.Context, filename string) ([]*entities.InventoryRow, error) {
	records, err := l.readAll(ctx, filename)
	if err != nil {
		return nil, err
	}

	rows, err := tabular.ParseInventory(records, l.config.InventoryHeaderRow, filename, l.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inventory CSV: %w", err)
	}
	return rows, nil
}

// LoadCarriers loads the deduplicated carrier manifest from a CSV file
func (l *Loader) LoadCarriers(ctx context.Context, filename string) ([]*entities.CarrierRow, error) {
	records, err := l.readAll(ctx, filename)
	if err != nil {
		return nil, err
	}

	rows, err := tabular.ParseCarriers(records, l.config.ManifestHeaderRow, filename, l.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest CSV: %w", err)
	}

	l.logger.Info("manifest CSV loaded", zap.String("file", filename), zap.Int("containers", len(rows)))
	return rows, nil
}

func (l *Loader) readAll(ctx context.Context, filename string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enc, err := htmlindex.Get(l.config.Encoding)
	if err != nil {
		return nil, fmt.Errorf("unknown CSV encoding %q: %w", l.config.Encoding, err)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(transform.NewReader(file, enc.NewDecoder()))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", filename, err)
	}
	return records, nil
}
