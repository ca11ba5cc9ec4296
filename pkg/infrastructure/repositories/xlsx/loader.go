package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/tabular"
)

// Config selects the sheet and header row of each workbook. An empty sheet
// name means the first sheet.
type Config struct {
	InventorySheet     string
	InventoryHeaderRow int
	ManifestSheet      string
	ManifestHeaderRow  int
}

// DefaultConfig matches the layout of the inventory report export, which
// carries two title rows above its header
func DefaultConfig() Config {
	return Config{
		InventoryHeaderRow: 3,
		ManifestHeaderRow:  1,
	}
}

// Loader reads inventory reports and carrier manifests from .xlsx workbooks
type Loader struct {
	config Config
	logger *zap.Logger
}

// NewLoader creates a new workbook loader
func NewLoader(config Config, logger *zap.Logger) *Loader {
	return &Loader{config: config, logger: logger}
}

// LoadInventory loads inventory rows from a workbook
func (l *Loader) LoadInventory(ctx context.Context, filename string) ([]*entities.InventoryRow, error) {
	records, err := l.readRows(ctx, filename, l.config.InventorySheet)
	if err != nil {
		return nil, err
	}

	rows, err := tabular.ParseInventory(records, l.config.InventoryHeaderRow, filename, l.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inventory workbook: %w", err)
	}

	l.logger.Info("inventory workbook loaded", zap.String("file", filename), zap.Int("rows", len(rows)))
	return rows, nil
}

// LoadCarriers loads the deduplicated carrier manifest from a workbook
func (l *Loader) LoadCarriers(ctx context.Context, filename string) ([]*entities.CarrierRow, error) {
	records, err := l.readRows(ctx, filename, l.config.ManifestSheet)
	if err != nil {
		return nil, err
	}

	rows, err := tabular.ParseCarriers(records, l.config.ManifestHeaderRow, filename, l.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest workbook: %w", err)
	}

	l.logger.Info("manifest workbook loaded", zap.String("file", filename), zap.Int("containers", len(rows)))
	return rows, nil
}

func (l *Loader) readRows(ctx context.Context, filename, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", filename)
		}
		sheet = sheets[0]
	}

	// Raw values keep dates as serial numbers instead of locale formatted text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, filename, err)
	}

	l.logger.Debug("sheet read", zap.String("file", filename), zap.String("sheet", sheet), zap.Int("records", len(rows)))
	return rows, nil
}
