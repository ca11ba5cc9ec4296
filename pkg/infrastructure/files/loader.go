package files

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/domain/repositories"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/xlsx"
)

// Loader dispatches to the workbook or CSV loader by file extension
type Loader struct {
	workbooks *xlsx.Loader
	csvFiles  *csv.Loader
}

// NewLoader creates a loader over both formats
func NewLoader(workbooks *xlsx.Loader, csvFiles *csv.Loader) *Loader {
	return &Loader{workbooks: workbooks, csvFiles: csvFiles}
}

// LoadInventory loads the inventory report from a .xlsx, .xlsm or .csv file
func (l *Loader) LoadInventory(ctx context.Context, filename string) ([]*entities.InventoryRow, error) {
	switch ext := extension(filename); ext {
	case ".xlsx", ".xlsm":
		return l.workbooks.LoadInventory(ctx, filename)
	case ".csv":
		return l.csvFiles.LoadInventory(ctx, filename)
	default:
		return nil, unsupported(filename, ext)
	}
}

// LoadCarriers loads the carrier manifest from a .xlsx, .xlsm or .csv file
func (l *Loader) LoadCarriers(ctx context.Context, filename string) ([]*entities.CarrierRow, error) {
	switch ext := extension(filename); ext {
	case ".xlsx", ".xlsm":
		return l.workbooks.LoadCarriers(ctx, filename)
	case ".csv":
		return l.csvFiles.LoadCarriers(ctx, filename)
	default:
		return nil, unsupported(filename, ext)
	}
}

func extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func unsupported(filename, ext string) error {
	if ext == ".xls" {
		return fmt.Errorf("%w: %s is a legacy .xls workbook, re-save it as .xlsx or .csv",
			repositories.ErrUnsupportedFormat, filename)
	}
	return fmt.Errorf("%w: %s", repositories.ErrUnsupportedFormat, filename)
}
