// Package gsheets uploads the annotated inventory table to a Google Sheet.
package gsheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/tabular"
)

// ValuesUpdater writes a block of values into a spreadsheet range
type ValuesUpdater interface {
	Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) (int64, error)
}

// Target addresses where an upload starts
type Target struct {
	SpreadsheetID string
	SheetName     string
	StartRow      int
}

func (t Target) validate() error {
	if strings.TrimSpace(t.SpreadsheetID) == "" {
		return fmt.Errorf("spreadsheet id cannot be empty")
	}
	if strings.TrimSpace(t.SheetName) == "" {
		return fmt.Errorf("sheet name cannot be empty")
	}
	if t.StartRow < 1 {
		return fmt.Errorf("start row must be 1 or greater, got %d", t.StartRow)
	}
	return nil
}

// Range returns the A1 range the upload begins at
func (t Target) Range() string {
	return fmt.Sprintf("%s!A%d", t.SheetName, t.StartRow)
}

// Uploader writes the annotated table, header first, to a sheet
type Uploader struct {
	values ValuesUpdater
	logger *zap.Logger
}

// NewUploader creates an uploader over any ValuesUpdater
func NewUploader(values ValuesUpdater, logger *zap.Logger) *Uploader {
	return &Uploader{values: values, logger: logger}
}

// Upload writes the header and one row per inventory line starting at the
// target row and returns the number of cells updated
func (u *Uploader) Upload(ctx context.Context, target Target, rows []*entities.InventoryRow) (int64, error) {
	if err := target.validate(); err != nil {
		return 0, err
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toValues(tabular.AnnotatedHeader))
	for _, row := range rows {
		values = append(values, toValues(tabular.AnnotatedRecord(row)))
	}

	updated, err := u.values.Update(ctx, target.SpreadsheetID, target.Range(), values)
	if err != nil {
		return 0, fmt.Errorf("failed to upload to %s: %w", target.Range(), err)
	}

	u.logger.Info("inventory uploaded",
		zap.String("spreadsheet_id", target.SpreadsheetID),
		zap.String("range", target.Range()),
		zap.Int("rows", len(rows)),
		zap.Int64("cells", updated),
	)
	return updated, nil
}

func toValues(record []string) []interface{} {
	out := make([]interface{}, len(record))
	for i, v := range record {
		out[i] = v
	}
	return out
}

// SheetsClient is the ValuesUpdater backed by the Google Sheets API
type SheetsClient struct {
	service *sheets.Service
}

// NewSheetsClient authenticates with a service account credentials file
func NewSheetsClient(ctx context.Context, credentialsFile string) (*SheetsClient, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("credentials file cannot be empty")
	}
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsClient{service: service}, nil
}

// Update writes values with RAW input so cells are stored exactly as given
func (c *SheetsClient) Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) (int64, error) {
	resp, err := c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		writeRange,
		&sheets.ValueRange{Values: values},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	return resp.UpdatedCells, nil
}
