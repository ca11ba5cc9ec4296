package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/scacmatch/pkg/infrastructure/gsheets"
)

func newUploadCommand(app *App) *cobra.Command {
	var (
		sheet         string
		row           int
		spreadsheetID string
		credentials   string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload the annotated table to a Google Sheet",
		Long: `Writes the annotated table header and rows to the named sheet starting at
column A of the given row. The spreadsheet and service account credentials
come from the sheets section of the config unless overridden by flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := gsheets.Target{
				SpreadsheetID: app.cfg.Sheets.SpreadsheetID,
				SheetName:     app.cfg.Sheets.SheetName,
				StartRow:      app.cfg.Sheets.StartRow,
			}
			if spreadsheetID != "" {
				target.SpreadsheetID = spreadsheetID
			}
			if sheet != "" {
				target.SheetName = sheet
			}
			if row > 0 {
				target.StartRow = row
			}
			if credentials == "" {
				credentials = app.cfg.Sheets.CredentialsFile
			}

			ds, err := app.annotated(cmd.Context(), nil)
			if err != nil {
				return err
			}
			rows, err := ds.Inventory.GetAllRows()
			if err != nil {
				return err
			}

			updater, err := app.newUpdater(cmd.Context(), credentials)
			if err != nil {
				return err
			}
			cells, err := gsheets.NewUploader(updater, app.logger).Upload(cmd.Context(), target, rows)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d rows (%d cells) to %s\n", len(rows), cells, target.Range())
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name (default from config)")
	cmd.Flags().IntVar(&row, "row", 0, "First row to write (default from config)")
	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet", "", "Spreadsheet ID (default from config)")
	cmd.Flags().StringVar(&credentials, "credentials", "", "Service account credentials file (default from config)")
	return cmd
}
