package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/application/services"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/tabular"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/xlsx"
)

// Export file names written into the output folder
const (
	AnnotatedFile     = "annotated.csv"
	SCACSubsetFile    = "po_inv_scac.csv"
	AnnotatedWorkbook = "annotated.xlsx"
)

func newExportCommand(app *App) *cobra.Command {
	var (
		sqlitePath string
		workbook   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the annotated table and the PO/item/SCAC subset to the output folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.annotated(cmd.Context(), nil)
			if err != nil {
				return err
			}
			rows, err := ds.Inventory.GetAllRows()
			if err != nil {
				return err
			}

			dir := app.cfg.OutputDir
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			written := []string{filepath.Join(dir, AnnotatedFile), filepath.Join(dir, SCACSubsetFile)}
			if err := csv.WriteFile(written[0], rows, csv.WriteAnnotated); err != nil {
				return err
			}
			if err := csv.WriteFile(written[1], rows, csv.WriteSCACSubset); err != nil {
				return err
			}

			if workbook {
				records := [][]string{tabular.AnnotatedHeader}
				for _, row := range rows {
					records = append(records, tabular.AnnotatedRecord(row))
				}
				path := filepath.Join(dir, AnnotatedWorkbook)
				if err := xlsx.WriteSheet(path, "Annotated", records); err != nil {
					return err
				}
				written = append(written, path)
			}

			if sqlitePath != "" {
				if err := saveSnapshot(cmd, sqlitePath, ds); err != nil {
					return err
				}
				written = append(written, sqlitePath)
			}

			app.logger.Info("export complete", zap.Strings("files", written))
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also append a snapshot of this run to a SQLite database")
	cmd.Flags().BoolVar(&workbook, "xlsx", false, "Also write the annotated table as "+AnnotatedWorkbook)
	return cmd
}

func saveSnapshot(cmd *cobra.Command, path string, ds *services.Dataset) error {
	store, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := ds.Inventory.GetAllRows()
	if err != nil {
		return err
	}
	carriers, err := ds.Carriers.GetAllCarriers()
	if err != nil {
		return err
	}

	return store.Save(cmd.Context(), sqlite.Snapshot{
		Run: sqlite.Run{
			RunID:         ds.Annotation.RunID,
			InventoryFile: ds.InventoryFile,
			ManifestFile:  ds.ManifestFile,
			TotalRows:     ds.Annotation.TotalRows,
			MatchedRows:   ds.Annotation.MatchedRows,
		},
		Inventory: rows,
		Carriers:  carriers,
	})
}
