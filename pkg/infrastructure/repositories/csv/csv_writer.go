package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/tabular"
)

// WriteAnnotated writes the full annotated inventory table
func WriteAnnotated(w io.Writer, rows []*entities.InventoryRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, tabular.AnnotatedHeader)
	for _, row := range rows {
		records = append(records, tabular.AnnotatedRecord(row))
	}
	return writeRecords(w, records)
}

// WriteSCACSubset writes PO, item, lot, container and SCAC for rows that were
// matched to a carrier
func WriteSCACSubset(w io.Writer, rows []*entities.InventoryRow) error {
	records := append([][]string{tabular.SCACSubsetHeader}, tabular.SCACSubsetRecords(rows)...)
	return writeRecords(w, records)
}

// WriteFile creates filename and streams the output of write into it
func WriteFile(filename string, rows []*entities.InventoryRow, write func(io.Writer, []*entities.InventoryRow) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}

	if err := write(file, rows); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return file.Close()
}

// WriteRecordsFile creates filename and writes raw records into it
func WriteRecordsFile(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}

	if err := writeRecords(file, records); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return file.Close()
}

func writeRecords(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
