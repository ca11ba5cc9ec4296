package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteSheet writes records to a new single-sheet workbook, one record per row
func WriteSheet(filename, sheet string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	} else {
		sheet = "Sheet1"
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(record))
		for j, v := range record {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", filename, err)
	}
	return nil
}
