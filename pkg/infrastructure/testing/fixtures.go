package testing

import (
	"path/filepath"

	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/tabular"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/xlsx"
)

// Fixture file names written by WriteInputs
const (
	InventoryFixture = "inventory_report.xlsx"
	ManifestFixture  = "carrier_manifest.csv"
)

// InventoryRecords returns the inventory report of BuildShipmentTestData as it
// is exported: two title rows, then the header, then one record per lot.
func InventoryRecords() [][]string {
	return [][]string{
		{"Inventory Lot Report"},
		{"Run date: 2024-01-10"},
		tabular.InventoryColumns,
		{"CHDM-001", "CHDM 20FT ISO TANK", "WEG002121", "L-100", "ZIMU1112223;", "Dock A", "W01", "20,000", "1.25", "", "2024-01-09", "Amelia Greene"},
		{"CHDM-001", "CHDM 20FT ISO TANK", "WEG002121", "L-101", "ZIMU1112224;", "Dock B", "W01", "10", "$2.50", "", "2024-01-10", "Amelia Greene"},
		{"TEP", "TEP ISO TANK", "WEG002190", "", "ZIMU1112223;MSCU7654321;", "Not Booked", "W02", "40000", "0.50", "", "", "Jason LoPipero"},
		{},
		{"TEP", "TEP DRUMS", "WEG002190", "", "", "Warehouse", "W02", "100", "3", "", "12/01/2023", "Jason LoPipero"},
		{"DOTP-77", "DOTP FLEXI", "MEX003311", "L-7", "TGHU8000011;", "In Transit", "W03", "5", "10", "", "2025-06-01", "Amelia Greene"},
	}
}

// ManifestRecords returns the carrier manifest of BuildShipmentTestData with
// one duplicated container and one row missing its container number
func ManifestRecords() [][]string {
	return [][]string{
		tabular.ManifestColumns,
		{"ZIMU1112223", "ZIMU", "ZIM ROTTERDAM"},
		{"MSCU7654321", "MSCU", "MSC ANNA"},
		{"ZIMU1112224", "ZIMU", "ZIM ROTTERDAM"},
		{"ZIMU1112223", "OOLU", "DUPLICATE"},
		{"", "HLCU", "NO CONTAINER"},
		{"CMAU0000001", "CMDU", "CMA CGM TAGE"},
	}
}

// WriteInputs writes the inventory workbook and manifest CSV into dir and
// returns their paths
func WriteInputs(dir string) (inventoryFile, manifestFile string, err error) {
	inventoryFile = filepath.Join(dir, InventoryFixture)
	if err := xlsx.WriteSheet(inventoryFile, "Report", InventoryRecords()); err != nil {
		return "", "", err
	}

	manifestFile = filepath.Join(dir, ManifestFixture)
	if err := csv.WriteRecordsFile(manifestFile, ManifestRecords()); err != nil {
		return "", "", err
	}
	return inventoryFile, manifestFile, nil
}
