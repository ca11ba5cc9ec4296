package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/memory"
)

// Row builds an inventory row with derived fields filled in
func Row(item, description, po, lot, container, subinventory, invOrg string, qty, unitCost string, expiration time.Time, ppm string) *entities.InventoryRow {
	row := &entities.InventoryRow{
		Item:            entities.ItemCode(item),
		ItemDescription: description,
		PO:              entities.POCode(po),
		LotNumber:       lot,
		ContainerNumber: container,
		Subinventory:    subinventory,
		InvOrg:          invOrg,
		QtyAvailable:    decimal.RequireFromString(qty),
		UnitCost:        decimal.RequireFromString(unitCost),
		ExpirationDate:  expiration,
		PPM:             ppm,
	}
	row.Normalize()
	return row
}

// Day returns midnight UTC of a calendar date
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// BuildShipmentTestData builds a small inventory report and manifest.
//
// Positions 0-1 sit in ZIMU containers, position 2 lists a ZIMU and an MSCU
// container in one cell, position 3 has no container and position 4 is in a
// container the manifest does not know.
func BuildShipmentTestData() (*memory.InventoryRepository, *memory.CarrierRepository) {
	rows := []*entities.InventoryRow{
		Row("CHDM-001", "CHDM 20FT ISO TANK", "WEG002121", "L-100", "ZIMU1112223;", "Dock A", "W01", "20000", "1.25", Day(2024, 1, 9), "Amelia Greene"),
		Row("CHDM-001", "CHDM 20FT ISO TANK", "WEG002121", "L-101", "ZIMU1112224;", "Dock B", "W01", "10", "2.50", Day(2024, 1, 10), "Amelia Greene"),
		Row("TEP", "TEP ISO TANK", "WEG002190", "", "ZIMU1112223;MSCU7654321;", "Not Booked", "W02", "40000", "0.50", time.Time{}, "Jason LoPipero"),
		Row("TEP", "TEP DRUMS", "WEG002190", "", "", "Warehouse", "W02", "100", "3", Day(2023, 12, 1), "Jason LoPipero"),
		Row("DOTP-77", "DOTP FLEXI", "MEX003311", "L-7", "TGHU8000011;", "In Transit", "W03", "5", "10", Day(2025, 6, 1), "Amelia Greene"),
	}

	carriers := []*entities.CarrierRow{
		{ContainerNumber: "ZIMU1112223", SCAC: "ZIMU", Vessel: "ZIM ROTTERDAM"},
		{ContainerNumber: "MSCU7654321", SCAC: "MSCU", Vessel: "MSC ANNA"},
		{ContainerNumber: "ZIMU1112224", SCAC: "ZIMU", Vessel: "ZIM ROTTERDAM"},
		{ContainerNumber: "CMAU0000001", SCAC: "CMDU", Vessel: "CMA CGM TAGE"},
	}

	inventoryRepo := memory.NewInventoryRepository(len(rows))
	_ = inventoryRepo.LoadRows(rows)

	carrierRepo := memory.NewCarrierRepository(len(carriers))
	_ = carrierRepo.LoadCarriers(carriers)

	return inventoryRepo, carrierRepo
}
