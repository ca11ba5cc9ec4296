package tabular

import (
	"github.com/vsinha/scacmatch/pkg/domain/entities"
)

// AnnotatedHeader is the header of the full annotated table export
var AnnotatedHeader = []string{
	"Item", "Item Description", "PO", "Lot #", "Container#", "Subinventory", "Inv Org",
	"Qty_available", "Total Unit Cost", "Total Costs", "Carrier", "SCAC", "Expiration Date", "PPM",
}

// SCACSubsetHeader is the header of the PO/inventory/SCAC export
var SCACSubsetHeader = []string{"PO", "Item", "Lot #", "Container#", "SCAC"}

// AnnotatedRecord renders a row in AnnotatedHeader order
func AnnotatedRecord(row *entities.InventoryRow) []string {
	expiration := ""
	if row.HasExpiration() {
		expiration = row.ExpirationDate.Format("2006-01-02")
	}

	return []string{
		string(row.Item),
		row.ItemDescription,
		string(row.PO),
		row.LotNumber,
		row.ContainerNumber,
		row.Subinventory,
		row.InvOrg,
		row.QtyAvailable.String(),
		row.UnitCost.String(),
		row.TotalCost.StringFixed(2),
		row.CarrierAssigned,
		row.SCAC.String(),
		expiration,
		row.PPM,
	}
}

// SCACSubsetRecords renders rows that carry a SCAC in SCACSubsetHeader order
func SCACSubsetRecords(rows []*entities.InventoryRow) [][]string {
	var records [][]string
	for _, row := range rows {
		if !row.SCAC.IsSet() {
			continue
		}
		records = append(records, []string{
			string(row.PO), string(row.Item), row.LotNumber, row.ContainerNumber, row.SCAC.String(),
		})
	}
	return records
}
