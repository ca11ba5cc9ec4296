package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/scacmatch/pkg/scacmatch"
)

func main() {
	ctx := context.Background()

	expires := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	inventory := []*scacmatch.InventoryRow{
		{Item: "CHDM-001", ItemDescription: "CHDM 20FT ISO TANK", PO: "WEG002121", LotNumber: "L-100",
			ContainerNumber: "ZIMU1112223;", Subinventory: "Dock A", InvOrg: "W01",
			QtyAvailable: decimal.NewFromInt(20000), UnitCost: decimal.RequireFromString("1.25"),
			ExpirationDate: expires, PPM: "Amelia Greene"},
		{Item: "TEP", ItemDescription: "TEP ISO TANK", PO: "WEG002190",
			ContainerNumber: "ZIMU1112223;MSCU7654321;", Subinventory: "Not Booked", InvOrg: "W02",
			QtyAvailable: decimal.NewFromInt(40000), UnitCost: decimal.RequireFromString("0.50"),
			PPM: "Jason LoPipero"},
	}
	carriers := []*scacmatch.CarrierRow{
		{ContainerNumber: "ZIMU1112223", SCAC: "ZIMU", Vessel: "ZIM ROTTERDAM"},
		{ContainerNumber: "MSCU7654321", SCAC: "MSCU", Vessel: "MSC ANNA"},
	}

	engine, err := scacmatch.NewEngine(inventory, carriers)
	if err != nil {
		fmt.Printf("engine setup failed: %v\n", err)
		return
	}

	result, err := engine.Annotate(ctx)
	if err != nil {
		fmt.Printf("annotation failed: %v\n", err)
		return
	}

	fmt.Printf("Matched %d of %d rows, %d conflicts\n", result.MatchedRows, result.TotalRows, len(result.Conflicts))
	for _, row := range engine.Rows() {
		fmt.Printf("  %-10s %-28s %s\n", row.PO, row.ContainerNumber, row.SCAC)
	}

	pivot, err := engine.BookingPivot()
	if err != nil {
		fmt.Printf("booking pivot failed: %v\n", err)
		return
	}
	for _, q := range pivot.Booked {
		fmt.Printf("Booked     %-16s %s lots\n", q.PPM, q.Lots)
	}
	for _, q := range pivot.NotBooked {
		fmt.Printf("Not booked %-16s %s lots\n", q.PPM, q.Lots)
	}
}
