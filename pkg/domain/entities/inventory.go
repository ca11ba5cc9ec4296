package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// containerSeparators are stray characters the inventory report leaves at the
// end of the Container# cell when it lists several containers.
const containerSeparators = ";,/."

// InventoryRow represents one inventory lot line of the inventory report
type InventoryRow struct {
	Position        int             `json:"position"`
	Item            ItemCode        `json:"item"`
	ItemDescription string          `json:"item_description"`
	PO              POCode          `json:"po"`
	LotNumber       string          `json:"lot_number,omitempty"`
	ContainerNumber string          `json:"container_number"`
	Subinventory    string          `json:"subinventory"`
	InvOrg          string          `json:"inv_org"`
	QtyAvailable    decimal.Decimal `json:"qty_available"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	CarrierAssigned string          `json:"carrier_assigned,omitempty"`
	SCAC            SCAC            `json:"scac"`
	ExpirationDate  time.Time       `json:"expiration_date,omitempty"`
	PPM             string          `json:"ppm"`
}

// NewInventoryRow creates a normalized InventoryRow with derived fields filled in
func NewInventoryRow(position int, item ItemCode, container string, qty, unitCost decimal.Decimal) (*InventoryRow, error) {
	if position < 0 {
		return nil, fmt.Errorf("position cannot be negative, got %d", position)
	}

	row := &InventoryRow{
		Position:        position,
		Item:            item,
		ContainerNumber: container,
		QtyAvailable:    qty,
		UnitCost:        unitCost,
	}
	row.Normalize()
	return row, nil
}

// Normalize cleans the container number, derives TotalCost and resets SCAC
// to UnsetSCAC
func (r *InventoryRow) Normalize() {
	r.ContainerNumber = NormalizeContainerNumber(r.ContainerNumber)
	r.TotalCost = r.QtyAvailable.Mul(r.UnitCost)
	r.SCAC = UnsetSCAC
}

// MarshalJSON leaves out expiration_date when the row carries no date
func (r InventoryRow) MarshalJSON() ([]byte, error) {
	type plain InventoryRow
	out := struct {
		plain
		ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	}{plain: plain(r)}
	if r.HasExpiration() {
		out.ExpirationDate = &r.ExpirationDate
	}
	return json.Marshal(out)
}

// HasLot reports whether the row carries a lot number
func (r *InventoryRow) HasLot() bool {
	return strings.TrimSpace(r.LotNumber) != ""
}

// HasExpiration reports whether the row carries an expiration date
func (r *InventoryRow) HasExpiration() bool {
	return !r.ExpirationDate.IsZero()
}

// ExpiresBefore reports whether the lot expired strictly before the given day.
// Only the calendar date of both values is compared.
func (r *InventoryRow) ExpiresBefore(day time.Time) bool {
	if !r.HasExpiration() {
		return false
	}
	return truncateToDate(r.ExpirationDate).Before(truncateToDate(day))
}

// NormalizeContainerNumber trims whitespace, removes interior spaces and drops
// one trailing separator character
func NormalizeContainerNumber(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	if s != "" && strings.ContainsRune(containerSeparators, rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	return s
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
