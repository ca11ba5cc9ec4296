package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
)

// LookupKind tells which column a lookup token was matched against
type LookupKind int

const (
	LookupByItem LookupKind = iota
	LookupByPO
)

// String method for LookupKind enum
func (k LookupKind) String() string {
	switch k {
	case LookupByItem:
		return "Item"
	case LookupByPO:
		return "PO"
	default:
		return "Unknown"
	}
}

// MarshalText renders the kind by name in JSON output
func (k LookupKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// LookupResult contains rows matching a PO or item token
type LookupResult struct {
	Token     string                   `json:"token"`
	Warehouse string                   `json:"warehouse,omitempty"`
	Kind      LookupKind               `json:"kind"`
	Rows      []*entities.InventoryRow `json:"rows"`
}

// ExpiringReport lists lots that expired before Today
type ExpiringReport struct {
	Today time.Time                `json:"today"`
	Rows  []*entities.InventoryRow `json:"rows"`
}

// ItemCost is the inventory value of one item
type ItemCost struct {
	Item  entities.ItemCode `json:"item"`
	Total decimal.Decimal   `json:"total"`
}

// CostRollup is the inventory value of one product manager's items
type CostRollup struct {
	PPM   string          `json:"ppm"`
	Items []ItemCost      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// PPMQuantity is a quantity expressed in container lots for one product manager
type PPMQuantity struct {
	PPM  string          `json:"ppm"`
	Lots decimal.Decimal `json:"lots"`
}

// BookingPivot splits ISO container stock into booked and not booked
type BookingPivot struct {
	LotSize   decimal.Decimal `json:"lot_size"`
	Booked    []PPMQuantity   `json:"booked"`
	NotBooked []PPMQuantity   `json:"not_booked"`
}

// CarrierLookup lists manifest rows whose container number contains Fragment
type CarrierLookup struct {
	Fragment string                 `json:"fragment"`
	Carriers []*entities.CarrierRow `json:"carriers"`
}
