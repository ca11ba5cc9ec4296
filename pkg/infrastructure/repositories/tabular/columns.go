// Package tabular maps spreadsheet records onto inventory and carrier
// entities. It is shared by the xlsx and csv loaders and by the exporters.
package tabular

import (
	"fmt"
	"strings"

	"github.com/vsinha/scacmatch/pkg/domain/repositories"
)

// Inventory report headers, verbatim as exported
const (
	ColItem            = "Item"
	ColItemDescription = "Item Description"
	ColPO              = "PO-L-S"
	ColLot             = "Lot #"
	ColContainer       = "Container#"
	ColSubinventory    = "Subinventory"
	ColInvOrg          = "Inv Org"
	ColQtyAvailable    = "Quantity Available (including Soft Reserved)"
	ColUnitCost        = "Total Unit Cost"
	ColCarrierAssigned = "Carrier(s) Assigned"
	ColExpiration      = "Expiration Date"
	ColPPM             = "Primary Product Manager"
)

// Carrier manifest headers, verbatim as exported
const (
	ColManifestContainer = "Container Number"
	ColManifestSCAC      = "Carrier SCAC"
	ColManifestVessel    = "Vessel Name"
)

// InventoryColumns lists the headers the inventory report must carry
var InventoryColumns = []string{
	ColItem, ColItemDescription, ColPO, ColLot, ColContainer, ColSubinventory,
	ColInvOrg, ColQtyAvailable, ColUnitCost, ColCarrierAssigned, ColExpiration, ColPPM,
}

// ManifestColumns lists the headers the carrier manifest must carry
var ManifestColumns = []string{ColManifestContainer, ColManifestSCAC, ColManifestVessel}

// Header maps a header name to its column index
type Header map[string]int

// NewHeader builds a Header from a header row. The first occurrence of a
// duplicated name wins.
func NewHeader(cells []string) Header {
	header := make(Header, len(cells))
	for i, cell := range cells {
		name := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		if name == "" {
			continue
		}
		if _, exists := header[name]; !exists {
			header[name] = i
		}
	}
	return header
}

// Require checks that every named column is present
func (h Header) Require(source string, names ...string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return fmt.Errorf("%w: %q in %s", repositories.ErrMissingColumn, name, source)
		}
	}
	return nil
}

// Value returns the trimmed cell for a column, or "" when the record is short
func (h Header) Value(record []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
