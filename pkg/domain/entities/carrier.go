package entities

import (
	"fmt"
	"strings"
)

// CarrierRow represents one line of the container/carrier manifest
type CarrierRow struct {
	ContainerNumber string `json:"container_number"`
	SCAC            SCAC   `json:"scac"`
	Vessel          string `json:"vessel,omitempty"`
}

// NewCarrierRow creates a validated CarrierRow
func NewCarrierRow(containerNumber string, scac SCAC, vessel string) (*CarrierRow, error) {
	containerNumber = strings.TrimSpace(containerNumber)
	if containerNumber == "" {
		return nil, fmt.Errorf("container number cannot be empty")
	}

	return &CarrierRow{
		ContainerNumber: containerNumber,
		SCAC:            SCAC(strings.TrimSpace(string(scac))),
		Vessel:          strings.TrimSpace(vessel),
	}, nil
}

// DeduplicateCarrierRows drops rows whose container number was already seen,
// keeping the first occurrence and the original order
func DeduplicateCarrierRows(rows []*CarrierRow) []*CarrierRow {
	seen := make(map[string]struct{}, len(rows))
	unique := make([]*CarrierRow, 0, len(rows))

	for _, row := range rows {
		if _, ok := seen[row.ContainerNumber]; ok {
			continue
		}
		seen[row.ContainerNumber] = struct{}{}
		unique = append(unique, row)
	}

	return unique
}
