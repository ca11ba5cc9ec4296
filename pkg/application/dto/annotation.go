package dto

import (
	"github.com/vsinha/scacmatch/pkg/domain/entities"
)

// SCACGroup collects every container and inventory position matched to one
// carrier code
type SCACGroup struct {
	SCAC             entities.SCAC `json:"scac"`
	ContainerNumbers []string      `json:"container_numbers"`
	Positions        []int         `json:"positions"`
}

// Conflict records an inventory position claimed by two carrier codes
type Conflict struct {
	Position int           `json:"position"`
	Previous entities.SCAC `json:"previous"`
	Winner   entities.SCAC `json:"winner"`
}

// AnnotationResult summarises one matcher run
type AnnotationResult struct {
	RunID             string                `json:"run_id"`
	TotalRows         int                   `json:"total_rows"`
	MatchedRows       int                   `json:"matched_rows"`
	UnmatchedRows     int                   `json:"unmatched_rows"`
	Groups            []SCACGroup           `json:"groups"`
	UnmatchedCarriers []entities.CarrierRow `json:"unmatched_carriers"`
	Conflicts         []Conflict            `json:"conflicts"`
}
