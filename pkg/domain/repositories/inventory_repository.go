package repositories

import "github.com/vsinha/scacmatch/pkg/domain/entities"

// InventoryRepository provides access to the loaded inventory report
type InventoryRepository interface {
	LoadRows(rows []*entities.InventoryRow) error
	GetAllRows() ([]*entities.InventoryRow, error)
	GetRow(position int) (*entities.InventoryRow, error)
	// ContainerPositions returns the positions of rows whose container number
	// satisfies match. Only the container-number field is offered to match.
	ContainerPositions(match func(containerNumber string) bool) ([]int, error)
	SetSCAC(position int, scac entities.SCAC) error
	Count() int
}
