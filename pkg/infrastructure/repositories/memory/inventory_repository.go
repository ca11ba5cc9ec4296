package memory

import (
	"fmt"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/domain/repositories"
)

// InventoryRepository provides in-memory storage for the inventory report
type InventoryRepository struct {
	rows []entities.InventoryRow
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository(capacity int) *InventoryRepository {
	return &InventoryRepository{
		rows: make([]entities.InventoryRow, 0, capacity),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadRows loads inventory rows into the repository. Positions are reassigned
// to match load order.
func (r *InventoryRepository) LoadRows(rows []*entities.InventoryRow) error {
	for _, row := range rows {
		if row == nil {
			return fmt.Errorf("cannot load nil inventory row")
		}
		stored := *row
		stored.Position = len(r.rows)
		r.rows = append(r.rows, stored)
	}
	return nil
}

// GetAllRows returns all rows in load order
func (r *InventoryRepository) GetAllRows() ([]*entities.InventoryRow, error) {
	rows := make([]*entities.InventoryRow, 0, len(r.rows))
	for i := range r.rows {
		rows = append(rows, &r.rows[i])
	}
	return rows, nil
}

// GetRow returns the row at a position
func (r *InventoryRepository) GetRow(position int) (*entities.InventoryRow, error) {
	if position < 0 || position >= len(r.rows) {
		return nil, fmt.Errorf("%w: position %d", repositories.ErrRowNotFound, position)
	}
	return &r.rows[position], nil
}

// ContainerPositions returns the positions of rows whose container number
// satisfies match, in ascending order
func (r *InventoryRepository) ContainerPositions(match func(containerNumber string) bool) ([]int, error) {
	var positions []int
	for i := range r.rows {
		if match(r.rows[i].ContainerNumber) {
			positions = append(positions, i)
		}
	}
	return positions, nil
}

// SetSCAC assigns a carrier code to the row at a position
func (r *InventoryRepository) SetSCAC(position int, scac entities.SCAC) error {
	row, err := r.GetRow(position)
	if err != nil {
		return err
	}
	row.SCAC = scac
	return nil
}

// Count returns the number of loaded rows
func (r *InventoryRepository) Count() int {
	return len(r.rows)
}
