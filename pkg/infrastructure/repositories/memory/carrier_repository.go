package memory

import (
	"fmt"
	"strings"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/domain/repositories"
)

// CarrierRepository provides in-memory storage for the carrier manifest
type CarrierRepository struct {
	carriers    []entities.CarrierRow
	byContainer map[string]int
}

// NewCarrierRepository creates a new in-memory carrier repository
func NewCarrierRepository(capacity int) *CarrierRepository {
	return &CarrierRepository{
		carriers:    make([]entities.CarrierRow, 0, capacity),
		byContainer: make(map[string]int, capacity),
	}
}

// Verify interface compliance
var _ repositories.CarrierRepository = (*CarrierRepository)(nil)

// LoadCarriers loads manifest rows, keeping only the first row per container
// number across all loads
func (r *CarrierRepository) LoadCarriers(rows []*entities.CarrierRow) error {
	for _, row := range rows {
		if row == nil {
			return fmt.Errorf("cannot load nil carrier row")
		}
		if _, exists := r.byContainer[row.ContainerNumber]; exists {
			continue
		}
		r.byContainer[row.ContainerNumber] = len(r.carriers)
		r.carriers = append(r.carriers, *row)
	}
	return nil
}

// GetAllCarriers returns the deduplicated manifest in load order
func (r *CarrierRepository) GetAllCarriers() ([]*entities.CarrierRow, error) {
	carriers := make([]*entities.CarrierRow, 0, len(r.carriers))
	for i := range r.carriers {
		carriers = append(carriers, &r.carriers[i])
	}
	return carriers, nil
}

// FindByContainer returns manifest rows whose container number contains fragment
func (r *CarrierRepository) FindByContainer(fragment string) ([]*entities.CarrierRow, error) {
	fragment = strings.ToUpper(strings.TrimSpace(fragment))
	if fragment == "" {
		return nil, fmt.Errorf("container fragment cannot be empty")
	}

	var matches []*entities.CarrierRow
	for i := range r.carriers {
		if strings.Contains(strings.ToUpper(r.carriers[i].ContainerNumber), fragment) {
			matches = append(matches, &r.carriers[i])
		}
	}
	return matches, nil
}
