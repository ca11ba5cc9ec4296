// Package scacmatch is the library entry point for annotating an inventory
// report with carrier SCAC codes without going through the command line.
package scacmatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/application/dto"
	"github.com/vsinha/scacmatch/pkg/application/services"
	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/memory"
)

// Re-exported so callers need only this package
type (
	InventoryRow = entities.InventoryRow
	CarrierRow   = entities.CarrierRow
	SCAC         = entities.SCAC
)

// UnsetSCAC marks rows no manifest container was matched to
const UnsetSCAC = entities.UnsetSCAC

// EngineConfig holds matching and reporting options
type EngineConfig struct {
	Mode      services.MatchMode
	Conflicts services.ConflictPolicy
	LotSize   int64
	Logger    *zap.Logger
}

// Engine annotates an in-memory inventory and derives reports from it
type Engine struct {
	inventoryRepo *memory.InventoryRepository
	carrierRepo   *memory.CarrierRepository
	matcher       *services.MatcherService
	reports       *services.ReportService
	annotation    *dto.AnnotationResult
}

// NewEngine creates an engine with substring matching, last-write conflicts
// and the default lot size
func NewEngine(inventory []*InventoryRow, carriers []*CarrierRow) (*Engine, error) {
	return NewEngineWithConfig(inventory, carriers, EngineConfig{})
}

// NewEngineWithConfig creates an engine with custom configuration. Inventory
// rows are copied and normalized; the caller's slice is not modified.
func NewEngineWithConfig(inventory []*InventoryRow, carriers []*CarrierRow, config EngineConfig) (*Engine, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	normalized := make([]*InventoryRow, 0, len(inventory))
	for _, row := range inventory {
		if row == nil {
			return nil, fmt.Errorf("inventory cannot contain nil rows")
		}
		copied := *row
		copied.Normalize()
		normalized = append(normalized, &copied)
	}

	inventoryRepo := memory.NewInventoryRepository(len(normalized))
	if err := inventoryRepo.LoadRows(normalized); err != nil {
		return nil, err
	}
	carrierRepo := memory.NewCarrierRepository(len(carriers))
	if err := carrierRepo.LoadCarriers(carriers); err != nil {
		return nil, err
	}

	return &Engine{
		inventoryRepo: inventoryRepo,
		carrierRepo:   carrierRepo,
		matcher:       services.NewMatcherService(services.MatcherConfig{Mode: config.Mode, Conflicts: config.Conflicts}, nil, logger),
		reports:       services.NewReportService(config.LotSize),
	}, nil
}

// Annotate writes the SCAC of every matched container into the inventory.
// Calling it again returns the first result.
func (e *Engine) Annotate(ctx context.Context) (*dto.AnnotationResult, error) {
	if e.annotation != nil {
		return e.annotation, nil
	}
	result, err := e.matcher.Annotate(ctx, e.inventoryRepo, e.carrierRepo)
	if err != nil {
		return nil, err
	}
	e.annotation = result
	return result, nil
}

// Rows returns the inventory in load order
func (e *Engine) Rows() []*InventoryRow {
	rows, _ := e.inventoryRepo.GetAllRows()
	return rows
}

// Lookup returns rows for a PO or item token, see services.ClassifyToken
func (e *Engine) Lookup(token, warehouse string) (*dto.LookupResult, error) {
	return e.reports.Lookup(e.inventoryRepo, token, warehouse)
}

// ExpiringLots returns lots that expired before today
func (e *Engine) ExpiringLots(today time.Time) (*dto.ExpiringReport, error) {
	return e.reports.ExpiringLots(e.inventoryRepo, today)
}

// CostRollup totals, across all product managers, each item held by pm
func (e *Engine) CostRollup(pm string) (*dto.CostRollup, error) {
	return e.reports.CostRollup(e.inventoryRepo, pm)
}

// BookingPivot counts booked and not booked ISO lots per product manager
func (e *Engine) BookingPivot() (*dto.BookingPivot, error) {
	return e.reports.BookingPivot(e.inventoryRepo)
}
