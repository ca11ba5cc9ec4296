package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/application/dto"
	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/domain/repositories"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/memory"
)

// InputLoader reads the two exports a run starts from
type InputLoader interface {
	LoadInventory(ctx context.Context, filename string) ([]*entities.InventoryRow, error)
	LoadCarriers(ctx context.Context, filename string) ([]*entities.CarrierRow, error)
}

// Dataset is everything one run has loaded and derived. It is passed
// explicitly to every step that needs it.
type Dataset struct {
	InventoryFile string
	ManifestFile  string
	Inventory     repositories.InventoryRepository
	Carriers      repositories.CarrierRepository
	Annotation    *dto.AnnotationResult
}

// Pipeline runs load and annotation over a pair of input files
type Pipeline struct {
	loader  InputLoader
	matcher *MatcherService
	logger  *zap.Logger
}

// NewPipeline creates a new pipeline
func NewPipeline(loader InputLoader, matcher *MatcherService, logger *zap.Logger) *Pipeline {
	return &Pipeline{loader: loader, matcher: matcher, logger: logger}
}

// Load reads both inputs into fresh in-memory repositories
func (p *Pipeline) Load(ctx context.Context, inventoryFile, manifestFile string) (*Dataset, error) {
	inventoryRows, err := p.loader.LoadInventory(ctx, inventoryFile)
	if err != nil {
		return nil, fmt.Errorf("error loading inventory: %w", err)
	}

	carrierRows, err := p.loader.LoadCarriers(ctx, manifestFile)
	if err != nil {
		return nil, fmt.Errorf("error loading carrier manifest: %w", err)
	}

	inventoryRepo := memory.NewInventoryRepository(len(inventoryRows))
	if err := inventoryRepo.LoadRows(inventoryRows); err != nil {
		return nil, fmt.Errorf("failed to load inventory into repository: %w", err)
	}

	carrierRepo := memory.NewCarrierRepository(len(carrierRows))
	if err := carrierRepo.LoadCarriers(carrierRows); err != nil {
		return nil, fmt.Errorf("failed to load carriers into repository: %w", err)
	}

	p.logger.Info("inputs loaded",
		zap.String("inventory_file", inventoryFile),
		zap.String("manifest_file", manifestFile),
		zap.Int("inventory_rows", inventoryRepo.Count()),
		zap.Int("containers", len(carrierRows)),
	)

	return &Dataset{
		InventoryFile: inventoryFile,
		ManifestFile:  manifestFile,
		Inventory:     inventoryRepo,
		Carriers:      carrierRepo,
	}, nil
}

// Annotate runs the matcher over a loaded dataset and stores its result on it
func (p *Pipeline) Annotate(ctx context.Context, ds *Dataset) error {
	result, err := p.matcher.Annotate(ctx, ds.Inventory, ds.Carriers)
	if err != nil {
		return fmt.Errorf("error annotating inventory: %w", err)
	}
	ds.Annotation = result
	return nil
}

// Run loads both inputs and annotates them
func (p *Pipeline) Run(ctx context.Context, inventoryFile, manifestFile string) (*Dataset, error) {
	ds, err := p.Load(ctx, inventoryFile, manifestFile)
	if err != nil {
		return nil, err
	}
	if err := p.Annotate(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}
