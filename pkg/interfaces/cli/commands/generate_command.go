package commands

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/tabular"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/xlsx"
)

// Generated file names
const (
	GeneratedInventory = "inventory_report.xlsx"
	GeneratedManifest  = "carrier_manifest.csv"
)

var (
	generatedSCACs    = []string{"ZIMU", "MSCU", "MAEU", "CMDU", "HLCU", "OOLU"}
	generatedPPMs     = []string{"Amelia Greene", "Jason LoPipero", "Priya Raman", "Tomas Ortega"}
	generatedProducts = []string{"CHDM", "TEP", "DOTP", "EMN", "TXIB"}
	generatedPacking  = []string{"20FT ISO TANK", "DRUMS", "FLEXI", "IBC TOTES"}
	generatedSubinv   = []string{"Dock A", "Dock B", "In Transit", "Not Booked", "Warehouse"}
)

// generatedStart is the run date of generated reports and the earliest
// generated expiration date
var generatedStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Rows       int    // Inventory rows to generate
	Containers int    // Manifest containers to generate
	Unknown    int    // Percentage of inventory containers missing from the manifest
	OutputDir  string // Output directory for generated files
	Seed       int64  // Random seed for reproducible generation
}

// GenerateCommand writes a synthetic inventory report and carrier manifest
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Execute runs the generate command and returns the written file paths
func (g *GenerateCommand) Execute(ctx context.Context) ([]string, error) {
	if g.config.Rows < 1 || g.config.Containers < 1 {
		return nil, fmt.Errorf("rows and containers must be positive, got %d and %d", g.config.Rows, g.config.Containers)
	}
	if g.config.Unknown < 0 || g.config.Unknown > 100 {
		return nil, fmt.Errorf("unknown percentage must be between 0 and 100, got %d", g.config.Unknown)
	}
	if err := os.MkdirAll(g.config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := g.generateManifest()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inventory := g.generateInventory(manifest)

	inventoryPath := filepath.Join(g.config.OutputDir, GeneratedInventory)
	if err := xlsx.WriteSheet(inventoryPath, "Report", inventory); err != nil {
		return nil, fmt.Errorf("failed to generate inventory: %w", err)
	}

	manifestPath := filepath.Join(g.config.OutputDir, GeneratedManifest)
	if err := csv.WriteRecordsFile(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("failed to generate manifest: %w", err)
	}

	return []string{inventoryPath, manifestPath}, nil
}

// generateManifest returns the manifest header followed by one record per
// container
func (g *GenerateCommand) generateManifest() [][]string {
	records := [][]string{tabular.ManifestColumns}
	for i := 0; i < g.config.Containers; i++ {
		scac := generatedSCACs[g.rand.Intn(len(generatedSCACs))]
		records = append(records, []string{
			fmt.Sprintf("%s%07d", scac, g.rand.Intn(10000000)),
			scac,
			fmt.Sprintf("VESSEL %03d", g.rand.Intn(200)),
		})
	}
	return records
}

// generateInventory returns two title rows, the header and one record per
// inventory row. Output depends only on the seed. Rows reference manifest containers, except for the
// configured share of unknown ones.
func (g *GenerateCommand) generateInventory(manifest [][]string) [][]string {
	start := generatedStart
	records := [][]string{
		{"Inventory Lot Report"},
		{"Run date: " + start.Format("2006-01-02")},
		tabular.InventoryColumns,
	}

	for i := 0; i < g.config.Rows; i++ {
		container := fmt.Sprintf("TGHU%07d", g.rand.Intn(10000000))
		if g.rand.Intn(100) >= g.config.Unknown {
			container = manifest[1+g.rand.Intn(len(manifest)-1)][0]
		}

		product := generatedProducts[g.rand.Intn(len(generatedProducts))]
		subinventory := generatedSubinv[g.rand.Intn(len(generatedSubinv))]
		lot := ""
		if subinventory != "Not Booked" {
			lot = fmt.Sprintf("L-%05d", i)
		}

		records = append(records, []string{
			fmt.Sprintf("%s-%03d", product, g.rand.Intn(20)),
			product + " " + generatedPacking[g.rand.Intn(len(generatedPacking))],
			fmt.Sprintf("WEG%06d", g.rand.Intn(1000000)),
			lot,
			container + ";",
			subinventory,
			fmt.Sprintf("W%02d", 1+g.rand.Intn(5)),
			fmt.Sprint(1000 * (1 + g.rand.Intn(40))),
			fmt.Sprintf("%.2f", 0.25+g.rand.Float64()*3),
			"",
			start.AddDate(0, 0, g.rand.Intn(730)).Format("2006-01-02"),
			generatedPPMs[g.rand.Intn(len(generatedPPMs))],
		})
	}
	return records
}

func newGenerateCommand(app *App) *cobra.Command {
	config := GenerateConfig{Rows: 500, Containers: 120, Unknown: 10}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic inventory report and carrier manifest for testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.OutputDir == "" {
				config.OutputDir = app.cfg.InputDir
			}
			written, err := NewGenerateCommand(config).Execute(cmd.Context())
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&config.Rows, "rows", config.Rows, "Inventory rows to generate")
	flags.IntVar(&config.Containers, "containers", config.Containers, "Manifest containers to generate")
	flags.IntVar(&config.Unknown, "unknown", config.Unknown, "Percentage of inventory rows in containers missing from the manifest")
	flags.StringVar(&config.OutputDir, "dir", "", "Output directory (default: the input folder)")
	flags.Int64Var(&config.Seed, "seed", 0, "Random seed for reproducible output (default: time based)")
	return cmd
}
