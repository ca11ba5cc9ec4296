package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/application/services"
	"github.com/vsinha/scacmatch/pkg/config"
	"github.com/vsinha/scacmatch/pkg/infrastructure/events"
	"github.com/vsinha/scacmatch/pkg/infrastructure/files"
	"github.com/vsinha/scacmatch/pkg/infrastructure/gsheets"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/scacmatch/pkg/interfaces/cli/output"
)

// Options holds the global command line flags
type Options struct {
	ConfigFile string
	InputDir   string
	OutputDir  string
	Format     string
	Verbose    bool
}

// App carries the state shared by every subcommand once the root command has
// loaded configuration and built the logger
type App struct {
	opts   Options
	cfg    *config.Config
	logger *zap.Logger

	// newUpdater builds the Sheets client used by the upload command
	newUpdater func(ctx context.Context, credentialsFile string) (gsheets.ValuesUpdater, error)
}

// NewRootCommand creates the scacmatch command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&App{
		newUpdater: func(ctx context.Context, credentialsFile string) (gsheets.ValuesUpdater, error) {
			return gsheets.NewSheetsClient(ctx, credentialsFile)
		},
	})
}

func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "scacmatch",
		Short: "Annotate an inventory report with carrier SCAC codes",
		Long: `scacmatch joins an inventory report with a carrier manifest on container
number, writes the carrier SCAC of each container into the inventory rows and
derives lookup, expiration, cost and ISO booking reports from the result.

The input folder must hold exactly one inventory report and one carrier
manifest, selected by the inventory_glob and manifest_glob settings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.opts.ConfigFile, "config", "scacmatch.yaml", "Path to YAML config file")
	flags.StringVarP(&app.opts.InputDir, "input", "i", "", "Folder holding the inventory report and carrier manifest")
	flags.StringVarP(&app.opts.OutputDir, "output", "o", "", "Folder for exported files")
	flags.StringVarP(&app.opts.Format, "format", "f", "text", "Output format: text, json, csv")
	flags.BoolVarP(&app.opts.Verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newAnnotateCommand(app),
		newLookupCommand(app),
		newExpiringCommand(app),
		newCostCommand(app),
		newBookingCommand(app),
		newCarrierCommand(app),
		newExportCommand(app),
		newUploadCommand(app),
		newGenerateCommand(app),
	)
	return root
}

// init loads .env, the config file and environment overrides, then applies
// command line flags on top
func (a *App) init() error {
	_ = godotenv.Load()

	cfg, err := config.Load(a.opts.ConfigFile)
	if err != nil {
		return err
	}
	if a.opts.InputDir != "" {
		cfg.InputDir = a.opts.InputDir
	}
	if a.opts.OutputDir != "" {
		cfg.OutputDir = a.opts.OutputDir
	}
	a.cfg = cfg

	logger, err := config.NewLogger(cfg.Logging, a.opts.Verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// pipeline builds the loader and matcher described by the configuration
func (a *App) pipeline(store events.EventStore) (*services.Pipeline, error) {
	mode, err := services.ParseMatchMode(a.cfg.MatchMode)
	if err != nil {
		return nil, err
	}
	policy, err := services.ParseConflictPolicy(a.cfg.ConflictPolicy)
	if err != nil {
		return nil, err
	}

	workbooks := xlsx.NewLoader(xlsx.Config{
		InventorySheet:     a.cfg.Inventory.Sheet,
		InventoryHeaderRow: a.cfg.Inventory.HeaderRow,
		ManifestSheet:      a.cfg.Manifest.Sheet,
		ManifestHeaderRow:  a.cfg.Manifest.HeaderRow,
	}, a.logger)
	csvFiles := csv.NewLoader(csv.Config{
		Encoding:           a.cfg.ManifestEncoding,
		InventoryHeaderRow: a.cfg.Inventory.HeaderRow,
		ManifestHeaderRow:  a.cfg.Manifest.HeaderRow,
	}, a.logger)

	matcher := services.NewMatcherService(services.MatcherConfig{Mode: mode, Conflicts: policy}, store, a.logger)
	return services.NewPipeline(files.NewLoader(workbooks, csvFiles), matcher, a.logger), nil
}

// discover locates the two input files in the configured folder
func (a *App) discover() (files.InputFiles, error) {
	inputs, err := files.Discover(a.cfg.InputDir, a.cfg.InventoryGlob, a.cfg.ManifestGlob)
	if err != nil {
		return inputs, fmt.Errorf("failed to resolve input files: %w", err)
	}
	a.logger.Debug("input files resolved",
		zap.String("inventory", inputs.Inventory),
		zap.String("manifest", inputs.Manifest),
	)
	return inputs, nil
}

// annotated discovers, loads and annotates the inputs
func (a *App) annotated(ctx context.Context, store events.EventStore) (*services.Dataset, error) {
	inputs, err := a.discover()
	if err != nil {
		return nil, err
	}
	pipeline, err := a.pipeline(store)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(ctx, inputs.Inventory, inputs.Manifest)
}

func (a *App) render(w io.Writer, report interface{}) error {
	if err := output.Generate(report, output.Config{Format: a.opts.Format, Out: w}); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}
