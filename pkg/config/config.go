package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SCACMATCH_INPUT_DIR
const EnvPrefix = "SCACMATCH"

// Config represents the complete application configuration
type Config struct {
	InputDir      string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	InventoryGlob string `yaml:"inventory_glob" envconfig:"INVENTORY_GLOB" validate:"required"`
	ManifestGlob  string `yaml:"manifest_glob" envconfig:"MANIFEST_GLOB" validate:"required"`
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`

	Inventory SheetLayout `yaml:"inventory" envconfig:"INVENTORY"`
	Manifest  SheetLayout `yaml:"manifest" envconfig:"MANIFEST"`

	// ManifestEncoding is the character set of CSV inputs, by WHATWG label
	ManifestEncoding string `yaml:"manifest_encoding" envconfig:"MANIFEST_ENCODING" validate:"required"`

	MatchMode      string `yaml:"match_mode" envconfig:"MATCH_MODE" validate:"oneof=substring exact"`
	ConflictPolicy string `yaml:"conflict_policy" envconfig:"CONFLICT_POLICY" validate:"oneof=last-write error"`
	LotSize        int64  `yaml:"lot_size" envconfig:"LOT_SIZE" validate:"gt=0"`

	Sheets  SheetsConfig  `yaml:"sheets" envconfig:"SHEETS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// SheetLayout locates the data of one input file
type SheetLayout struct {
	Sheet     string `yaml:"sheet" envconfig:"SHEET"`
	HeaderRow int    `yaml:"header_row" envconfig:"HEADER_ROW" validate:"gte=1"`
}

// SheetsConfig addresses the Google Sheets target of the upload command
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	SheetName       string `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required"`
	StartRow        int    `yaml:"start_row" envconfig:"START_ROW" validate:"gte=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Encoding string `yaml:"encoding" envconfig:"ENCODING" validate:"oneof=json console"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present
func DefaultConfig() *Config {
	return &Config{
		InputDir:         ".",
		InventoryGlob:    "*.xlsx",
		ManifestGlob:     "*.csv",
		OutputDir:        ".",
		Inventory:        SheetLayout{HeaderRow: 3},
		Manifest:         SheetLayout{HeaderRow: 1},
		ManifestEncoding: "windows-1252",
		MatchMode:        "substring",
		ConflictPolicy:   "last-write",
		LotSize:          20000,
		Sheets: SheetsConfig{
			SheetName: "ORDERS",
			StartRow:  1,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path,
// then SCACMATCH_* environment variables. An empty path or a missing file
// leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return fmt.Errorf("config validation failed: %s must satisfy %s %s, got %v",
				fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
