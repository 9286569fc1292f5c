// =============================================================================
// PDF to XLSX Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration once
// per run. The loaded MainConfig is treated as read-only: it is passed by
// pointer into the parser, the spreadsheet formatter, and the batch driver.
//
// CONFIGURATION SOURCES (later wins):
//   1. Built-in defaults
//   2. config.yaml (optional)
//   3. Environment variables, including a .env file in the working directory
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// LogDir is the directory where daily log files are appended.
	// Default: "logs"
	LogDir string `yaml:"log_dir"`

	// ProcessedDir is the name of the folder created next to every PDF.
	// Converted spreadsheets are written there.
	// Default: "processed"
	ProcessedDir string `yaml:"processed_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// Debug lowers the log level to debug and echoes log lines to stderr.
	Debug bool `yaml:"debug"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// HeaderFill is the style applied to the spreadsheet header row.
	HeaderFill HeaderFill `yaml:"header_fill"`

	// =========================================================================
	// PARSER SETTINGS
	// =========================================================================

	// Parser holds the settings used by the text parser.
	Parser ParserConfig `yaml:"parser"`
}

// HeaderFill describes the background of the header row cells.
type HeaderFill struct {
	// StartColor is the foreground (pattern) or first gradient color, hex RGB.
	StartColor string `yaml:"start_color"`

	// EndColor is the second gradient color, hex RGB.
	EndColor string `yaml:"end_color"`

	// FillType is "solid", an openpyxl pattern name, or "gradient".
	FillType string `yaml:"fill_type"`
}

// ParserConfig holds the settings for the text parser.
type ParserConfig struct {
	// PhoneLabels are the line prefixes that identify a phone line.
	PhoneLabels PhoneLabels `yaml:"phone_labels"`

	// YearWindow is how many years before and after the current year
	// are considered when looking for the document date.
	// Default: 10
	YearWindow int `yaml:"year_window"`

	// ProductHeaders are the prefixes of the product table header row,
	// tried in order.
	ProductHeaders []string `yaml:"product_headers"`
}

// PhoneLabels groups phone line prefixes by the column they are written to.
type PhoneLabels struct {
	// Tel prefixes are recorded under the "Tel" column.
	Tel []string `yaml:"tel"`

	// Cell prefixes are recorded under the "Cell" column.
	Cell []string `yaml:"cell"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultYearWindow is used when year_window is absent. An explicit 0
// restricts the date search to the current year.
const DefaultYearWindow = 10

// DefaultProductHeaders are the known product table header rows.
// The longest prefix comes first so it wins over its shorter form.
var DefaultProductHeaders = []string{
	"Product Description Cost per Item Qty Price",
	"Product Description",
	"Description Quantity Price Total Price",
}

// DefaultMainConfig returns a configuration with every default applied.
func DefaultMainConfig() *MainConfig {
	cfg := &MainConfig{Parser: ParserConfig{YearWindow: DefaultYearWindow}}
	applyMainConfigDefaults(cfg)
	return cfg
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.LogDir == "" {
		config.LogDir = "logs"
	}
	if config.ProcessedDir == "" {
		config.ProcessedDir = "processed"
	}
	if config.HeaderFill.StartColor == "" {
		config.HeaderFill.StartColor = "4CAF50"
	}
	if config.HeaderFill.EndColor == "" {
		config.HeaderFill.EndColor = config.HeaderFill.StartColor
	}
	if config.HeaderFill.FillType == "" {
		config.HeaderFill.FillType = "solid"
	}
	if config.Parser.PhoneLabels.Tel == nil {
		config.Parser.PhoneLabels.Tel = []string{"Tel", "Main", "Home", "Office", "Phone", "Telephone"}
	}
	if config.Parser.PhoneLabels.Cell == nil {
		config.Parser.PhoneLabels.Cell = []string{"Cell", "Mobile", "iPhone"}
	}
	if config.Parser.ProductHeaders == nil {
		config.Parser.ProductHeaders = append([]string(nil), DefaultProductHeaders...)
	}
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// LoadMainConfig loads the main configuration.
//
// PARAMETERS:
//   - configPath: The path to the YAML configuration file. A missing file is
//     not an error; defaults and environment overrides still apply.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be parsed or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	// Populate the environment from .env when present.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := MainConfig{Parser: ParserConfig{YearWindow: DefaultYearWindow}}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Defaults only.
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := applyEnvironmentOverrides(&config); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvironmentOverrides reads the process environment. The variable
// names are kept compatible with existing deployments of the tool.
func applyEnvironmentOverrides(config *MainConfig) error {
	if v, ok := os.LookupEnv("LOG_DIR"); ok && v != "" {
		config.LogDir = v
	}
	if v, ok := os.LookupEnv("PROCESSED_DIR"); ok && v != "" {
		config.ProcessedDir = v
	}
	if v, ok := os.LookupEnv("FORCE_DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FORCE_DEBUG: %w", err)
		}
		config.Debug = debug
	}
	if v, ok := os.LookupEnv("HEADER_FILL"); ok && v != "" {
		values, err := parseList(v)
		if err != nil {
			return fmt.Errorf("HEADER_FILL: %w", err)
		}
		if len(values) != 3 {
			return fmt.Errorf("HEADER_FILL: expected [start_color, end_color, fill_type], got %d values", len(values))
		}
		config.HeaderFill = HeaderFill{StartColor: values[0], EndColor: values[1], FillType: values[2]}
	}
	if v, ok := os.LookupEnv("MAIN_PHONE"); ok && v != "" {
		values, err := parseList(v)
		if err != nil {
			return fmt.Errorf("MAIN_PHONE: %w", err)
		}
		config.Parser.PhoneLabels.Tel = values
	}
	if v, ok := os.LookupEnv("CELL_PHONE"); ok && v != "" {
		values, err := parseList(v)
		if err != nil {
			return fmt.Errorf("CELL_PHONE: %w", err)
		}
		config.Parser.PhoneLabels.Cell = values
	}
	return nil
}

// parseList accepts a flow sequence such as ["Cell", "Mobile"] (JSON is a
// subset of YAML) or a plain comma-separated list.
func parseList(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "[") {
		var list []string
		if err := yaml.Unmarshal([]byte(value), &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var list []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return list, nil
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if strings.ContainsAny(config.ProcessedDir, `/\`) {
		return fmt.Errorf("processed_dir must be a folder name, not a path: %q", config.ProcessedDir)
	}
	if config.HeaderFill.StartColor == "" || config.HeaderFill.FillType == "" {
		return errors.New("header_fill: start_color and fill_type are required")
	}
	if len(config.Parser.PhoneLabels.Tel) == 0 && len(config.Parser.PhoneLabels.Cell) == 0 {
		return errors.New("parser.phone_labels: at least one label is required")
	}
	if config.Parser.YearWindow < 0 {
		return fmt.Errorf("parser.year_window must not be negative, got %d", config.Parser.YearWindow)
	}
	if len(config.Parser.ProductHeaders) == 0 {
		return errors.New("parser.product_headers: at least one header is required")
	}
	for i, header := range config.Parser.ProductHeaders {
		if strings.TrimSpace(header) == "" {
			return fmt.Errorf("parser.product_headers[%d] is empty", i)
		}
	}
	return nil
}
