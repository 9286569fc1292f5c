// =============================================================================
// PDF to XLSX Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pdf2xlsx)
//   ├── processCmd (pdf2xlsx process)
//   ├── extractCmd (pdf2xlsx extract)
//   └── versionCmd (pdf2xlsx version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Each
//   command loads the configuration once through loadConfig and passes it
//   down; nothing reads the environment after that.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging, like FORCE_DEBUG=true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "pdf2xlsx",
	Short: "PDF to XLSX Converter - Turn order and invoice PDFs into spreadsheets",
	Long: `PDF to XLSX Converter reads the text of single-page order and invoice PDFs,
picks out the date, address, contacts, phone, email, invoice and purchase
order numbers, product lines and freight charge, and writes them as one
spreadsheet row next to each PDF.

Example Usage:
  pdf2xlsx process ~/orders             # Convert every PDF under ~/orders
  pdf2xlsx process --dry-run            # Parse only, write nothing
  pdf2xlsx extract invoice.pdf          # Show what would be extracted
  pdf2xlsx process --config ./my.yaml   # Use a custom configuration file`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging, echoed to stderr",
	)
}

// loadConfig loads the main configuration and applies --verbose.
func loadConfig() (*config.MainConfig, error) {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	if verbose {
		mainConfig.Debug = true
	}
	return mainConfig, nil
}
