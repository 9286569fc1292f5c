// =============================================================================
// PDF to XLSX Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the PDF to XLSX Converter CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   pdf2xlsx process [dir]   - Convert every PDF under dir (default: .)
//   pdf2xlsx extract <file>  - Print the record parsed from one PDF or text file
//   pdf2xlsx version         - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Text parsing, PDF reading, spreadsheet writing
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/cmd"
)

func main() {
	cmd.Execute()
}
