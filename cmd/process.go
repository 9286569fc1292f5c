// =============================================================================
// PDF to XLSX Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which is the main command for
// converting PDF files to spreadsheets. It drives the batch over a folder.
//
// COMMAND USAGE:
//   pdf2xlsx process [dir] [flags]
//
// FLAGS:
//   --dry-run     : Parse and validate every PDF without writing output files
//
// PROCESSING PIPELINE:
//   1. Load configuration and open the daily log file
//   2. Discover PDF files under the root folder
//   3. For each file, one after another:
//      a. Create the sibling output folder
//      b. Extract, parse and validate the first page
//      c. Write and format the spreadsheet
//   4. Write the summary report into the log folder
//
// A failure on one file is logged and the batch moves on to the next.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/converter"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/logging"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun parses every file without writing output files.
var dryRun bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process [dir]",
	Short: "Convert every PDF under a folder to a spreadsheet",
	Long: `The process command walks the given folder (default: the current folder)
for PDF files and converts each one into a single-row spreadsheet.

On successful processing:
  - The spreadsheet is written to <pdf folder>/processed/<name>.xlsx
  - The header row is styled, filtered and sized to its content

On error:
  - The failure is recorded in the daily log and the summary report
  - Processing continues for other files`,

	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		return runProcess(root)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Parse and validate without writing output files",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess converts every PDF under root and writes the summary report.
func runProcess(root string) error {
	mainConfig, err := loadConfig()
	if err != nil {
		return err
	}

	baseLogger, err := logging.NewDaily(mainConfig.LogDir, mainConfig.Debug)
	if err != nil {
		return err
	}
	defer baseLogger.Close()

	summary := utils.ProcessingSummary{
		RunID:     utils.NewRunID(),
		RootDir:   root,
		DryRun:    dryRun,
		StartTime: time.Now(),
	}
	logger := baseLogger.With("run", summary.RunID)

	fmt.Println("=== PDF to XLSX Converter ===")
	logger.Info("Scanning %s for PDF files", root)

	files, err := utils.DiscoverPDFs(root, mainConfig.ProcessedDir)
	if err != nil {
		logger.Error("Failed to discover input files: %v", err)
		return fmt.Errorf("failed to discover input files: %w", err)
	}

	if len(files) == 0 {
		fmt.Println("No PDF files found.")
		logger.Info("No PDF files found under %s", root)
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(files))
	summary.TotalFiles = len(files)

	for _, file := range files {
		result := processFile(file, mainConfig, logger)
		tally(&summary, result)
	}

	summary.EndTime = time.Now()

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:        %d\n", summary.TotalFiles)
	fmt.Printf("Successful:         %d\n", summary.SuccessfulFiles)
	fmt.Printf("Without formatting: %d\n", summary.DegradedFiles)
	fmt.Printf("Failed:             %d\n", summary.FailedFiles)
	fmt.Printf("Time elapsed:       %s\n", summary.EndTime.Sub(summary.StartTime))

	summaryPath, err := utils.WriteSummaryLog(summary, mainConfig.LogDir)
	if err != nil {
		logger.Error("Failed to write summary: %v", err)
		return nil
	}
	fmt.Printf("Summary written to %s\n", summaryPath)

	return nil
}

// processFile runs the conversion pipeline for a single PDF and logs the
// outcome.
func processFile(file string, mainConfig *config.MainConfig, logger *logging.SlogLogger) converter.Result {
	fileLogger := logger.With("file", filepath.Base(file))

	if !dryRun {
		if _, err := utils.EnsureProcessedDir(file, mainConfig.ProcessedDir); err != nil {
			fileLogger.Error("Failed to prepare output folder: %v", err)
			fmt.Fprintf(os.Stderr, "  x %s: %v\n", filepath.Base(file), err)
			return converter.Result{FilePath: file, Status: converter.StatusFailed, Error: err}
		}
	}

	output := utils.OutputPathFor(file, mainConfig.ProcessedDir)
	result := converter.New(file, output, mainConfig,
		converter.WithLogger(fileLogger),
		converter.WithDryRun(dryRun),
	).Run()

	switch result.Status {
	case converter.StatusSuccess:
		if dryRun {
			fileLogger.Success("Parsed %s (%d fields, dry run)", file, result.Stats.FieldsExtracted)
			fmt.Printf("  + %s (dry run)\n", filepath.Base(file))
		} else {
			fileLogger.Success("Processed %s -> %s", file, result.OutputFile)
			fmt.Printf("  + %s -> %s\n", filepath.Base(file), result.OutputFile)
		}
	case converter.StatusDegraded:
		fileLogger.Warn("Processed %s -> %s without formatting: %v", file, result.OutputFile, result.Error)
		fmt.Printf("  ~ %s -> %s (unformatted)\n", filepath.Base(file), result.OutputFile)
	default:
		fileLogger.Error("Failed to process %s: %v", file, result.Error)
		fmt.Fprintf(os.Stderr, "  x %s: %v\n", filepath.Base(file), result.Error)
	}

	return result
}

// tally folds one file's result into the run summary.
func tally(summary *utils.ProcessingSummary, result converter.Result) {
	if result.Status == converter.StatusFailed {
		summary.FailedFiles++
		message := "unknown error"
		if result.Error != nil {
			message = result.Error.Error()
		}
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    result.FilePath,
			ErrorMessage: message,
		})
		return
	}

	if result.Status == converter.StatusDegraded {
		summary.DegradedFiles++
	} else {
		summary.SuccessfulFiles++
	}
	summary.TotalLineItems += result.Stats.LineItems
	summary.Warnings += result.Stats.ValidationWarnings
	summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
		InputFile:   result.FilePath,
		OutputFile:  result.OutputFile,
		Status:      result.Status.String(),
		LineItems:   result.Stats.LineItems,
		Warnings:    result.Stats.ValidationWarnings,
		ProcessTime: result.Stats.ProcessingTime,
	})
}
