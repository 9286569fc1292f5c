// =============================================================================
// PDF to XLSX Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the batch driver:
//   - PDF discovery under a root folder
//   - Output folder and file naming
//   - Processing summary generation
//
// OUTPUT LAYOUT:
//   Every PDF gets a sibling output folder (default "processed"):
//
//     orders/acme.pdf  ->  orders/processed/acme.xlsx
//
//   Output folders are skipped during discovery, so running the tool twice
//   over the same tree does not pick up anything it wrote itself.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverPDFs walks root recursively and returns every file with a .pdf
// extension (any case), in lexical order.
//
// PARAMETERS:
//   - root: The folder to scan.
//   - processedDir: The name of output folders, which are not entered.
//
// RETURNS:
//   - A slice of file paths.
//   - An error if the folder cannot be read.
func DiscoverPDFs(root, processedDir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && processedDir != "" && d.Name() == processedDir {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// OutputPathFor returns the spreadsheet path for a PDF:
// <pdf folder>/<processedDir>/<pdf name>.xlsx.
func OutputPathFor(pdfPath, processedDir string) string {
	name := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(filepath.Dir(pdfPath), processedDir, name+".xlsx")
}

// EnsureProcessedDir creates the output folder next to a PDF.
//
// RETURNS:
//   - The path to the output folder.
//   - An error if the folder cannot be created.
func EnsureProcessedDir(pdfPath, processedDir string) (string, error) {
	dir := filepath.Join(filepath.Dir(pdfPath), processedDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}

// NewRunID returns a random identifier for one batch run.
func NewRunID() string {
	return uuid.New().String()
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	RunID           string
	RootDir         string
	DryRun          bool
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	DegradedFiles   int
	FailedFiles     int
	TotalLineItems  int
	Warnings        int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo contains information about a file that produced output.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	Status      string
	LineItems   int
	Warnings    int
	ProcessTime time.Duration
}

// FailedFileInfo contains information about a failed file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
}

// WriteSummaryLog writes a processing summary to a text file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	timestamp := summary.EndTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "PDF to XLSX Converter - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Root Folder:    %s\n"+
		"  Dry Run:        %t\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:        %d\n"+
		"  Successful:         %d\n"+
		"  Without Formatting: %d\n"+
		"  Failed:             %d\n"+
		"  Total Line Items:   %d\n"+
		"  Warnings:           %d\n\n",
		summary.RunID,
		summary.RootDir,
		summary.DryRun,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.DegradedFiles,
		summary.FailedFiles,
		summary.TotalLineItems,
		summary.Warnings)

	if len(summary.ProcessedFiles) > 0 {
		writer.WriteString("Processed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(writer, "  Output:       %s\n", pf.OutputFile)
			fmt.Fprintf(writer, "  Status:       %s\n", pf.Status)
			fmt.Fprintf(writer, "  Line Items:   %d\n", pf.LineItems)
			fmt.Fprintf(writer, "  Warnings:     %d\n", pf.Warnings)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
