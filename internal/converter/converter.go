// =============================================================================
// PDF to XLSX Converter - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline for a single PDF file, from
// text extraction to the formatted spreadsheet.
//
// CONVERSION PIPELINE:
//   1. Extract the text of the first page
//   2. Parse the text into a record
//   3. Validate the record (warnings only)
//   4. Write the spreadsheet
//   5. Format the spreadsheet
//
// OUTCOMES:
//   - Success:  the spreadsheet was written and formatted
//   - Degraded: the spreadsheet was written but formatting failed; the
//               unformatted file is kept
//   - Failed:   no spreadsheet was written
//
// A converter holds no state shared with other files; the batch driver
// creates one per PDF and processes them one after another.
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/logging"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/pdftext"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/textparser"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/types"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/validation"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/xlsxwriter"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Status is the outcome of converting one file.
type Status int

const (
	// StatusFailed means no output was produced.
	StatusFailed Status = iota

	// StatusSuccess means the output was written and formatted.
	StatusSuccess

	// StatusDegraded means the output was written without formatting.
	StatusDegraded
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusDegraded:
		return "degraded"
	default:
		return "failed"
	}
}

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input PDF.
	FilePath string

	// OutputFile is the path to the generated spreadsheet.
	// This is empty if processing failed or was a dry run.
	OutputFile string

	// Status is the outcome of the conversion.
	Status Status

	// Error is the cause of a failed or degraded conversion.
	Error error

	// Record is the parsed record, nil if parsing failed.
	Record *types.Record

	// Report lists how every parsing stage ended.
	Report *textparser.Report

	// Warnings are the validation findings for the record.
	Warnings []*validation.ValidationError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// Success reports whether an output file was produced.
func (r Result) Success() bool {
	return r.Status != StatusFailed
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// PageCount is the number of pages in the PDF. Only the first is read.
	PageCount int

	// FieldsExtracted is the number of columns in the output row.
	FieldsExtracted int

	// LineItems is the number of product rows found.
	LineItems int

	// DegradedStages is the number of parsing stages that fell back to a
	// default value.
	DegradedStages int

	// ValidationWarnings is the number of validation findings.
	ValidationWarnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// TextExtractor reads the first page of a PDF as plain text.
type TextExtractor interface {
	ExtractFirstPage(path string) (*pdftext.Page, error)
}

// Converter handles the conversion of a single PDF file to XLSX.
type Converter struct {
	// pdfPath is the path to the input PDF.
	pdfPath string

	// outputPath is where the spreadsheet is written.
	outputPath string

	// mainConfig is the main application configuration.
	mainConfig *config.MainConfig

	extractor TextExtractor
	parser    *textparser.Parser
	validator *validation.Validator
	logger    logging.Logger

	// dryRun parses and validates but writes nothing.
	dryRun bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logging.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithExtractor replaces the PDF text extractor.
func WithExtractor(extractor TextExtractor) Option {
	return func(c *Converter) {
		c.extractor = extractor
	}
}

// WithParser replaces the text parser built from the configuration.
func WithParser(parser *textparser.Parser) Option {
	return func(c *Converter) {
		c.parser = parser
	}
}

// WithDryRun disables writing the spreadsheet.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) {
		c.dryRun = dryRun
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - pdfPath: The path to the input PDF.
//   - outputPath: The path of the spreadsheet to write.
//   - mainConfig: The main application configuration.
//
// RETURNS:
//   - A new Converter instance.
func New(pdfPath, outputPath string, mainConfig *config.MainConfig, opts ...Option) *Converter {
	c := &Converter{
		pdfPath:    pdfPath,
		outputPath: outputPath,
		mainConfig: mainConfig,
		extractor:  pdftext.NewReader(),
		validator:  validation.NewValidator(),
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.parser == nil {
		c.parser = textparser.New(mainConfig.Parser, textparser.WithLogger(c.logger))
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		FilePath: c.pdfPath,
		Status:   StatusFailed,
	}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEP 1: EXTRACT TEXT
	// =========================================================================

	c.logger.Debug("Processing file: %s", c.pdfPath)

	page, err := c.extractor.ExtractFirstPage(c.pdfPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to extract text: %w", err)
		return result
	}
	result.Stats.PageCount = page.PageCount
	if page.PageCount > 1 {
		c.logger.Warn("%s has %d pages, only the first is read", c.pdfPath, page.PageCount)
	}

	// =========================================================================
	// STEP 2: PARSE TEXT
	// =========================================================================

	record, report, err := c.parser.Parse(page.Text)
	result.Report = report
	if err != nil {
		result.Error = fmt.Errorf("error mapping text to columns: %w", err)
		return result
	}
	result.Record = record
	result.Stats.FieldsExtracted = record.Len()
	result.Stats.LineItems = len(record.Items)

	for _, stage := range report.Degraded() {
		result.Stats.DegradedStages++
		c.logger.Info("%s: %s stage: %v", c.pdfPath, stage.Stage, stage.Err)
	}

	// =========================================================================
	// STEP 3: VALIDATE RECORD
	// =========================================================================

	validated := c.validator.ValidateRecord(record)
	result.Warnings = validated.Errors
	result.Stats.ValidationWarnings = len(validated.Errors)
	for _, ve := range validated.Errors {
		c.logger.Warn("%s: %s", c.pdfPath, ve.Error())
	}

	if c.dryRun {
		c.logger.Debug("Dry run, not writing %s", c.outputPath)
		result.Status = StatusSuccess
		return result
	}

	// =========================================================================
	// STEP 4: WRITE SPREADSHEET
	// =========================================================================

	headers, values := record.Row()
	if err := xlsxwriter.Write(c.outputPath, headers, values); err != nil {
		result.Error = fmt.Errorf("failed to write spreadsheet: %w", err)
		return result
	}
	result.OutputFile = c.outputPath

	// =========================================================================
	// STEP 5: FORMAT SPREADSHEET
	// =========================================================================
	// A formatting failure keeps the unformatted file.

	if err := xlsxwriter.Format(c.outputPath, c.mainConfig.HeaderFill); err != nil {
		result.Status = StatusDegraded
		result.Error = fmt.Errorf("error formatting spreadsheet: %w", err)
		return result
	}

	result.Status = StatusSuccess
	return result
}
