// =============================================================================
// PDF to XLSX Converter - Text Parser
// =============================================================================
//
// This module turns the plain text of one order/invoice page into a flat
// Record. The text is split into a LineStream once; five stages then read it
// in a fixed order, each starting where the previous one stopped:
//
//   date -> main section -> invoice/PO -> products -> freight
//
// Stages never modify the LineStream and never read behind their start
// position. Each one returns its fields plus a StageResult carrying the
// boundary for the next stage and whether it had to fall back to a default.
//
// =============================================================================

package textparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/logging"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/types"
)

// Stage names used in StageResult.Stage.
const (
	StageDate     = "date"
	StageMain     = "main"
	StageInvoice  = "invoice"
	StageProducts = "products"
	StageFreight  = "freight"
)

var (
	// ErrEmptyDocument is returned when the text has no non-blank line.
	ErrEmptyDocument = errors.New("document has no text")

	// ErrDateNotFound marks a date stage that fell back to today.
	ErrDateNotFound = errors.New("no date found, using today")

	// ErrHeaderNotFound marks a missing product table header.
	ErrHeaderNotFound = errors.New("product header not found")

	// ErrInvoiceNotFound marks an invoice stage that found neither line.
	ErrInvoiceNotFound = errors.New("no invoice or purchase order line found")

	// ErrFreightNotFound marks a missing freight line.
	ErrFreightNotFound = errors.New("freight line not found")

	// ErrNoBoundary marks a stage that was handed NoCursor.
	ErrNoBoundary = errors.New("previous stage left nothing to parse")

	// ErrCursorRegression is returned when a stage ends before it started.
	ErrCursorRegression = errors.New("stage ended before its start position")
)

// =============================================================================
// LINE STREAM
// =============================================================================

// LineStream is the immutable, index-addressable list of trimmed text lines
// of one page.
type LineStream struct {
	lines []string
}

// NewLineStream splits text into lines. Surrounding blank space of the whole
// text is dropped first, then every line is trimmed.
func NewLineStream(text string) LineStream {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return LineStream{}
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimSpace(line)
	}
	return LineStream{lines: lines}
}

// Len returns the number of lines.
func (s LineStream) Len() int {
	return len(s.lines)
}

// At returns line i.
func (s LineStream) At(i int) string {
	return s.lines[i]
}

// =============================================================================
// PARSER
// =============================================================================

// Parser holds the read-only settings shared by every stage.
type Parser struct {
	settings config.ParserConfig
	now      func() time.Time
	logger   logging.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock replaces time.Now, which decides the year window and the
// fallback date.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// WithLogger sets the logger used for non-fatal parse problems.
func WithLogger(logger logging.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a Parser from the parser section of the main configuration.
func New(settings config.ParserConfig, opts ...Option) *Parser {
	p := &Parser{
		settings: settings,
		now:      time.Now,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// =============================================================================
// REPORT
// =============================================================================

// Report lists how every stage of one Parse call ended.
type Report struct {
	Stages []types.StageResult
}

// Degraded returns the stages that fell back to a default or empty value.
func (r *Report) Degraded() []types.StageResult {
	var degraded []types.StageResult
	for _, stage := range r.Stages {
		if stage.Status == types.StageDegraded {
			degraded = append(degraded, stage)
		}
	}
	return degraded
}

// Stage returns the result of the named stage.
func (r *Report) Stage(name string) (types.StageResult, bool) {
	for _, stage := range r.Stages {
		if stage.Stage == name {
			return stage, true
		}
	}
	return types.StageResult{}, false
}

func (r *Report) add(result types.StageResult) error {
	if result.End.Valid() && result.Start.Valid() && result.End < result.Start {
		result.Status = types.StageFailed
		result.Err = fmt.Errorf("%s stage: %w (start %d, end %d)", result.Stage, ErrCursorRegression, result.Start, result.End)
	}
	r.Stages = append(r.Stages, result)
	if result.Status == types.StageFailed {
		return result.Err
	}
	return nil
}

// =============================================================================
// RECORD ASSEMBLY
// =============================================================================

// Parse runs every stage over text and merges their fields into one Record.
//
// RETURNS:
//   - The record. Line items are stored under indexed keys
//     (Product_Description_0, Price_Per_Product_0, ...) and in Record.Items.
//   - The per-stage report, also when parsing fails.
//   - An error when the document cannot be parsed at all; the record is nil
//     in that case and no partial data is returned.
func (p *Parser) Parse(text string) (*types.Record, *Report, error) {
	report := &Report{}

	lines := NewLineStream(text)
	if lines.Len() == 0 {
		return nil, report, ErrEmptyDocument
	}

	record := types.NewRecord()

	dateData, dateResult := p.FindDate(lines)
	if err := report.add(dateResult); err != nil {
		return nil, report, err
	}
	record.Merge(dateData)

	mainStart := types.Cursor(0)
	if dateResult.End.Valid() {
		mainStart = dateResult.End + 1
	}

	mainData, mainResult := p.ParseMainSection(lines, mainStart)
	if err := report.add(mainResult); err != nil {
		return nil, report, err
	}
	record.Merge(mainData)

	invoiceData, invoiceResult := p.ParseInvoiceAndPurchaseOrder(lines, mainResult.End)
	if err := report.add(invoiceResult); err != nil {
		return nil, report, err
	}
	record.Merge(invoiceData)

	items, productResult := p.ParseProducts(lines, invoiceResult.End)
	if err := report.add(productResult); err != nil {
		return nil, report, err
	}
	for i, item := range items {
		record.Set(fmt.Sprintf("%s_%d", types.FieldProductDesc, i), item.Description)
		record.Set(fmt.Sprintf("%s_%d", types.FieldPricePerItem, i), item.PricePerItem)
		record.Set(fmt.Sprintf("%s_%d", types.FieldQuantity, i), item.Quantity)
		record.Set(fmt.Sprintf("%s_%d", types.FieldTotalPrice, i), item.TotalPrice)
	}
	record.Items = items

	freightData, freightResult := p.ParseFreight(lines, productResult.End)
	if err := report.add(freightResult); err != nil {
		return nil, report, err
	}
	record.Merge(freightData)

	for _, stage := range report.Degraded() {
		p.logger.Debug("Stage %s degraded: %v", stage.Stage, stage.Err)
	}

	return record, report, nil
}
