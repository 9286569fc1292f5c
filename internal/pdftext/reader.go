// =============================================================================
// PDF to XLSX Converter - PDF Text Reader
// =============================================================================
//
// This module is responsible for turning one PDF file into the plain text of
// its first page, one physical line per text line.
//
// PROCESS:
//   1. Validate the file with pdfcpu (relaxed mode) so that malformed or
//      encrypted documents are rejected with a clear error
//   2. Count pages; documents with more than one page are still read
//   3. Read page 1 with ledongthuc/pdf row by row, top of the page first
//   4. Rebuild each row from its glyph runs, left to right
//
// =============================================================================

package pdftext

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoPages is returned for a document without any page.
var ErrNoPages = errors.New("document has no pages")

// spaceGapRatio is the horizontal gap between two glyph runs, relative to the
// font size, above which a space is inserted.
const spaceGapRatio = 0.2

// Page is the text of the first page of a document.
type Page struct {
	// Text is the page text, one line per row, rows joined with "\n".
	Text string

	// PageCount is the total number of pages of the document.
	PageCount int
}

// Reader extracts page text from PDF files.
type Reader struct {
	conf *model.Configuration
}

// NewReader creates a Reader that validates in relaxed mode.
func NewReader() *Reader {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Reader{conf: conf}
}

// ExtractFirstPage reads the text of page 1 of the PDF at path.
//
// PARAMETERS:
//   - path: The PDF file.
//
// RETURNS:
//   - The page text and the document's page count.
//   - An error if the file is not a readable PDF or has no pages.
func (r *Reader) ExtractFirstPage(path string) (*Page, error) {
	if err := api.ValidateFile(path, r.conf); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}
	if pageCount == 0 {
		return nil, ErrNoPages
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer file.Close()

	if reader.NumPage() == 0 {
		return nil, ErrNoPages
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return nil, ErrNoPages
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("failed to read page text: %w", err)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, joinRow(row.Content))
	}

	return &Page{
		Text:      strings.Join(lines, "\n"),
		PageCount: pageCount,
	}, nil
}

// joinRow concatenates the glyph runs of one row in reading order. A single
// space is inserted where two runs are further apart than spaceGapRatio
// times the font size and neither side already carries one.
func joinRow(texts []pdf.Text) string {
	sorted := slices.Clone(texts)
	slices.SortStableFunc(sorted, func(a, b pdf.Text) int {
		return cmp.Compare(a.X, b.X)
	})

	var b strings.Builder
	var prevEnd float64
	lastSpace := true

	for i, t := range sorted {
		if t.S == "" {
			continue
		}
		if i > 0 && !lastSpace && !strings.HasPrefix(t.S, " ") {
			if t.X-prevEnd > spaceGapRatio*t.FontSize {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		lastSpace = strings.HasSuffix(t.S, " ")
		prevEnd = t.X + t.W
	}

	return strings.TrimSpace(b.String())
}
