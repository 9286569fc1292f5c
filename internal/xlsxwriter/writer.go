// =============================================================================
// PDF to XLSX Converter - XLSX Writer
// =============================================================================
//
// This module is responsible for writing one parsed record to a spreadsheet
// and styling it afterwards.
//
// LAYOUT:
//   Row 1 holds the field names, row 2 the values, on the first sheet.
//
// FORMATTING (applied by Format, after the file has been written):
//   - Header cells are filled with the configured color/pattern/gradient
//   - An auto-filter is set over the header row
//   - Every column is as wide as its longest value plus a small margin
//
// Writing and formatting are separate steps. A workbook that was written but
// could not be formatted is still a valid output.
//
// =============================================================================

package xlsxwriter

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/config"
)

// columnPadding is added to the longest value of a column.
const columnPadding = 2

// ErrUnknownFillType is returned for a fill type that maps to no style.
var ErrUnknownFillType = errors.New("unknown fill type")

// patternFills maps fill type names to excelize pattern indices.
var patternFills = map[string]int{
	"solid":           1,
	"mediumGray":      2,
	"darkGray":        3,
	"lightGray":       4,
	"darkHorizontal":  5,
	"darkVertical":    6,
	"darkDown":        7,
	"darkUp":          8,
	"darkGrid":        9,
	"darkTrellis":     10,
	"lightHorizontal": 11,
	"lightVertical":   12,
	"lightDown":       13,
	"lightUp":         14,
	"lightGrid":       15,
	"lightTrellis":    16,
	"gray125":         17,
	"gray0625":        18,
}

// =============================================================================
// WRITE
// =============================================================================

// Write creates (or replaces) the workbook at path with a header row and a
// single value row.
//
// PARAMETERS:
//   - path: The output .xlsx file.
//   - headers: The column names, in column order.
//   - values: The cell values, same length and order as headers.
//
// RETURNS:
//   - An error if the row is empty or the file cannot be saved.
func Write(path string, headers, values []string) error {
	if len(headers) == 0 {
		return errors.New("no columns to write")
	}
	if len(headers) != len(values) {
		return fmt.Errorf("header/value count mismatch: %d headers, %d values", len(headers), len(values))
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i := range headers {
		if err := setCell(f, sheet, i+1, 1, headers[i]); err != nil {
			return err
		}
		if err := setCell(f, sheet, i+1, 2, values[i]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}

// =============================================================================
// FORMAT
// =============================================================================

// Format styles the header row of the workbook at path, enables a filter
// on it, and sizes every column to its content.
//
// PARAMETERS:
//   - path: A workbook previously created by Write.
//   - fill: The header fill style.
//
// RETURNS:
//   - An error if the workbook cannot be read, styled, or saved. The file on
//     disk is left unchanged in that case.
func Format(path string, fill config.HeaderFill) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return errors.New("workbook has no header row")
	}
	header := rows[0]

	style, err := headerStyle(fill)
	if err != nil {
		return err
	}
	if style != nil {
		styleID, err := f.NewStyle(style)
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		for i, name := range header {
			if name == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return fmt.Errorf("failed to style cell %s: %w", cell, err)
			}
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A1:"+lastColumn+"1", []excelize.AutoFilterOptions{}); err != nil {
		return fmt.Errorf("failed to set auto filter: %w", err)
	}

	for col, width := range ColumnWidths(rows) {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// ColumnWidths returns, per column, the length in characters of its longest
// cell across all rows plus the column padding.
func ColumnWidths(rows [][]string) []float64 {
	var widths []float64
	for _, row := range rows {
		for col, value := range row {
			for len(widths) <= col {
				widths = append(widths, columnPadding)
			}
			if w := float64(utf8.RuneCountInString(value) + columnPadding); w > widths[col] {
				widths[col] = w
			}
		}
	}
	return widths
}

// headerStyle builds the excelize style for a header fill. A "none" fill
// type returns a nil style and no error.
func headerStyle(fill config.HeaderFill) (*excelize.Style, error) {
	start := normalizeColor(fill.StartColor)
	end := normalizeColor(fill.EndColor)
	if end == "" {
		end = start
	}

	switch fill.FillType {
	case "none":
		return nil, nil
	case "linear", "gradient":
		return &excelize.Style{
			Fill: excelize.Fill{Type: "gradient", Color: []string{start, end}, Shading: 0},
		}, nil
	}

	pattern, ok := patternFills[fill.FillType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFillType, fill.FillType)
	}
	return &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{start}, Pattern: pattern},
	}, nil
}

// normalizeColor accepts "4CAF50", "#4caf50", and ARGB "FF4CAF50" and
// returns the six-digit RGB form.
func normalizeColor(color string) string {
	color = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if len(color) == 8 {
		color = color[2:]
	}
	return color
}
