package textparser

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/types"
)

// DateFormat is the layout of the Date column (MM/DD/YYYY).
const DateFormat = "01/02/2006"

// datePattern matches "March 4, 2024" and "3/4/24" or "03/04/2024".
var datePattern = regexp.MustCompile(
	`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}` +
		`|\d{1,2}/\d{1,2}/\d{2,4}`,
)

// YearsToSearch returns the years from currentYear-window to
// currentYear+window ordered by distance from currentYear. Equal distances
// keep ascending year order, so the earlier year comes first.
func YearsToSearch(currentYear, window int) []int {
	if window < 0 {
		window = 0
	}
	years := make([]int, 0, 2*window+1)
	for year := currentYear - window; year <= currentYear+window; year++ {
		years = append(years, year)
	}
	slices.SortStableFunc(years, func(a, b int) int {
		return distance(a, currentYear) - distance(b, currentYear)
	})
	return years
}

func distance(year, currentYear int) int {
	if year < currentYear {
		return currentYear - year
	}
	return year - currentYear
}

// FindDate scans the line stream from the top for the document date.
//
// For every line, candidate years are tried in YearsToSearch order. A year
// is a candidate when its four-digit form or "/YY" appears in the line; the
// date pattern is then searched in the same line and the first match ending
// in that year is parsed. A two-digit year takes its century from the
// candidate year.
//
// RETURNS:
//   - A record holding only the Date field.
//   - The stage result; End is the index of the date line, or NoCursor when
//     no date was found and today's date was used instead.
func (p *Parser) FindDate(lines LineStream) (*types.Record, types.StageResult) {
	record := types.NewRecord()
	result := types.StageResult{Stage: StageDate, Start: 0, End: types.NoCursor}

	now := p.now()
	years := YearsToSearch(now.Year(), p.settings.YearWindow)

	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		matches := datePattern.FindAllString(line, -1)
		if len(matches) == 0 {
			continue
		}

		for _, year := range years {
			full := strconv.Itoa(year)
			short := "/" + full[len(full)-2:]
			if !strings.Contains(line, full) && !strings.Contains(line, short) {
				continue
			}

			for _, match := range matches {
				if !strings.HasSuffix(match, full) && !strings.HasSuffix(match, short) {
					continue
				}
				date, err := parseDate(match, year)
				if err != nil {
					p.logger.Debug("Error parsing date %q on line %d: %v", match, i, err)
					continue
				}
				record.Set(types.FieldDate, date.Format(DateFormat))
				result.End = types.Cursor(i)
				return record, result
			}
		}
	}

	record.Set(types.FieldDate, now.Format(DateFormat))
	result.Status = types.StageDegraded
	result.Err = ErrDateNotFound
	return record, result
}

// parseDate parses one datePattern match. year supplies the century for
// two-digit years.
func parseDate(value string, year int) (time.Time, error) {
	value = strings.Join(strings.Fields(value), " ")

	if !strings.Contains(value, "/") {
		return time.Parse("January 2, 2006", value)
	}

	parts := strings.Split(value, "/")
	switch len(parts[2]) {
	case 4:
		return time.Parse("1/2/2006", value)
	case 2:
		date, err := time.Parse("1/2/06", value)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(year, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported year %q", parts[2])
	}
}
