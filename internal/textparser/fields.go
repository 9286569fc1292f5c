package textparser

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/types"
)

var (
	// labelledPhonePattern is the digit group taken from a labelled phone line.
	labelledPhonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)

	// nonCurrencyPattern matches everything a cleaned amount must not keep.
	nonCurrencyPattern = regexp.MustCompile(`[^\d.]`)
)

// =============================================================================
// SUBSTRING EXTRACTORS
// =============================================================================

// IsolateEmail returns the first email address in the line.
func IsolateEmail(line string) (string, bool) {
	match := emailPattern.FindString(line)
	return match, match != ""
}

// IsolateNumber returns the first phone number in the line.
func IsolateNumber(line string) (string, bool) {
	match := phonePattern.FindString(line)
	return match, match != ""
}

// CleanCurrency keeps only digits and the decimal point, so "$1,234.56"
// becomes "1234.56" and "Qty: 3" becomes "3". The dollar sign is removed
// as well, so amount columns hold bare numbers for the spreadsheet and the
// decimal checks.
func CleanCurrency(value string) string {
	return nonCurrencyPattern.ReplaceAllString(value, "")
}

// =============================================================================
// FIELD PARSERS
// =============================================================================
//
// Each parser returns (value, matched). matched == false means the line does
// not belong to that field and the caller should try the next candidate.

// ParseAddress1 accepts a street or P.O. Box line that is not also a
// city/state/zip, phone, email, or invoice line.
func ParseAddress1(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !IsTraditionalAddress(line) && !IsPoBoxAddress(line) {
		return "", false
	}
	if IsCityStateZip(line) || ContainsPhoneNumber(line) ||
		ContainsEmailAddress(line) || StartsWithInvoiceOrPurchase(line) {
		return "", false
	}
	return line, true
}

// ParseAddress2 accepts a line with no structural signature at all,
// e.g. "Suite 400" or "Building C".
func ParseAddress2(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || !IsDepartmentLine(line) {
		return "", false
	}
	return line, true
}

// ParseCityStateZip accepts a "City, ST 12345" line.
func ParseCityStateZip(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !IsCityStateZip(line) {
		return "", false
	}
	return line, true
}

// ParseContact accepts any non-empty line without a phone number, an email
// address, or an invoice/purchase prefix.
func ParseContact(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	if ContainsEmailAddress(line) || ContainsPhoneNumber(line) || StartsWithInvoiceOrPurchase(line) {
		return "", false
	}
	return line, true
}

// ParsePhone matches a line starting with one of the configured labels and
// returns the column it belongs to (Tel or Cell) and the number.
// Tel labels are tried first.
func ParsePhone(line string, labels config.PhoneLabels) (key string, number string, ok bool) {
	line = strings.TrimSpace(line)
	groups := []struct {
		key      string
		prefixes []string
	}{
		{types.FieldTel, labels.Tel},
		{types.FieldCell, labels.Cell},
	}

	for _, group := range groups {
		if !hasAnyPrefix(line, group.prefixes) {
			continue
		}
		if match := labelledPhonePattern.FindString(line); match != "" {
			return group.key, match, true
		}
	}
	return "", "", false
}

// ParseEmail treats any line containing "@" as the email line and returns
// its last whitespace-delimited token. Trailing punctuation is kept as is;
// the validation package reports it.
func ParseEmail(line string) (string, bool) {
	if !strings.Contains(line, "@") {
		return "", false
	}
	tokens := strings.Fields(line)
	return tokens[len(tokens)-1], true
}

// ParseLabelledValue returns the trimmed text after the first colon.
func ParseLabelledValue(line string) (string, bool) {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
