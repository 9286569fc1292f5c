package textparser

import (
	"regexp"
	"strings"
)

// =============================================================================
// LINE PATTERNS
// =============================================================================
//
// Every classifier looks at one trimmed line and nothing else. None of them
// depends on the cursor position or on neighbouring lines.

var (
	// traditionalAddressPattern matches a street number followed by words,
	// e.g. "1200 West Main Street".
	traditionalAddressPattern = regexp.MustCompile(`^\d+\s[\w\s]+`)

	// poBoxPattern matches "P.O. Box 12", "PO Box 12", "po box 12".
	poBoxPattern = regexp.MustCompile(`(?i)^P\.?O\.?\s*Box\s+\d+`)

	// cityStateZipPattern matches "Springfield, IL 62704".
	cityStateZipPattern = regexp.MustCompile(`^[\w\s]+,\s*\w+\s+\d+`)

	// phonePattern matches NANP numbers with optional +1 and separators.
	phonePattern = regexp.MustCompile(`((\+?1\s*)?(\(\d{3}\)\s*|\d{3}[-.\s]?)\d{3}[-.\s]?\d{4})`)

	// emailPattern is a loose address pattern, good enough to classify a line.
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// =============================================================================
// CLASSIFIERS
// =============================================================================

// IsTraditionalAddress reports whether the line starts with a street number.
func IsTraditionalAddress(line string) bool {
	return traditionalAddressPattern.MatchString(line)
}

// IsPoBoxAddress reports whether the line starts with a P.O. Box.
func IsPoBoxAddress(line string) bool {
	return poBoxPattern.MatchString(line)
}

// IsCityStateZip reports whether the line looks like "City, ST 12345".
func IsCityStateZip(line string) bool {
	return cityStateZipPattern.MatchString(line)
}

// ContainsPhoneNumber reports whether a phone number appears anywhere in the line.
func ContainsPhoneNumber(line string) bool {
	return phonePattern.MatchString(line)
}

// ContainsEmailAddress reports whether an email address appears anywhere in the line.
func ContainsEmailAddress(line string) bool {
	return emailPattern.MatchString(line)
}

// StartsWithInvoiceOrPurchase is a case-insensitive prefix test.
func StartsWithInvoiceOrPurchase(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "invoice") || strings.HasPrefix(lower, "purchase")
}

// IsDepartmentLine is the residual classification: the line matches none of
// the structural patterns, so it is free text such as a department or
// company name.
func IsDepartmentLine(line string) bool {
	return !IsTraditionalAddress(line) &&
		!IsPoBoxAddress(line) &&
		!IsCityStateZip(line) &&
		!ContainsPhoneNumber(line) &&
		!ContainsEmailAddress(line) &&
		!StartsWithInvoiceOrPurchase(line)
}
