// =============================================================================
// PDF to XLSX Converter - Record Validation
// =============================================================================
//
// This module checks a parsed record for values that are probably wrong.
// The parser is heuristic, so none of these findings stops a conversion:
// every finding is a warning that the converter logs next to the output.
//
// CHECKS:
//   - Date is in MM/DD/YYYY form
//   - Freight and every line item amount parse as decimal numbers
//   - Each line item's total equals price per item times quantity
//   - Email is a clean address (the last-token rule of the parser keeps
//     trailing punctuation and can pick a non-address token)
//   - The record has at least one line item
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/textparser"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/types"
)

// Rule names reported in ValidationError.Rule.
const (
	RuleDateFormat = "date_format"
	RuleDecimal    = "decimal"
	RuleLineTotal  = "line_total"
	RuleEmail      = "email"
	RuleItems      = "items"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is "warning" or "error".
	Severity string

	// Field is the record column the finding is about.
	Field string

	// Value is the value that failed the check.
	Value string

	// Rule is the check that was violated.
	Rule string

	// Message is a human-readable description.
	Message string

	// ItemIndex is the line item index, or -1 for record-level fields.
	ItemIndex int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.ItemIndex >= 0 {
		return fmt.Sprintf("[%s] Item %d, Field '%s': %s (value: '%s')",
			strings.ToUpper(e.Severity), e.ItemIndex, e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("[%s] Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity), e.Field, e.Message, e.Value)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal findings.
	IsValid bool

	// Errors contains all findings, warnings included.
	Errors []*ValidationError

	// ErrorCount is the number of fatal findings.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// FieldsValidated is the number of values checked.
	FieldsValidated int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// TreatWarningsAsErrors makes every finding fatal.
	// Default: false
	TreatWarningsAsErrors bool

	// LineTotalTolerance is the largest accepted difference between a line
	// total and price times quantity.
	// Default: 0.01
	LineTotalTolerance decimal.Decimal
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		TreatWarningsAsErrors: false,
		LineTotalTolerance:    decimal.New(1, -2),
	}
}

// Validator checks parsed records.
type Validator struct {
	options ValidationOptions
}

// NewValidator creates a Validator with the default options.
func NewValidator() *Validator {
	return NewValidatorWithOptions(DefaultValidationOptions())
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// Validate checks a record with the default options and returns its findings.
func Validate(record *types.Record) []*ValidationError {
	return NewValidator().ValidateRecord(record).Errors
}

// ValidateRecord runs every check on one record.
//
// PARAMETERS:
//   - record: The record produced by the text parser.
//
// RETURNS:
//   - The collected findings and counters.
func (v *Validator) ValidateRecord(record *types.Record) *ValidationResult {
	result := &ValidationResult{IsValid: true}
	if record == nil {
		return result
	}

	var findings []*ValidationError

	if date, ok := record.Get(types.FieldDate); ok {
		result.FieldsValidated++
		if _, err := time.Parse(textparser.DateFormat, date); err != nil {
			findings = append(findings, warning(types.FieldDate, date, RuleDateFormat, -1,
				"date is not in MM/DD/YYYY form"))
		}
	}

	if freight, ok := record.Get(types.FieldFreight); ok {
		result.FieldsValidated++
		if _, msg := parseAmount(freight); msg != "" {
			findings = append(findings, warning(types.FieldFreight, freight, RuleDecimal, -1, msg))
		}
	}

	if email, ok := record.Get(types.FieldEmail); ok {
		result.FieldsValidated++
		if msg := validateEmail(email); msg != "" {
			findings = append(findings, warning(types.FieldEmail, email, RuleEmail, -1, msg))
		}
	}

	if len(record.Items) == 0 {
		findings = append(findings, warning(types.FieldProductDesc, "", RuleItems, -1,
			"no line items found"))
	}
	for i, item := range record.Items {
		itemFindings, checked := v.ValidateLineItem(i, item)
		findings = append(findings, itemFindings...)
		result.FieldsValidated += checked
	}

	for _, finding := range findings {
		if v.options.TreatWarningsAsErrors {
			finding.Severity = "error"
		}
		if finding.Severity == "error" {
			result.ErrorCount++
			result.IsValid = false
		} else {
			result.WarningCount++
		}
	}
	result.Errors = findings

	return result
}

// ValidateLineItem checks the amounts of one line item.
//
// RETURNS:
//   - The findings for the item.
//   - The number of values checked.
func (v *Validator) ValidateLineItem(index int, item types.LineItem) ([]*ValidationError, int) {
	var findings []*ValidationError

	amounts := []struct {
		field string
		value string
	}{
		{types.FieldPricePerItem, item.PricePerItem},
		{types.FieldQuantity, item.Quantity},
		{types.FieldTotalPrice, item.TotalPrice},
	}

	parsed := make([]decimal.Decimal, len(amounts))
	valid := true
	for i, amount := range amounts {
		value, msg := parseAmount(amount.value)
		if msg != "" {
			findings = append(findings, warning(amount.field, amount.value, RuleDecimal, index, msg))
			valid = false
			continue
		}
		parsed[i] = value
	}

	if valid {
		price, quantity, total := parsed[0], parsed[1], parsed[2]
		expected := price.Mul(quantity)
		if expected.Sub(total).Abs().GreaterThan(v.options.LineTotalTolerance) {
			findings = append(findings, warning(types.FieldTotalPrice, item.TotalPrice, RuleLineTotal, index,
				fmt.Sprintf("total does not match %s x %s = %s", price, quantity, expected.StringFixed(2))))
		}
	}

	return findings, len(amounts)
}

// =============================================================================
// HELPERS
// =============================================================================

func warning(field, value, rule string, item int, message string) *ValidationError {
	return &ValidationError{
		Severity:  "warning",
		Field:     field,
		Value:     value,
		Rule:      rule,
		Message:   message,
		ItemIndex: item,
	}
}

// parseAmount parses a currency-cleaned value.
func parseAmount(value string) (decimal.Decimal, string) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, "amount is empty"
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Sprintf("Value '%s' is not a valid decimal number", value)
	}
	return amount, ""
}

// validateEmail reports when the value is not exactly one email address.
func validateEmail(value string) string {
	address, ok := textparser.IsolateEmail(value)
	switch {
	case !ok:
		return "value is not an email address"
	case address != value:
		return fmt.Sprintf("value has extra characters around %q", address)
	default:
		return ""
	}
}
