package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/types"
)

func newRecord(fields map[string]string, items ...types.LineItem) *types.Record {
	record := types.NewRecord()
	for _, key := range []string{types.FieldDate, types.FieldEmail, types.FieldFreight} {
		if value, ok := fields[key]; ok {
			record.Set(key, value)
		}
	}
	record.Items = items
	return record
}

func rules(findings []*ValidationError) []string {
	var names []string
	for _, f := range findings {
		names = append(names, f.Rule)
	}
	return names
}

func TestValidateRecord_Clean(t *testing.T) {
	record := newRecord(map[string]string{
		types.FieldDate:    "03/04/2024",
		types.FieldEmail:   "jane@acme.com",
		types.FieldFreight: "10.00",
	},
		types.LineItem{Description: "Widget", PricePerItem: "10.00", Quantity: "2", TotalPrice: "20.00"},
		types.LineItem{Description: "Thing", PricePerItem: "1.25", Quantity: "10", TotalPrice: "12.50"},
	)

	result := NewValidator().ValidateRecord(record)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 9, result.FieldsValidated)
}

func TestValidateRecord_Warnings(t *testing.T) {
	record := newRecord(map[string]string{
		types.FieldDate:    "2024-03-04",
		types.FieldEmail:   "jane@acme.com.",
		types.FieldFreight: "10.0.0",
	},
		types.LineItem{Description: "Widget", PricePerItem: "10.00", Quantity: "2", TotalPrice: "25.00"},
		types.LineItem{Description: "Gadget", PricePerItem: "", Quantity: "4", TotalPrice: "22.00"},
	)

	result := NewValidator().ValidateRecord(record)
	assert.True(t, result.IsValid, "warnings are not fatal")
	assert.Equal(t, 5, result.WarningCount)
	assert.Equal(t, []string{RuleDateFormat, RuleDecimal, RuleEmail, RuleLineTotal, RuleDecimal}, rules(result.Errors))

	lineTotal := result.Errors[3]
	assert.Equal(t, 0, lineTotal.ItemIndex)
	assert.Equal(t, types.FieldTotalPrice, lineTotal.Field)
	assert.Contains(t, lineTotal.Message, "20.00")

	assert.Equal(t, 1, result.Errors[4].ItemIndex)
	assert.Equal(t, -1, result.Errors[0].ItemIndex)
}

func TestValidateRecord_NoItems(t *testing.T) {
	record := newRecord(map[string]string{types.FieldDate: "03/04/2024"})

	findings := Validate(record)
	require.Len(t, findings, 1)
	assert.Equal(t, RuleItems, findings[0].Rule)
}

func TestValidateRecord_WarningsAsErrors(t *testing.T) {
	options := DefaultValidationOptions()
	options.TreatWarningsAsErrors = true

	result := NewValidatorWithOptions(options).ValidateRecord(newRecord(map[string]string{types.FieldDate: "soon"}))
	assert.False(t, result.IsValid)
	assert.Equal(t, 2, result.ErrorCount)
	assert.Equal(t, "error", result.Errors[0].Severity)
}

func TestValidateLineItem_Tolerance(t *testing.T) {
	v := NewValidator()

	findings, checked := v.ValidateLineItem(0, types.LineItem{PricePerItem: "0.333", Quantity: "3", TotalPrice: "1.00"})
	assert.Empty(t, findings)
	assert.Equal(t, 3, checked)

	findings, _ = v.ValidateLineItem(0, types.LineItem{PricePerItem: "0.32", Quantity: "3", TotalPrice: "1.00"})
	assert.Len(t, findings, 1)
}

func TestValidateEmail(t *testing.T) {
	assert.Empty(t, validateEmail("jane@acme.com"))
	assert.NotEmpty(t, validateEmail("(preferred)"))
	assert.NotEmpty(t, validateEmail("jane@acme.com,"))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Severity: "warning", Field: "Quantity", Value: "x", Message: "bad", ItemIndex: 2}
	assert.Equal(t, "[WARNING] Item 2, Field 'Quantity': bad (value: 'x')", err.Error())

	err.ItemIndex = -1
	assert.Equal(t, "[WARNING] Field 'Quantity': bad (value: 'x')", err.Error())
}
