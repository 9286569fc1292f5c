package textparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/types"
)

func stream(lines ...string) LineStream {
	return LineStream{lines: lines}
}

func field(t *testing.T, record *types.Record, key string) string {
	t.Helper()
	value, ok := record.Get(key)
	require.True(t, ok, "missing field %q", key)
	return value
}

func TestNewLineStream(t *testing.T) {
	lines := NewLineStream("\n\n  first  \r\nsecond\n\n  third\n\n")
	require.Equal(t, 4, lines.Len())
	assert.Equal(t, "first", lines.At(0))
	assert.Equal(t, "second", lines.At(1))
	assert.Equal(t, "", lines.At(2))
	assert.Equal(t, "third", lines.At(3))

	assert.Equal(t, 0, NewLineStream(" \n\t\n").Len())
}

func TestFindHeader(t *testing.T) {
	headers := config.DefaultProductHeaders
	lines := stream(
		"ACME",
		"Description Quantity Price Total Price",
		"Widget 1 2 3",
		"Product Description Cost per Item Qty Price",
	)

	assert.Equal(t, types.Cursor(1), FindHeader(lines, 0, headers))
	assert.Equal(t, types.Cursor(3), FindHeader(lines, 2, headers))
	assert.Equal(t, types.NoCursor, FindHeader(lines, 4, headers))
	assert.Equal(t, types.NoCursor, FindHeader(lines, types.NoCursor, headers))
}

func TestParseMainSection(t *testing.T) {
	lines := stream(
		"March 4, 2024",
		"1200 West Main Street",
		"Suite 400",
		"Springfield, IL 62704",
		"Jane Doe",
		"Purchasing Department",
		"Tel: 555-123-4567",
		"Email: jane@acme.com",
		"Invoice: INV-1001",
		"Purchase Order: PO-77",
		"Product Description Cost per Item Qty Price",
		"Widget Large $10.00 2 $20.00",
	)

	p := newTestParser(t)
	record, result := p.ParseMainSection(lines, 1)

	assert.Equal(t, types.StageOK, result.Status)
	assert.Equal(t, types.Cursor(1), result.Start)
	assert.Equal(t, types.Cursor(10), result.End)

	assert.Equal(t, []string{
		types.FieldAddress1,
		types.FieldAddress2,
		types.FieldCityStateZip,
		"Contact 1",
		"Contact 2",
		types.FieldTel,
		types.FieldEmail,
		types.FieldInvoice,
		types.FieldPurchaseOrder,
	}, record.Keys())

	assert.Equal(t, "1200 West Main Street", field(t, record, types.FieldAddress1))
	assert.Equal(t, "Suite 400", field(t, record, types.FieldAddress2))
	assert.Equal(t, "Springfield, IL 62704", field(t, record, types.FieldCityStateZip))
	assert.Equal(t, "Jane Doe", field(t, record, "Contact 1"))
	assert.Equal(t, "Purchasing Department", field(t, record, "Contact 2"))
	assert.Equal(t, "555-123-4567", field(t, record, types.FieldTel))
	assert.Equal(t, "jane@acme.com", field(t, record, types.FieldEmail))
	assert.Equal(t, "INV-1001", field(t, record, types.FieldInvoice))
	assert.Equal(t, "PO-77", field(t, record, types.FieldPurchaseOrder))
}

func TestParseMainSection_CellPhone(t *testing.T) {
	lines := stream(
		"P.O. Box 42",
		"Springfield, IL 62704",
		"Mobile 555.987.6543",
		"Product Description",
	)

	p := newTestParser(t)
	record, result := p.ParseMainSection(lines, 0)

	assert.Equal(t, types.Cursor(3), result.End)
	assert.Equal(t, "P.O. Box 42", field(t, record, types.FieldAddress1))
	assert.Equal(t, "555.987.6543", field(t, record, types.FieldCell))
	_, hasTel := record.Get(types.FieldTel)
	assert.False(t, hasTel)
}

func TestParseMainSection_StopsAtHeader(t *testing.T) {
	lines := stream(
		"Jane Doe",
		"Product Description",
		"Not A Contact 1 2 3",
	)

	p := newTestParser(t)
	record, result := p.ParseMainSection(lines, 0)

	assert.Equal(t, types.Cursor(1), result.End)
	assert.Equal(t, []string{"Contact 1"}, record.Keys())
}

func TestParseMainSection_HeaderNotFound(t *testing.T) {
	lines := stream(
		"1 Main Street",
		"Jane Doe",
	)

	p := newTestParser(t)
	record, result := p.ParseMainSection(lines, 0)

	assert.Equal(t, types.StageDegraded, result.Status)
	assert.ErrorIs(t, result.Err, ErrHeaderNotFound)
	assert.Equal(t, types.Cursor(2), result.End)

	// Without a header the whole stream is the header block; the free text
	// line right after the street lands in Address 2.
	assert.Equal(t, "1 Main Street", field(t, record, types.FieldAddress1))
	assert.Equal(t, "Jane Doe", field(t, record, types.FieldAddress2))
}

func TestParseInvoiceAndPurchaseOrder(t *testing.T) {
	tests := []struct {
		name    string
		lines   LineStream
		start   types.Cursor
		invoice string
		po      string
		end     types.Cursor
		status  types.StageStatus
	}{
		{
			name:    "both found, later index wins",
			lines:   stream("Header", "Invoice: INV-9", "notes", "Purchase Order: PO-3", "Invoice: later"),
			start:   0,
			invoice: "INV-9",
			po:      "PO-3",
			end:     3,
		},
		{
			name:  "purchase order only",
			lines: stream("Header", "Purchase Order: 55"),
			start: 0,
			po:    "55",
			end:   1,
		},
		{
			name:    "invoice only",
			lines:   stream("Header", "x", "Invoice: A-1", "y"),
			start:   1,
			invoice: "A-1",
			end:     2,
		},
		{
			name:   "lines before start are not read",
			lines:  stream("Invoice: old", "Header"),
			start:  1,
			end:    1,
			status: types.StageDegraded,
		},
		{
			name:   "prefix without colon is ignored",
			lines:  stream("Invoice 123", "Purchase order 9"),
			start:  0,
			end:    0,
			status: types.StageDegraded,
		},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, result := p.ParseInvoiceAndPurchaseOrder(tt.lines, tt.start)

			invoice, _ := record.Get(types.FieldInvoice)
			po, _ := record.Get(types.FieldPurchaseOrder)
			assert.Equal(t, tt.invoice, invoice)
			assert.Equal(t, tt.po, po)
			assert.Equal(t, tt.end, result.End)
			assert.Equal(t, tt.status, result.Status)
			if tt.status == types.StageDegraded {
				assert.ErrorIs(t, result.Err, ErrInvoiceNotFound)
			}
		})
	}
}

func TestParseInvoiceAndPurchaseOrder_NoBoundary(t *testing.T) {
	p := newTestParser(t)
	record, result := p.ParseInvoiceAndPurchaseOrder(stream("Invoice: 1"), types.NoCursor)

	assert.True(t, record.Empty())
	assert.ErrorIs(t, result.Err, ErrNoBoundary)
}

func TestParseProducts(t *testing.T) {
	lines := stream(
		"Jane Doe",
		"Product Description Cost per Item Qty Price",
		"Widget Large $10.00 2 $20.00",
		"Subtotal 52.50",
		"Gadget $5.50 4 $22.00",
		"",
		"Thing Small Blue $1.25 10 $12.50",
		"Freight 10.00 1 10.00",
		"Tax 1.00 1 1.00",
	)

	p := newTestParser(t)
	items, result := p.ParseProducts(lines, 0)

	assert.Equal(t, types.StageOK, result.Status)
	assert.Equal(t, types.Cursor(7), result.End)
	assert.Equal(t, []types.LineItem{
		{Description: "Widget Large", PricePerItem: "10.00", Quantity: "2", TotalPrice: "20.00", Line: 2},
		{Description: "Gadget", PricePerItem: "5.50", Quantity: "4", TotalPrice: "22.00", Line: 4},
		{Description: "Thing Small Blue", PricePerItem: "1.25", Quantity: "10", TotalPrice: "12.50", Line: 6},
	}, items)
}

func TestParseProducts_FreightNotFound(t *testing.T) {
	lines := stream(
		"Product Description",
		"Widget $1.00 1 $1.00",
	)

	p := newTestParser(t)
	items, result := p.ParseProducts(lines, 0)

	assert.Len(t, items, 1)
	assert.Equal(t, types.StageDegraded, result.Status)
	assert.ErrorIs(t, result.Err, ErrFreightNotFound)
	assert.Equal(t, types.NoCursor, result.End)
}

func TestParseProducts_HeaderNotFound(t *testing.T) {
	p := newTestParser(t)
	items, result := p.ParseProducts(stream("Widget $1.00 1 $1.00", "Freight: 2.00"), 0)

	assert.Empty(t, items)
	assert.Equal(t, types.StageDegraded, result.Status)
	assert.ErrorIs(t, result.Err, ErrHeaderNotFound)
	assert.Equal(t, types.NoCursor, result.End)
}

func TestParseFreight(t *testing.T) {
	tests := []struct {
		name  string
		lines LineStream
		start types.Cursor
		value string
		found bool
	}{
		{"colon", stream("Freight: $10.00"), 0, "10.00", true},
		{"no colon", stream("x", "Freight $7.25"), 0, "7.25", true},
		{"first freight line", stream("Freight: 1.00", "Freight: 2.00"), 1, "2.00", true},
		{"missing", stream("Total 10.00"), 0, "", false},
		{"before start", stream("Freight: 1.00", "Total"), 1, "", false},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, result := p.ParseFreight(tt.lines, tt.start)

			value, ok := record.Get(types.FieldFreight)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.value, value)
			if tt.found {
				assert.Equal(t, types.StageOK, result.Status)
			} else {
				assert.ErrorIs(t, result.Err, ErrFreightNotFound)
				assert.Equal(t, types.NoCursor, result.End)
			}
		})
	}
}

func TestParseFreight_NoBoundary(t *testing.T) {
	p := newTestParser(t)
	record, result := p.ParseFreight(stream("Freight: 1.00"), types.NoCursor)

	assert.True(t, record.Empty())
	assert.Equal(t, types.StageDegraded, result.Status)
	assert.ErrorIs(t, result.Err, ErrNoBoundary)
}
