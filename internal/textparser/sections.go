package textparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/PDF-to-XLSX-conversion/internal/types"
)

// freightPrefix starts the line that ends the product table.
const freightPrefix = "Freight"

// =============================================================================
// PRODUCT HEADER
// =============================================================================

// FindHeader returns the index of the first line at or after start that
// begins with one of the product table header prefixes, or NoCursor.
func FindHeader(lines LineStream, start types.Cursor, headers []string) types.Cursor {
	if !start.Valid() {
		return types.NoCursor
	}
	for i := int(start); i < lines.Len(); i++ {
		line := lines.At(i)
		for _, header := range headers {
			if strings.HasPrefix(line, header) {
				return types.Cursor(i)
			}
		}
	}
	return types.NoCursor
}

// =============================================================================
// MAIN SECTION
// =============================================================================

// ParseMainSection consumes the header block (address, city/state/zip,
// contacts, phone, email) from start up to the product table header.
//
// Each iteration tries, in order: Address 1 (and Address 2 right after it),
// City/State/Zip, a run of contacts, a labelled phone, an email, and an
// invoice/purchase line. The cursor then advances by one whatever matched,
// so the loop always ends at the header.
//
// RETURNS:
//   - The fields found in the block.
//   - The stage result; End is the header index. Without a header the whole
//     rest of the stream is read, End is the stream length, and the stage
//     is degraded with ErrHeaderNotFound.
func (p *Parser) ParseMainSection(lines LineStream, start types.Cursor) (*types.Record, types.StageResult) {
	record := types.NewRecord()
	result := types.StageResult{Stage: StageMain, Start: start}

	stop := FindHeader(lines, start, p.settings.ProductHeaders)
	if !stop.Valid() {
		stop = types.Cursor(lines.Len())
		result.Status = types.StageDegraded
		result.Err = ErrHeaderNotFound
	}
	result.End = stop

	end := int(stop)
	current := int(start)
	contactCount := 0

	for current < end {
		line := lines.At(current)

		// advance moves to the next line and reports whether it is still
		// inside the block.
		advance := func() bool {
			current++
			if current >= end {
				return false
			}
			line = lines.At(current)
			return true
		}

		if address1, ok := ParseAddress1(line); ok {
			record.Set(types.FieldAddress1, address1)
			if !advance() {
				break
			}
			if address2, ok := ParseAddress2(line); ok {
				record.Set(types.FieldAddress2, address2)
				if !advance() {
					break
				}
			}
		}

		if cityStateZip, ok := ParseCityStateZip(line); ok {
			record.Set(types.FieldCityStateZip, cityStateZip)
			if !advance() {
				break
			}
		}

		inBlock := true
		for {
			contact, ok := ParseContact(line)
			if !ok {
				break
			}
			contactCount++
			record.Set(fmt.Sprintf("%s %d", types.FieldContactPrefix, contactCount), contact)
			if inBlock = advance(); !inBlock {
				break
			}
		}
		if !inBlock {
			break
		}

		if key, number, ok := ParsePhone(line, p.settings.PhoneLabels); ok {
			record.Set(key, number)
			if !advance() {
				break
			}
		}

		if email, ok := ParseEmail(line); ok {
			record.Set(types.FieldEmail, email)
			if !advance() {
				break
			}
		}

		if StartsWithInvoiceOrPurchase(line) {
			if value, ok := ParseLabelledValue(line); ok {
				record.Set(invoiceField(line), value)
			}
		}

		current++
	}

	return record, result
}

// invoiceField maps an invoice/purchase line to its column.
func invoiceField(line string) string {
	if strings.HasPrefix(strings.ToLower(line), "invoice") {
		return types.FieldInvoice
	}
	return types.FieldPurchaseOrder
}

// =============================================================================
// INVOICE / PURCHASE ORDER
// =============================================================================

// ParseInvoiceAndPurchaseOrder scans forward from start for the first line
// beginning with "Invoice" and the first beginning with "Purchase", taking
// each value after the colon. Scanning stops once both are found.
//
// The returned End is the later of the two line indices, the only one found,
// or start when neither was found.
func (p *Parser) ParseInvoiceAndPurchaseOrder(lines LineStream, start types.Cursor) (*types.Record, types.StageResult) {
	record := types.NewRecord()
	result := types.StageResult{Stage: StageInvoice, Start: start, End: start}

	if !start.Valid() {
		result.Status = types.StageDegraded
		result.Err = ErrNoBoundary
		return record, result
	}

	invoiceLine, poLine := types.NoCursor, types.NoCursor
	for i := int(start); i < lines.Len(); i++ {
		line := lines.At(i)

		if !invoiceLine.Valid() && strings.HasPrefix(line, "Invoice") {
			if value, ok := ParseLabelledValue(line); ok {
				record.Set(types.FieldInvoice, value)
				invoiceLine = types.Cursor(i)
			}
		}
		if !poLine.Valid() && strings.HasPrefix(line, "Purchase") {
			if value, ok := ParseLabelledValue(line); ok {
				record.Set(types.FieldPurchaseOrder, value)
				poLine = types.Cursor(i)
			}
		}
		if invoiceLine.Valid() && poLine.Valid() {
			break
		}
	}

	switch {
	case invoiceLine.Valid() && poLine.Valid():
		result.End = max(invoiceLine, poLine)
	case invoiceLine.Valid():
		result.End = invoiceLine
	case poLine.Valid():
		result.End = poLine
	default:
		result.Status = types.StageDegraded
		result.Err = ErrInvoiceNotFound
	}

	return record, result
}

// =============================================================================
// PRODUCTS
// =============================================================================

// ParseProducts locates the product header at or after start and reads one
// line item from every following line with at least four whitespace
// separated tokens: the last three are price per item, quantity, and total
// price, the rest is the description.
//
// Reading stops at the first line starting with "Freight" (End is its index)
// or at the end of the stream (End is NoCursor, ErrFreightNotFound). Without
// a header no items are read and End is NoCursor (ErrHeaderNotFound).
func (p *Parser) ParseProducts(lines LineStream, start types.Cursor) ([]types.LineItem, types.StageResult) {
	result := types.StageResult{Stage: StageProducts, Start: start, End: types.NoCursor}

	header := FindHeader(lines, start, p.settings.ProductHeaders)
	if !header.Valid() {
		p.logger.Debug("Product header not found after line %d", start)
		result.Status = types.StageDegraded
		result.Err = ErrHeaderNotFound
		return nil, result
	}

	var items []types.LineItem
	for i := int(header) + 1; i < lines.Len(); i++ {
		line := lines.At(i)
		if strings.HasPrefix(line, freightPrefix) {
			result.End = types.Cursor(i)
			return items, result
		}

		tokens := strings.Fields(line)
		if len(tokens) < 4 {
			continue
		}
		n := len(tokens)
		items = append(items, types.LineItem{
			Description:  strings.Join(tokens[:n-3], " "),
			PricePerItem: CleanCurrency(tokens[n-3]),
			Quantity:     CleanCurrency(tokens[n-2]),
			TotalPrice:   CleanCurrency(tokens[n-1]),
			Line:         i,
		})
	}

	result.Status = types.StageDegraded
	result.Err = ErrFreightNotFound
	return items, result
}

// =============================================================================
// FREIGHT
// =============================================================================

// ParseFreight finds the first "Freight" line at or after start and records
// the amount after the colon, or after the word "Freight" when there is no
// colon. A missing line leaves the field out of the record.
func (p *Parser) ParseFreight(lines LineStream, start types.Cursor) (*types.Record, types.StageResult) {
	record := types.NewRecord()
	result := types.StageResult{Stage: StageFreight, Start: start, End: types.NoCursor}

	if !start.Valid() {
		result.Status = types.StageDegraded
		result.Err = ErrNoBoundary
		return record, result
	}

	for i := int(start); i < lines.Len(); i++ {
		line := lines.At(i)
		if !strings.HasPrefix(line, freightPrefix) {
			continue
		}

		value, ok := ParseLabelledValue(line)
		if !ok {
			value = strings.TrimSpace(strings.TrimPrefix(line, freightPrefix))
		}
		record.Set(types.FieldFreight, CleanCurrency(value))
		result.End = types.Cursor(i)
		return record, result
	}

	result.Status = types.StageDegraded
	result.Err = ErrFreightNotFound
	return record, result
}
