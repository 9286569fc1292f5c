// =============================================================================
// PDF to XLSX Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - textparser
//   - validation
//   - converter
//
// =============================================================================

package types

// =============================================================================
// FIELD NAMES
// =============================================================================

// Column names written to the spreadsheet header row.
const (
	FieldDate          = "Date"
	FieldAddress1      = "Address 1"
	FieldAddress2      = "Address 2"
	FieldCityStateZip  = "City, State, Zip"
	FieldEmail         = "Email"
	FieldInvoice       = "Invoice"
	FieldPurchaseOrder = "Purchase Order"
	FieldFreight       = "Freight"
	FieldTel           = "Tel"
	FieldCell          = "Cell"
	FieldContactPrefix = "Contact"
	FieldProductDesc   = "Product_Description"
	FieldPricePerItem  = "Price_Per_Product"
	FieldQuantity      = "Quantity"
	FieldTotalPrice    = "Total_Price"
)

// =============================================================================
// LINE ITEM
// =============================================================================

// LineItem represents a single product row from the document's item table.
// All monetary values are already currency-cleaned strings.
type LineItem struct {
	// Description is every token before the last three, joined by spaces.
	Description string

	// PricePerItem is the third-to-last token.
	PricePerItem string

	// Quantity is the second-to-last token.
	Quantity string

	// TotalPrice is the last token.
	TotalPrice string

	// Line is the index of the source line in the line stream.
	Line int
}

// =============================================================================
// RECORD
// =============================================================================

// Record is the flat field map extracted from one document.
// Keys keep the order in which they were first set so that the
// spreadsheet row is identical across runs on the same input.
type Record struct {
	fields map[string]string
	order  []string

	// Items holds the parsed line items in appearance order. Their values
	// are also present in the flat field map under indexed keys.
	Items []LineItem
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]string)}
}

// Set stores a value. Overwriting a key keeps its original column position.
func (r *Record) Set(key, value string) {
	if _, exists := r.fields[key]; !exists {
		r.order = append(r.order, key)
	}
	r.fields[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Merge copies every field of other into r, in other's order.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	for _, key := range other.order {
		r.Set(key, other.fields[key])
	}
}

// Keys returns the field names in column order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.order)
}

// Empty reports whether no field has been set.
func (r *Record) Empty() bool {
	return len(r.order) == 0
}

// Row returns the header row and the value row for the spreadsheet.
func (r *Record) Row() (headers []string, values []string) {
	headers = r.Keys()
	values = make([]string, len(headers))
	for i, key := range headers {
		values[i] = r.fields[key]
	}
	return headers, values
}

// =============================================================================
// CURSOR
// =============================================================================

// Cursor is a read position in a line stream.
// NoCursor means "nothing more to parse" and is returned by stages that
// could not locate their section.
type Cursor int

// NoCursor is the absent boundary.
const NoCursor Cursor = -1

// Valid reports whether the cursor points at a position.
func (c Cursor) Valid() bool {
	return c >= 0
}

// =============================================================================
// STAGE STATUS
// =============================================================================

// StageStatus is the outcome of one parsing stage.
type StageStatus int

const (
	// StageOK means the stage found its section.
	StageOK StageStatus = iota

	// StageDegraded means the stage substituted a default or empty value.
	StageDegraded

	// StageFailed means the stage could not continue and the record
	// must be abandoned.
	StageFailed
)

// String returns the lowercase name of the status.
func (s StageStatus) String() string {
	switch s {
	case StageOK:
		return "ok"
	case StageDegraded:
		return "degraded"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StageResult describes how one stage ended.
type StageResult struct {
	Stage  string
	Status StageStatus
	Start  Cursor
	End    Cursor
	Err    error
}
