package segregation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one output record. Identity columns hold text; segregation value
// columns hold decimals once normalized. A cell may arrive as raw text (from
// an extra-record or SANTOM file) and is converted by NormalizeAmounts.
type Row struct {
	text    map[Column]string
	amounts map[Column]decimal.Decimal
}

// NewRow creates an empty row
func NewRow() *Row {
	return &Row{
		text:    make(map[Column]string),
		amounts: make(map[Column]decimal.Decimal),
	}
}

// SetText stores a raw text value for the column
func (r *Row) SetText(c Column, value string) {
	r.text[c] = value
	delete(r.amounts, c)
}

// Text returns the raw text value for the column, or "" when unset
func (r *Row) Text(c Column) string {
	return r.text[c]
}

// SetAmount stores a typed numeric value for the column
func (r *Row) SetAmount(c Column, value decimal.Decimal) {
	r.amounts[c] = value
	delete(r.text, c)
}

// Amount returns the numeric value for the column, zero when unset.
// Text cells that have not been normalized also read as zero.
func (r *Row) Amount(c Column) decimal.Decimal {
	return r.amounts[c]
}

// parseAmountStrict converts a raw cell to a decimal. ok is false for blank,
// "NA" (any case, trimmed) and unparsable values.
func parseAmountStrict(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "NA") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(trimmed, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseAmount converts a raw cell to a decimal, reading unparsable values
// as zero.
func parseAmount(raw string) decimal.Decimal {
	d, _ := parseAmountStrict(raw)
	return d
}

// hasNumericCell reports whether the column holds a readable number, either
// already typed or as parseable text.
func (r *Row) hasNumericCell(c Column) bool {
	if _, ok := r.amounts[c]; ok {
		return true
	}
	_, ok := parseAmountStrict(r.text[c])
	return ok
}

// NormalizeAmounts converts every numeric segregation column still held as
// text into a decimal, treating blank/NA/malformed cells as zero. Identity
// and sentinel columns are left untouched.
func (r *Row) NormalizeAmounts() {
	for _, c := range NumericColumns() {
		if _, ok := r.amounts[c]; ok {
			continue
		}
		raw, hadText := r.text[c]
		r.amounts[c] = parseAmount(raw)
		if hadText {
			delete(r.text, c)
		}
	}
}

// IsZero reports whether every numeric segregation column is zero. Rows must
// be normalized first; un-normalized text cells read as zero.
func (r *Row) IsZero() bool {
	for _, c := range NumericColumns() {
		if !r.Amount(c).IsZero() {
			return false
		}
	}
	return true
}

// Segment returns the row's segment indicator
func (r *Row) Segment() string {
	return r.text[ColH]
}

// CPCode returns the row's CP code
func (r *Row) CPCode() string {
	return r.text[ColD]
}

// AccountType returns the row's account type ("C" or "P")
func (r *Row) AccountType() string {
	return r.text[ColG]
}

// Render serializes one cell for the output file. Sentinel columns always
// render "NA"; numeric columns render as plain numbers with no separators.
func (r *Row) Render(c Column) string {
	if IsSentinel(c) {
		return "NA"
	}
	if IsNumeric(c) {
		if d, ok := r.amounts[c]; ok {
			return d.String()
		}
		if raw, ok := r.text[c]; ok {
			return raw
		}
		return "0"
	}
	return r.text[c]
}

// Values serializes the whole row in registry column order
func (r *Row) Values() []string {
	values := make([]string, 0, int(columnCount))
	for _, c := range Columns() {
		values = append(values, r.Render(c))
	}
	return values
}

// FromRecord builds a row from a header-keyed record, as read from an
// extra-record or SANTOM file laid out in registry columns. Unknown headers
// are ignored.
func FromRecord(record map[string]string) *Row {
	row := NewRow()
	for name, value := range record {
		if c, ok := ColumnByHeader(strings.TrimSpace(name)); ok {
			row.SetText(c, strings.TrimSpace(value))
		}
	}
	return row
}
