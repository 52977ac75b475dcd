package importapp

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CellKind classifies a spreadsheet cell value
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDatetime
)

// datetimeLayouts are the date formats marketplace exports render
// datetime cells in. Order matters: longer layouts first. A date cell
// rendered in a layout not listed here degrades to plain text, and any
// order date read from it falls back to the import time.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"01-02-06 15:04",
	"2006-01-02",
	"2006/01/02",
}

// RawCell is a typed scalar extracted from one spreadsheet cell. Text
// holds the trimmed string form for every non-empty kind; Number and
// Time are populated only for their respective kinds.
type RawCell struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
	Time   time.Time
}

// ReadCell normalizes one raw cell value. Blank and whitespace-only
// values become empty; values matching a known datetime layout keep
// their parsed time; numeric values keep their decimal form; everything
// else is plain trimmed text. Every input has a defined output.
func ReadCell(raw string) RawCell {
	text := strings.TrimSpace(raw)
	if text == "" {
		return RawCell{Kind: CellEmpty}
	}

	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return RawCell{Kind: CellDatetime, Text: text, Time: ts}
		}
	}

	if num, err := decimal.NewFromString(text); err == nil {
		return RawCell{Kind: CellNumber, Text: text, Number: num}
	}

	return RawCell{Kind: CellText, Text: text}
}

// IsEmpty reports whether the cell holds no value
func (c RawCell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the trimmed text form, or "" for empty cells
func (c RawCell) String() string {
	return c.Text
}

// Decimal returns the numeric value of the cell. Empty cells yield the
// given default; text cells report ok=false.
func (c RawCell) Decimal(def decimal.Decimal) (decimal.Decimal, bool) {
	switch c.Kind {
	case CellEmpty:
		return def, true
	case CellNumber:
		return c.Number, true
	default:
		return decimal.Zero, false
	}
}
