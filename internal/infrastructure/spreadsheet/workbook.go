package spreadsheet

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook is a decoded spreadsheet, reduced to the string cell grid of
// one sheet. Rows keep the layout of the sheet: trailing empty cells may
// be absent, so callers must bounds-check column access.
type Workbook struct {
	SheetName string
	rows      [][]string
}

// Decode opens xlsx data and extracts the cell grid of the first sheet.
func Decode(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	return &Workbook{SheetName: sheetName, rows: rows}, nil
}

// Base64Bytes decodes a base64-transported spreadsheet payload.
func Base64Bytes(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return data, nil
}

// DecodeBase64 decodes a base64-encoded xlsx payload and opens it.
func DecodeBase64(encoded string) (*Workbook, error) {
	data, err := Base64Bytes(encoded)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Rows returns the raw cell grid of the sheet
func (w *Workbook) Rows() [][]string {
	return w.rows
}

// RowCount returns the number of rows in the sheet
func (w *Workbook) RowCount() int {
	return len(w.rows)
}

// Cell returns the value at the given 1-based row and column, or the
// empty string when the row is shorter than the requested column.
func (w *Workbook) Cell(row, col int) string {
	if row < 1 || row > len(w.rows) {
		return ""
	}
	r := w.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}
