package excel

import (
	"context"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/migscope/pkg/serrors"
)

// Sentinel replaces every absent or whitespace-only cell so downstream code
// never distinguishes "missing column" from "blank cell".
const Sentinel = "N/A"

var ErrNoWorksheet = serrors.NewError("EXCEL_NO_WORKSHEET", "workbook contains no worksheets", "")

// Sheet is the first worksheet of a workbook flattened to normalized cell
// strings. Rows keep their original order; shared strings are resolved by
// excelize before normalization.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadSheet loads the first worksheet from r. Rows may have differing widths;
// positional access past a row's end must be treated as Sentinel.
func ReadSheet(ctx context.Context, r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}
	name := sheets[0]

	iter, err := f.Rows(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = iter.Close() }()

	var rows [][]string
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cols, err := iter.Columns()
		if err != nil {
			return nil, err
		}
		rows = append(rows, NormalizeRow(cols))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	return &Sheet{Name: name, Rows: rows}, nil
}

// NormalizeRow applies NormalizeCell to every cell.
func NormalizeRow(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = NormalizeCell(cell)
	}
	return out
}

// NormalizeCell trims the cell and canonicalizes blanks and any case variant
// of the sentinel ("n/a", "N/a") to Sentinel, so downstream absence checks
// compare against a single spelling.
func NormalizeCell(cell string) string {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" || strings.EqualFold(trimmed, Sentinel) {
		return Sentinel
	}
	return trimmed
}

// Cell returns the normalized value at col, Sentinel when the row is shorter.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return Sentinel
	}
	return row[col]
}

// IsBlankRow reports whether every cell of the row is the Sentinel.
func IsBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != Sentinel {
			return false
		}
	}
	return true
}
