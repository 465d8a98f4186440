package excel

import (
	"strings"

	"github.com/iota-uz/migscope/pkg/serrors"
)

var (
	ErrMarkerNotFound = serrors.NewError(
		"EXCEL_MARKER_NOT_FOUND",
		"start-of-data marker not found",
		"the sheet must contain a row reading 'start data below' above the header",
	)
	ErrHeaderNotFound = serrors.NewError(
		"EXCEL_HEADER_NOT_FOUND",
		"header row with the expected key column not found below the marker",
		"",
	)
)

// Accepted spellings of the start-of-data marker, compared against the
// concatenated, whitespace-stripped, lowercased text of each row.
var markerSpellings = []string{
	"=startdatabelow=",
	"===startdatabelow===",
	"startdatabelow",
}

// FieldSpec maps one canonical field to the header spellings it may appear
// under. Synonym comparison ignores case, whitespace and separators.
type FieldSpec struct {
	Name     string
	Synonyms []string
}

// HeaderSchema describes how to locate and read one data kind's header row.
// KeySynonyms are the accepted spellings of the kind's primary key column; a
// row below the marker is the header row iff it contains one of them.
type HeaderSchema struct {
	KeySynonyms []string
	Fields      []FieldSpec
}

// ColumnMap is the resolved header: canonical field name -> column index.
// Unknown header cells are preserved under their trimmed original spelling in
// Extras so no column is silently dropped.
type ColumnMap struct {
	HeaderRow int
	columns   map[string]int
	Extras    map[string]int
}

// Column returns the column index of a canonical field, or -1 when the header
// did not carry it.
func (m *ColumnMap) Column(field string) int {
	if idx, ok := m.columns[field]; ok {
		return idx
	}
	return -1
}

// Value reads the canonical field from a data row, Sentinel when the column
// was not found or the row is too short.
func (m *ColumnMap) Value(row []string, field string) string {
	idx := m.Column(field)
	if idx < 0 {
		return Sentinel
	}
	return Cell(row, idx)
}

func (m *ColumnMap) Fields() []string {
	out := make([]string, 0, len(m.columns))
	for name := range m.columns {
		out = append(out, name)
	}
	return out
}

// normalizeHeader collapses a header cell for synonym comparison: lowercase
// with spaces, hyphens, underscores and dots removed.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_', '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func rowText(row []string) string {
	var b strings.Builder
	for _, cell := range row {
		if cell == Sentinel {
			continue
		}
		b.WriteString(normalizeHeader(cell))
	}
	return b.String()
}

func isMarkerRow(row []string) bool {
	text := rowText(row)
	for _, spelling := range markerSpellings {
		if strings.Contains(text, normalizeHeader(spelling)) {
			return true
		}
	}
	return false
}

// FindMarker returns the index of the first start-of-data marker row, -1 when
// the sheet has none.
func FindMarker(rows [][]string) int {
	for i, row := range rows {
		if isMarkerRow(row) {
			return i
		}
	}
	return -1
}

func containsKey(row []string, keySynonyms []string) bool {
	for _, cell := range row {
		if cell == Sentinel {
			continue
		}
		normalized := normalizeHeader(cell)
		for _, synonym := range keySynonyms {
			if normalized == normalizeHeader(synonym) {
				return true
			}
		}
	}
	return false
}

// FindHeaderRow looks below from for the first row containing one of the key
// column spellings. Used directly for data-kind inference on mismatch.
func FindHeaderRow(rows [][]string, from int, keySynonyms []string) int {
	for i := from; i < len(rows); i++ {
		if containsKey(rows[i], keySynonyms) {
			return i
		}
	}
	return -1
}

// ResolveHeader scans for the marker, then the header row, and maps every
// header cell to its canonical field. Both failure modes are structural.
func ResolveHeader(rows [][]string, schema HeaderSchema) (*ColumnMap, error) {
	marker := FindMarker(rows)
	if marker < 0 {
		return nil, ErrMarkerNotFound
	}

	headerIdx := FindHeaderRow(rows, marker+1, schema.KeySynonyms)
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}

	synonymToField := make(map[string]string)
	for _, spec := range schema.Fields {
		for _, synonym := range spec.Synonyms {
			synonymToField[normalizeHeader(synonym)] = spec.Name
		}
	}

	m := &ColumnMap{
		HeaderRow: headerIdx,
		columns:   make(map[string]int),
		Extras:    make(map[string]int),
	}
	for col, cell := range rows[headerIdx] {
		if cell == Sentinel {
			continue
		}
		field, ok := synonymToField[normalizeHeader(cell)]
		if !ok {
			m.Extras[strings.TrimSpace(cell)] = col
			continue
		}
		// First occurrence wins when a header repeats a synonym.
		if _, seen := m.columns[field]; !seen {
			m.columns[field] = col
		}
	}

	return m, nil
}
