package importing

import (
	"github.com/go-faster/errors"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/excel"
	"github.com/iota-uz/migscope/pkg/serrors"
)

// ErrKindMismatch aborts the import when the sheet's header identifies a
// different dataset than the caller requested. Distinguishable from the
// structural errors so the caller can message it as a warning class.
var ErrKindMismatch = serrors.NewError(
	"IMPORT_KIND_MISMATCH",
	"spreadsheet contains a different data kind than requested",
	"check that the right export was selected",
)

// resolveHeader locates the requested kind's header and guards against a
// sheet of another kind. Kinds can share key columns (groups and migration
// metadata both key on the AD group), so the guard scores every kind's field
// matches on the header row and only objects when another kind explains the
// header strictly better.
func resolveHeader(rows [][]string, kind records.Kind) (*excel.ColumnMap, error) {
	m, err := excel.ResolveHeader(rows, schemas[kind])
	if errors.Is(err, excel.ErrHeaderNotFound) {
		if detected, ok := detectKind(rows, kind); ok {
			return nil, ErrKindMismatch.WithMessage(
				"requested %s data but the sheet looks like %s data", kind, detected,
			)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	requested := scoreHeader(rows[m.HeaderRow], kind)
	for _, other := range records.Kinds() {
		if other == kind {
			continue
		}
		if scoreHeader(rows[m.HeaderRow], other) > requested {
			return nil, ErrKindMismatch.WithMessage(
				"requested %s data but the sheet looks like %s data", kind, other,
			)
		}
	}
	return m, nil
}

// detectKind finds which kind's header row, if any, exists below the marker.
func detectKind(rows [][]string, requested records.Kind) (records.Kind, bool) {
	marker := excel.FindMarker(rows)
	if marker < 0 {
		return "", false
	}

	best := records.Kind("")
	bestScore := 0
	for _, kind := range records.Kinds() {
		if kind == requested {
			continue
		}
		idx := excel.FindHeaderRow(rows, marker+1, schemas[kind].KeySynonyms)
		if idx < 0 {
			continue
		}
		if score := scoreHeader(rows[idx], kind); score > bestScore {
			best = kind
			bestScore = score
		}
	}
	return best, bestScore > 0
}

// scoreHeader counts how many of the kind's canonical fields the header row
// resolves.
func scoreHeader(header []string, kind records.Kind) int {
	probe := [][]string{{"=startdatabelow="}, header}
	m, err := excel.ResolveHeader(probe, schemas[kind])
	if err != nil {
		return 0
	}
	return len(m.Fields())
}
