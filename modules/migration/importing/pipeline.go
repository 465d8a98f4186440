package importing

import (
	"context"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/excel"
)

const (
	// Large sheets report progress more often so the bar keeps moving.
	largeSheetRows      = 5000
	largeSheetBatchSize = 50
	defaultBatchSize    = 100

	progressAfterLoad    = 0.05
	progressAfterHeaders = 0.10
	progressBeforeFinish = 0.95
)

// Process validates, types and deduplicates the data rows of a loaded sheet.
// Structural and kind-mismatch failures return an error and no dataset; the
// per-row failure classes land in the result buckets instead.
func Process(ctx context.Context, kind records.Kind, sheet *excel.Sheet, tracker *Tracker) (*Dataset, *Result, error) {
	tracker.begin(kind)
	tracker.advance("loading worksheet", progressAfterLoad)

	tracker.advance("analyzing headers", progressAfterHeaders)
	columnMap, err := resolveHeader(sheet.Rows, kind)
	if err != nil {
		tracker.fail()
		return nil, nil, err
	}

	dataRows := sheet.Rows[columnMap.HeaderRow+1:]
	batchSize := defaultBatchSize
	if len(dataRows) > largeSheetRows {
		batchSize = largeSheetBatchSize
	}

	dataset := &Dataset{Kind: kind}
	result := &Result{Kind: kind, DataRows: len(dataRows)}
	seen := make(map[dedupKey]bool)

	tracker.advance("processing rows", progressAfterHeaders)
	for i, row := range dataRows {
		if i%batchSize == 0 {
			if err := ctx.Err(); err != nil {
				tracker.fail()
				return nil, nil, err
			}
			if len(dataRows) > 0 {
				span := progressBeforeFinish - progressAfterHeaders
				tracker.advance("processing rows", progressAfterHeaders+span*float64(i)/float64(len(dataRows)))
			}
		}

		// Sheet row numbers are 1-based and include everything above the data.
		rowNumber := columnMap.HeaderRow + i + 2

		if excel.IsBlankRow(row) {
			result.Blank++
			continue
		}

		p := parseRow(kind, columnMap, row)
		if len(p.Reasons) > 0 {
			result.Invalid = append(result.Invalid, RowError{Row: rowNumber, Reasons: p.Reasons})
			continue
		}

		if p.DedupKey != (dedupKey{}) {
			if seen[p.DedupKey] {
				result.Duplicates = append(result.Duplicates, Duplicate{Row: rowNumber, Key: p.Key})
				continue
			}
			seen[p.DedupKey] = true
		}

		dataset.append(p)
		result.Valid++
	}

	tracker.advance("finalizing", progressBeforeFinish)
	tracker.finish(result)
	return dataset, result, nil
}

func (d *Dataset) append(p parsed) {
	switch {
	case p.Group != nil:
		d.Groups = append(d.Groups, *p.Group)
	case p.Person != nil:
		d.Personnel = append(d.Personnel, *p.Person)
	case p.Package != nil:
		d.Packages = append(d.Packages, *p.Package)
	case p.Test != nil:
		d.Tests = append(d.Tests, *p.Test)
	case p.Migration != nil:
		d.Migration = append(d.Migration, *p.Migration)
	case p.Cluster != nil:
		d.Clusters = append(d.Clusters, *p.Cluster)
	}
}
