package services

import (
	"context"
	"io"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/modules/migration/importing"
	"github.com/iota-uz/migscope/pkg/composables"
	"github.com/iota-uz/migscope/pkg/eventbus"
	"github.com/iota-uz/migscope/pkg/excel"
)

// ImportService runs the spreadsheet ingestion pipeline and persists the
// accepted rows. Repeated imports of the same kind append; only Clear and
// Reinitialize discard previously imported batches.
type ImportService struct {
	store     *records.SourceStore
	combined  combined.Repository
	tracker   *importing.Tracker
	publisher eventbus.EventBus
}

func NewImportService(store *records.SourceStore, combinedRepo combined.Repository, publisher eventbus.EventBus) *ImportService {
	return &ImportService{
		store:     store,
		combined:  combinedRepo,
		tracker:   importing.NewTracker(publisher),
		publisher: publisher,
	}
}

// Tracker exposes the observable import state for progress consumers.
func (s *ImportService) Tracker() *importing.Tracker {
	return s.tracker
}

// Import reads one worksheet, validates and deduplicates its rows and appends
// the accepted records in a single transaction. Structural failures (no
// worksheet, missing marker or header, wrong kind) commit nothing and return
// the error; per-row failures land in the result buckets instead.
func (s *ImportService) Import(ctx context.Context, kind records.Kind, file io.Reader) (*importing.Result, error) {
	sheet, err := excel.ReadSheet(ctx, file)
	if err != nil {
		s.publisher.Publish(&importing.FailedEvent{Kind: kind, Err: err})
		return nil, err
	}

	dataset, result, err := importing.Process(ctx, kind, sheet, s.tracker)
	if err != nil {
		s.publisher.Publish(&importing.FailedEvent{Kind: kind, Err: err})
		return nil, err
	}

	err = composables.InSharedTx(ctx, func(txCtx context.Context) error {
		return s.appendDataset(txCtx, dataset)
	})
	if err != nil {
		s.publisher.Publish(&importing.FailedEvent{Kind: kind, Err: err})
		return nil, err
	}

	s.publisher.Publish(&importing.CompletedEvent{Kind: kind, Result: result})
	return result, nil
}

// Clear discards all imported rows of one kind.
func (s *ImportService) Clear(ctx context.Context, kind records.Kind) error {
	return composables.InSharedTx(ctx, func(txCtx context.Context) error {
		return s.clearKind(txCtx, kind)
	})
}

// Reinitialize drops every source dataset and the combined records, returning
// the environment to its empty state. The import trackers reset too.
func (s *ImportService) Reinitialize(ctx context.Context) error {
	err := composables.InSharedTx(ctx, func(txCtx context.Context) error {
		for _, kind := range records.Kinds() {
			if err := s.clearKind(txCtx, kind); err != nil {
				return err
			}
		}
		return s.combined.Clear(txCtx)
	})
	if err != nil {
		return err
	}
	s.tracker.Reset()
	return nil
}

// Counts reports the persisted row count per source dataset.
func (s *ImportService) Counts(ctx context.Context) (map[records.Kind]int64, error) {
	out := make(map[records.Kind]int64, len(records.Kinds()))
	err := composables.InSharedTx(ctx, func(txCtx context.Context) error {
		counters := map[records.Kind]func(context.Context) (int64, error){
			records.KindGroups:    s.store.Groups.Count,
			records.KindPersonnel: s.store.Personnel.Count,
			records.KindPackages:  s.store.Packages.Count,
			records.KindTests:     s.store.Tests.Count,
			records.KindMigration: s.store.Migration.Count,
			records.KindClusters:  s.store.Clusters.Count,
		}
		for kind, count := range counters {
			n, err := count(txCtx)
			if err != nil {
				return err
			}
			out[kind] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ImportService) clearKind(ctx context.Context, kind records.Kind) error {
	switch kind {
	case records.KindGroups:
		return s.store.Groups.Clear(ctx)
	case records.KindPersonnel:
		return s.store.Personnel.Clear(ctx)
	case records.KindPackages:
		return s.store.Packages.Clear(ctx)
	case records.KindTests:
		return s.store.Tests.Clear(ctx)
	case records.KindMigration:
		return s.store.Migration.Clear(ctx)
	case records.KindClusters:
		return s.store.Clusters.Clear(ctx)
	}
	return nil
}

func (s *ImportService) appendDataset(ctx context.Context, d *importing.Dataset) error {
	switch d.Kind {
	case records.KindGroups:
		return s.store.Groups.AppendAll(ctx, d.Groups)
	case records.KindPersonnel:
		return s.store.Personnel.AppendAll(ctx, d.Personnel)
	case records.KindPackages:
		return s.store.Packages.AppendAll(ctx, d.Packages)
	case records.KindTests:
		return s.store.Tests.AppendAll(ctx, d.Tests)
	case records.KindMigration:
		return s.store.Migration.AppendAll(ctx, d.Migration)
	case records.KindClusters:
		return s.store.Clusters.AppendAll(ctx, d.Clusters)
	}
	return nil
}
