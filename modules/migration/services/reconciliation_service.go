package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/composables"
	"github.com/iota-uz/migscope/pkg/eventbus"
)

// ReconciledEvent fires after a successful rebuild of the combined records.
type ReconciledEvent struct {
	Report  *combined.BuildReport
	BatchID uuid.UUID
}

// ReconciliationService rebuilds the combined records from all persisted
// source datasets. The rebuild runs in one transaction: readers observe the
// previous set or the new one, never a partial state.
type ReconciliationService struct {
	store     *records.SourceStore
	combined  combined.Repository
	publisher eventbus.EventBus
}

func NewReconciliationService(store *records.SourceStore, combinedRepo combined.Repository, publisher eventbus.EventBus) *ReconciliationService {
	return &ReconciliationService{
		store:     store,
		combined:  combinedRepo,
		publisher: publisher,
	}
}

// Rebuild regenerates every combined record from the current source snapshot.
// Running it twice over unchanged sources yields identical records apart from
// the fresh timestamp and batch id.
func (s *ReconciliationService) Rebuild(ctx context.Context) (*combined.BuildReport, error) {
	batchID := uuid.New()
	report, err := composables.InTxResult(ctx, func(txCtx context.Context) (*combined.BuildReport, error) {
		snap, err := s.loadSnapshot(txCtx)
		if err != nil {
			return nil, err
		}
		items, report := combined.Build(snap, time.Now(), batchID)
		if err := s.combined.ReplaceAll(txCtx, items); err != nil {
			return nil, err
		}
		return report, nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(&ReconciledEvent{Report: report, BatchID: batchID})
	return report, nil
}

func (s *ReconciliationService) loadSnapshot(ctx context.Context) (combined.Snapshot, error) {
	var snap combined.Snapshot
	var err error

	if snap.Groups, err = s.store.Groups.GetAll(ctx); err != nil {
		return snap, err
	}
	if snap.Personnel, err = s.store.Personnel.GetAll(ctx); err != nil {
		return snap, err
	}
	if snap.Packages, err = s.store.Packages.GetAll(ctx); err != nil {
		return snap, err
	}
	if snap.Tests, err = s.store.Tests.GetAll(ctx); err != nil {
		return snap, err
	}
	if snap.Migration, err = s.store.Migration.GetAll(ctx); err != nil {
		return snap, err
	}
	if snap.Clusters, err = s.store.Clusters.GetAll(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}
