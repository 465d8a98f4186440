package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
)

func TestReconciliationService_Rebuild(t *testing.T) {
	store := &mockStore{}
	store.groups.items = []records.Group{
		records.NewGroup("GRP2", "user2", "App B", "", "", ""),
		records.NewGroup("GRP1", "user1", "App A", "", "", ""),
	}
	store.personnel.items = []records.Person{
		records.NewPerson("user1", "Finance", "Analyst", "East", nil, ""),
	}
	store.packages.items = []records.PackageStatus{
		records.NewPackageStatus("App A", "Ready", "2020-01-01"),
		records.NewPackageStatus("App A", "Not Started", ""),
	}

	combinedRepo := newMockCombinedRepo()
	publisher := &capturePublisher{}
	svc := NewReconciliationService(store.sourceStore(), combinedRepo, publisher)

	report, err := svc.Rebuild(txContext())
	require.NoError(t, err)
	require.Equal(t, 2, report.Total)
	require.Equal(t, 1, report.MissingPersonnel)
	require.Equal(t, 1, report.AmbiguousPackages)

	require.Len(t, combinedRepo.replaced, 2)
	require.Equal(t, "GRP1", combinedRepo.replaced[0].IdentityGroup)
	require.Equal(t, "Finance", combinedRepo.replaced[0].Department)
	require.Equal(t, "Ready", combinedRepo.replaced[0].PackageStatus)
	require.Equal(t, "GRP2", combinedRepo.replaced[1].IdentityGroup)
	require.Empty(t, combinedRepo.replaced[1].Department)

	var reconciled *ReconciledEvent
	for _, e := range publisher.events {
		if ev, ok := e.(*ReconciledEvent); ok {
			reconciled = ev
		}
	}
	require.NotNil(t, reconciled)
	require.Equal(t, report, reconciled.Report)
	require.Equal(t, reconciled.BatchID, combinedRepo.replaced[0].BatchID)
}

func TestReconciliationService_RebuildIdempotent(t *testing.T) {
	store := &mockStore{}
	store.groups.items = []records.Group{
		records.NewGroup("GRP1", "user1", "App A", "", "", ""),
		records.NewGroup("GRP2", "user2", "App B", "", "", ""),
	}

	combinedRepo := newMockCombinedRepo()
	svc := NewReconciliationService(store.sourceStore(), combinedRepo, &capturePublisher{})

	first, err := svc.Rebuild(txContext())
	require.NoError(t, err)
	firstRecords := combinedRepo.replaced

	second, err := svc.Rebuild(txContext())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, combinedRepo.replaced, len(firstRecords))
	for i := range firstRecords {
		a, b := firstRecords[i], combinedRepo.replaced[i]
		a.ImportedAt, b.ImportedAt = time.Time{}, time.Time{}
		a.BatchID, b.BatchID = uuid.Nil, uuid.Nil
		require.Equal(t, a, b)
	}
}
