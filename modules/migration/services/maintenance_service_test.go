package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
)

func TestMaintenanceService_PointUpdates(t *testing.T) {
	combinedRepo := newMockCombinedRepo()
	publisher := &capturePublisher{}
	svc := NewMaintenanceService(combinedRepo, publisher)

	ctx := txContext()
	require.NoError(t, svc.UpdatePackageStatus(ctx, "GRP1", "user1", "Ready"))
	require.NoError(t, svc.UpdatePackageReadyDate(ctx, "GRP1", "user1", "2020-02-01"))
	require.NoError(t, svc.UpdateTestStatus(ctx, "GRP1", "user1", "PAT OK"))
	require.NoError(t, svc.UpdateMigrationCluster(ctx, "GRP1", "user1", "Wave 3"))

	require.Equal(t, "Ready", combinedRepo.updates[combined.FieldPackageStatus])
	require.Equal(t, "2020-02-01", combinedRepo.updates[combined.FieldPackageReadyDate])
	require.Equal(t, "PAT OK", combinedRepo.updates[combined.FieldTestStatus])
	require.Equal(t, "Wave 3", combinedRepo.updates[combined.FieldMigrationCluster])

	require.Len(t, publisher.events, 4)
	first, ok := publisher.events[0].(*RecordUpdatedEvent)
	require.True(t, ok)
	require.Equal(t, combined.FieldPackageStatus, first.Field)
	require.Equal(t, "GRP1", first.IdentityGroup)
}

func TestMaintenanceService_NotFound(t *testing.T) {
	publisher := &capturePublisher{}
	svc := NewMaintenanceService(newMockCombinedRepo(), publisher)

	err := svc.UpdateTestStatus(txContext(), "", "", "PAT OK")
	require.ErrorIs(t, err, combined.ErrNotFound)
	require.Empty(t, publisher.events, "no event on a failed update")
}
