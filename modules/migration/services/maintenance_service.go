package services

import (
	"context"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/pkg/composables"
	"github.com/iota-uz/migscope/pkg/eventbus"
)

// RecordUpdatedEvent fires after a maintenance point update.
type RecordUpdatedEvent struct {
	IdentityGroup string
	AccountID     string
	Field         combined.Field
	Value         string
}

// MaintenanceService applies single-row corrections to combined records.
// Point updates edit the denormalized row directly and never trigger a
// reconciliation; the next rebuild overwrites them from the sources.
type MaintenanceService struct {
	repo      combined.Repository
	publisher eventbus.EventBus
}

func NewMaintenanceService(combinedRepo combined.Repository, publisher eventbus.EventBus) *MaintenanceService {
	return &MaintenanceService{
		repo:      combinedRepo,
		publisher: publisher,
	}
}

func (s *MaintenanceService) UpdatePackageStatus(ctx context.Context, identityGroup, accountID, value string) error {
	return s.update(ctx, combined.FieldPackageStatus, identityGroup, accountID, value, s.repo.UpdatePackageStatus)
}

func (s *MaintenanceService) UpdatePackageReadyDate(ctx context.Context, identityGroup, accountID, value string) error {
	return s.update(ctx, combined.FieldPackageReadyDate, identityGroup, accountID, value, s.repo.UpdatePackageReadyDate)
}

func (s *MaintenanceService) UpdateTestStatus(ctx context.Context, identityGroup, accountID, value string) error {
	return s.update(ctx, combined.FieldTestStatus, identityGroup, accountID, value, s.repo.UpdateTestStatus)
}

func (s *MaintenanceService) UpdateMigrationCluster(ctx context.Context, identityGroup, accountID, value string) error {
	return s.update(ctx, combined.FieldMigrationCluster, identityGroup, accountID, value, s.repo.UpdateMigrationCluster)
}

func (s *MaintenanceService) update(
	ctx context.Context,
	field combined.Field,
	identityGroup, accountID, value string,
	apply func(context.Context, string, string, string) error,
) error {
	err := composables.InSharedTx(ctx, func(txCtx context.Context) error {
		return apply(txCtx, identityGroup, accountID, value)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(&RecordUpdatedEvent{
		IdentityGroup: identityGroup,
		AccountID:     accountID,
		Field:         field,
		Value:         value,
	})
	return nil
}
