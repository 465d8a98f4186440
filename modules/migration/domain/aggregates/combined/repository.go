package combined

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/migscope/pkg/repo"
)

var ErrNotFound = errors.New("combined record not found")

// FieldFilter is one typed query condition against a combined-record field.
type FieldFilter struct {
	Field  Field
	Filter repo.Filter
}

type FindParams struct {
	Filters []FieldFilter
	Limit   int
	Offset  int
}

// Repository persists combined records. ReplaceAll is the reconciliation
// rebuild and must be atomic with respect to concurrent readers; the point
// updates are the maintenance-tooling edits and never trigger reconciliation.
type Repository interface {
	ReplaceAll(ctx context.Context, items []Record) error
	GetAll(ctx context.Context) ([]Record, error)
	Find(ctx context.Context, params *FindParams) ([]Record, error)
	GetByKey(ctx context.Context, identityGroup, accountID string) (Record, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error

	UpdatePackageStatus(ctx context.Context, identityGroup, accountID, value string) error
	UpdatePackageReadyDate(ctx context.Context, identityGroup, accountID, value string) error
	UpdateTestStatus(ctx context.Context, identityGroup, accountID, value string) error
	UpdateMigrationCluster(ctx context.Context, identityGroup, accountID, value string) error
}
