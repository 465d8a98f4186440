package records

import "context"

// Repository is the persistence contract shared by all six source datasets.
// Imports append; only an explicit Clear discards previous batches.
type Repository[T any] interface {
	AppendAll(ctx context.Context, items []T) error
	GetAll(ctx context.Context) ([]T, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}

// SourceStore groups the per-kind repositories the reconciler reads from.
type SourceStore struct {
	Groups    Repository[Group]
	Personnel Repository[Person]
	Packages  Repository[PackageStatus]
	Tests     Repository[TestStatus]
	Migration Repository[Migration]
	Clusters  Repository[Cluster]
}
