package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/composables"
)

// pgSourceRepository persists one of the six source datasets. The datasets
// share their storage contract, so a single generic implementation driven by
// a table descriptor covers all of them.
type pgSourceRepository[T any] struct {
	table   string
	columns []string
	toRow   func(T) []any
	scan    func(pgx.Rows) (T, error)
}

func (r *pgSourceRepository[T]) AppendAll(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, r.toRow(item))
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{r.table}, r.columns, pgx.CopyFromRows(rows)); err != nil {
		return errors.Wrap(err, "failed to append "+r.table)
	}
	return nil
}

func (r *pgSourceRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, r.selectQuery())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query "+r.table)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan "+r.table)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *pgSourceRepository[T]) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM "+r.table).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count "+r.table)
	}
	return count, nil
}

func (r *pgSourceRepository[T]) Clear(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM "+r.table); err != nil {
		return errors.Wrap(err, "failed to clear "+r.table)
	}
	return nil
}

func (r *pgSourceRepository[T]) selectQuery() string {
	q := "SELECT "
	for i, c := range r.columns {
		if i > 0 {
			q += ", "
		}
		q += c
	}
	return q + " FROM " + r.table + " ORDER BY id"
}

func NewGroupRepository() records.Repository[records.Group] {
	return &pgSourceRepository[records.Group]{
		table:   "source_groups",
		columns: []string{
			"identity_group", "account_id", "application",
			"suite", "environment_code", "critical",
		},
		toRow: groupToRow,
		scan:  scanGroup,
	}
}

func NewPersonRepository() records.Repository[records.Person] {
	return &pgSourceRepository[records.Person]{
		table:   "source_personnel",
		columns: []string{
			"account_id", "department", "job_role",
			"division", "leave_date", "employee_number",
		},
		toRow: personToRow,
		scan:  scanPerson,
	}
}

func NewPackageRepository() records.Repository[records.PackageStatus] {
	return &pgSourceRepository[records.PackageStatus]{
		table:   "source_packages",
		columns: []string{"application", "status", "ready_date"},
		toRow:   packageToRow,
		scan:    scanPackage,
	}
}

func NewTestRepository() records.Repository[records.TestStatus] {
	return &pgSourceRepository[records.TestStatus]{
		table:   "source_tests",
		columns: []string{"application", "status", "test_date", "result", "comments"},
		toRow:   testToRow,
		scan:    scanTest,
	}
}

func NewMigrationRepository() records.Repository[records.Migration] {
	return &pgSourceRepository[records.Migration]{
		table:   "source_migration",
		columns: []string{
			"identity_group", "application", "new_application", "suite",
			"new_suite", "scope", "will_be", "platform", "readiness",
		},
		toRow: migrationToRow,
		scan:  scanMigration,
	}
}

func NewClusterRepository() records.Repository[records.Cluster] {
	return &pgSourceRepository[records.Cluster]{
		table:   "source_clusters",
		columns: []string{
			"department", "department_simple", "domain",
			"migration_cluster", "cluster_readiness",
		},
		toRow: clusterToRow,
		scan:  scanCluster,
	}
}

// NewSourceStore wires the six per-kind repositories the reconciler and the
// import service read and write.
func NewSourceStore() *records.SourceStore {
	return &records.SourceStore{
		Groups:    NewGroupRepository(),
		Personnel: NewPersonRepository(),
		Packages:  NewPackageRepository(),
		Tests:     NewTestRepository(),
		Migration: NewMigrationRepository(),
		Clusters:  NewClusterRepository(),
	}
}
