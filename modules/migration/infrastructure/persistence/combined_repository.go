package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/pkg/composables"
	"github.com/iota-uz/migscope/pkg/repo"
)

const (
	combinedColumnList = `
            c.identity_group,
            c.account_id,
            c.application,
            c.suite,
            c.environment_code,
            c.critical,
            c.department,
            c.job_role,
            c.division,
            c.leave_date,
            c.employee_number,
            c.package_status,
            c.package_ready_date,
            c.test_status,
            c.test_date,
            c.test_result,
            c.test_comments,
            c.new_application,
            c.new_suite,
            c.scope,
            c.will_be,
            c.platform,
            c.migration_readiness,
            c.department_simple,
            c.domain,
            c.migration_cluster,
            c.cluster_readiness,
            c.imported_at,
            c.batch_id`

	combinedFindQuery = `SELECT` + combinedColumnList + `
        FROM combined_records c`

	combinedCountQuery = `SELECT COUNT(*) FROM combined_records c`

	combinedDeleteAllQuery = `DELETE FROM combined_records`

	combinedUpdateQuery = `UPDATE combined_records SET %s = $1 WHERE identity_group = $2 AND account_id = $3`
)

type PgCombinedRepository struct {
	fieldMap map[combined.Field]string
}

func NewCombinedRepository() combined.Repository {
	fieldMap := make(map[combined.Field]string, len(combined.Fields()))
	for _, f := range combined.Fields() {
		fieldMap[f] = "c." + string(f)
	}
	return &PgCombinedRepository{fieldMap: fieldMap}
}

// ReplaceAll swaps the full combined-record set. Callers run it inside the
// reconciliation transaction, so readers observe either the previous set or
// the new one, never a partial rebuild.
func (g *PgCombinedRepository) ReplaceAll(ctx context.Context, items []combined.Record) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, combinedDeleteAllQuery); err != nil {
		return errors.Wrap(err, "failed to clear combined records")
	}
	if len(items) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, combinedToRow(item))
	}
	columns := make([]string, 0, len(combined.Fields())+2)
	for _, f := range combined.Fields() {
		columns = append(columns, string(f))
	}
	columns = append(columns, "imported_at", "batch_id")

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"combined_records"}, columns, pgx.CopyFromRows(rows)); err != nil {
		return errors.Wrap(err, "failed to insert combined records")
	}
	return nil
}

func (g *PgCombinedRepository) GetAll(ctx context.Context) ([]combined.Record, error) {
	return g.Find(ctx, &combined.FindParams{})
}

func (g *PgCombinedRepository) Find(ctx context.Context, params *combined.FindParams) ([]combined.Record, error) {
	if params == nil {
		params = &combined.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args, err := g.buildFilters(params)
	if err != nil {
		return nil, err
	}

	query := repo.Join(
		combinedFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY c.identity_group, c.account_id",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query combined records")
	}
	defer rows.Close()

	var out []combined.Record
	for rows.Next() {
		r, err := scanCombined(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan combined record")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *PgCombinedRepository) GetByKey(ctx context.Context, identityGroup, accountID string) (combined.Record, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return combined.Record{}, err
	}

	query := combinedFindQuery + `
        WHERE c.identity_group = $1 AND c.account_id = $2`
	r, err := scanCombined(tx.QueryRow(ctx, query, identityGroup, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return combined.Record{}, combined.ErrNotFound
		}
		return combined.Record{}, err
	}
	return r, nil
}

func (g *PgCombinedRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, combinedCountQuery).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count combined records")
	}
	return count, nil
}

func (g *PgCombinedRepository) Clear(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, combinedDeleteAllQuery); err != nil {
		return errors.Wrap(err, "failed to clear combined records")
	}
	return nil
}

func (g *PgCombinedRepository) UpdatePackageStatus(ctx context.Context, identityGroup, accountID, value string) error {
	return g.updateField(ctx, "package_status", identityGroup, accountID, value)
}

func (g *PgCombinedRepository) UpdatePackageReadyDate(ctx context.Context, identityGroup, accountID, value string) error {
	return g.updateField(ctx, "package_ready_date", identityGroup, accountID, value)
}

func (g *PgCombinedRepository) UpdateTestStatus(ctx context.Context, identityGroup, accountID, value string) error {
	return g.updateField(ctx, "test_status", identityGroup, accountID, value)
}

func (g *PgCombinedRepository) UpdateMigrationCluster(ctx context.Context, identityGroup, accountID, value string) error {
	return g.updateField(ctx, "migration_cluster", identityGroup, accountID, value)
}

func (g *PgCombinedRepository) updateField(ctx context.Context, column, identityGroup, accountID, value string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, fmt.Sprintf(combinedUpdateQuery, column), value, identityGroup, accountID)
	if err != nil {
		return errors.Wrap(err, "failed to update "+column)
	}
	if tag.RowsAffected() == 0 {
		return combined.ErrNotFound
	}
	return nil
}

func (g *PgCombinedRepository) buildFilters(params *combined.FindParams) ([]string, []any, error) {
	var where []string
	var args []any
	for _, filter := range params.Filters {
		column, ok := g.fieldMap[filter.Field]
		if !ok {
			return nil, nil, fmt.Errorf("unknown filter field: %v", filter.Field)
		}
		where = append(where, filter.Filter.String(column, len(args)+1))
		args = append(args, filter.Filter.Args()...)
	}
	return where, args, nil
}
