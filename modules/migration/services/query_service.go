package services

import (
	"context"
	"time"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/pkg/composables"
	"github.com/iota-uz/migscope/pkg/repo"
	"github.com/iota-uz/migscope/pkg/serrors"
)

var ErrInvalidQuery = serrors.NewError("QUERY_INVALID", "invalid query", "check field, operator and value")

// QueryService is the narrow typed read surface reporting consumers call
// into. Fields and operators come from fixed vocabularies; a condition is
// validated against the field's declared type before touching SQL.
type QueryService struct {
	repo combined.Repository
}

func NewQueryService(combinedRepo combined.Repository) *QueryService {
	return &QueryService{repo: combinedRepo}
}

// Condition is one parsed, not yet validated query condition.
type Condition struct {
	Field    string
	Operator string
	Value    string
}

// Query returns the combined records matching all conditions.
func (s *QueryService) Query(ctx context.Context, conditions []Condition, limit, offset int) ([]combined.Record, error) {
	params := &combined.FindParams{Limit: limit, Offset: offset}
	for _, c := range conditions {
		filter, err := buildFilter(c)
		if err != nil {
			return nil, err
		}
		params.Filters = append(params.Filters, filter)
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) ([]combined.Record, error) {
		return s.repo.Find(txCtx, params)
	})
}

// GetByKey fetches one combined record by its (identity group, account) key.
func (s *QueryService) GetByKey(ctx context.Context, identityGroup, accountID string) (combined.Record, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (combined.Record, error) {
		return s.repo.GetByKey(txCtx, identityGroup, accountID)
	})
}

func (s *QueryService) Count(ctx context.Context) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.repo.Count(txCtx)
	})
}

func buildFilter(c Condition) (combined.FieldFilter, error) {
	field, fieldType, err := combined.ParseField(c.Field)
	if err != nil {
		return combined.FieldFilter{}, ErrInvalidQuery.WithMessage("%s", err.Error())
	}

	op, ok := repo.ParseOperator(c.Operator)
	if !ok {
		return combined.FieldFilter{}, ErrInvalidQuery.WithMessage("unknown operator %q", c.Operator)
	}
	if !op.AppliesTo(fieldType) {
		return combined.FieldFilter{}, ErrInvalidQuery.WithMessage(
			"operator %q does not apply to %s field %q", op, fieldType, field)
	}
	if op.NeedsValue() && c.Value == "" {
		return combined.FieldFilter{}, ErrInvalidQuery.WithMessage("operator %q needs a value", op)
	}
	if !op.NeedsValue() && c.Value != "" {
		return combined.FieldFilter{}, ErrInvalidQuery.WithMessage("operator %q takes no value", op)
	}

	if fieldType == repo.DateField && op.NeedsValue() {
		if _, err := time.Parse("2006-01-02", c.Value); err != nil {
			return combined.FieldFilter{}, ErrInvalidQuery.WithMessage(
				"%q is not an ISO date (YYYY-MM-DD)", c.Value)
		}
	}

	return combined.FieldFilter{
		Field:  field,
		Filter: repo.Filter{Op: op, Value: c.Value},
	}, nil
}
