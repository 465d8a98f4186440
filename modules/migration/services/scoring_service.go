package services

import (
	"context"
	"time"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
	"github.com/iota-uz/migscope/modules/migration/scoring"
	"github.com/iota-uz/migscope/pkg/composables"
)

// ScoringService computes aggregate progress reports over the current
// combined records.
type ScoringService struct {
	repo combined.Repository
}

func NewScoringService(combinedRepo combined.Repository) *ScoringService {
	return &ScoringService{repo: combinedRepo}
}

// ScoreOptions mirrors the report filters exposed to consumers.
type ScoreOptions struct {
	// ExcludeRedirected folds users of superseded applications into their
	// successor and drops the superseded application from the aggregates.
	ExcludeRedirected bool
	// ExceptLeft drops accounts that departed before the scoring moment.
	ExceptLeft bool
}

// Score loads the combined records and runs one scoring pass.
func (s *ScoringService) Score(ctx context.Context, opts ScoreOptions) (*scoring.Report, error) {
	items, err := composables.InTxResult(ctx, func(txCtx context.Context) ([]combined.Record, error) {
		return s.repo.GetAll(txCtx)
	})
	if err != nil {
		return nil, err
	}

	return scoring.Score(items, scoring.Options{
		ExcludeRedirected: opts.ExcludeRedirected,
		ExcludeLeft:       opts.ExceptLeft,
		Now:               time.Now(),
	}), nil
}
