package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/migscope/modules/migration/infrastructure/persistence"
	"github.com/iota-uz/migscope/modules/migration/services"
	"github.com/iota-uz/migscope/pkg/composables"
	"github.com/iota-uz/migscope/pkg/configuration"
	"github.com/iota-uz/migscope/pkg/eventbus"
)

// cliRuntime bundles what the one-shot data commands need: a pool bound to
// one dataset environment and services wired the same way the server wires
// them, minus the HTTP surface.
type cliRuntime struct {
	conf           *configuration.Configuration
	pool           *pgxpool.Pool
	imports        *services.ImportService
	reconciliation *services.ReconciliationService
	scoring        *services.ScoringService
}

func newCliRuntime(ctx context.Context, env string) (*cliRuntime, error) {
	conf := configuration.Use()
	if env == "" {
		env = conf.DefaultEnvironment
	}
	found := false
	for _, name := range conf.EnvironmentNames() {
		if name == env {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown dataset environment %q", env)
	}

	pool, err := pgxpool.New(ctx, conf.Database.ConnectionStringFor(env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %q: %w", env, err)
	}

	store := persistence.NewSourceStore()
	combinedRepo := persistence.NewCombinedRepository()
	bus := eventbus.NewEventPublisher(conf.Logger())
	return &cliRuntime{
		conf:           conf,
		pool:           pool,
		imports:        services.NewImportService(store, combinedRepo, bus),
		reconciliation: services.NewReconciliationService(store, combinedRepo, bus),
		scoring:        services.NewScoringService(combinedRepo),
	}, nil
}

func (r *cliRuntime) Context(ctx context.Context) context.Context {
	return composables.WithPool(ctx, r.pool)
}

func (r *cliRuntime) Close() {
	r.pool.Close()
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
