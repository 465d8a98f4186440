package migration

import (
	"embed"
	"io/fs"

	"github.com/iota-uz/migscope/modules/migration/importing"
	"github.com/iota-uz/migscope/modules/migration/infrastructure/persistence"
	"github.com/iota-uz/migscope/modules/migration/presentation/controllers"
	"github.com/iota-uz/migscope/modules/migration/services"
	"github.com/iota-uz/migscope/pkg/application"
	"github.com/iota-uz/migscope/pkg/configuration"
	"github.com/iota-uz/migscope/pkg/eventbus"
	"github.com/iota-uz/migscope/pkg/metrics"
	"github.com/iota-uz/migscope/pkg/middleware"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	schema, err := fs.Sub(migrationFiles, "infrastructure/persistence/schema")
	if err != nil {
		return err
	}
	app.Migrations().RegisterSchema(schema)

	conf := configuration.Use()
	store := persistence.NewSourceStore()
	combinedRepo := persistence.NewCombinedRepository()

	envService := services.NewEnvironmentService(conf, app.DB())
	app.RegisterServices(
		envService,
		services.NewImportService(store, combinedRepo, app.EventPublisher()),
		services.NewReconciliationService(store, combinedRepo, app.EventPublisher()),
		services.NewQueryService(combinedRepo),
		services.NewScoringService(combinedRepo),
		services.NewMaintenanceService(combinedRepo, app.EventPublisher()),
	)

	app.RegisterMiddleware(
		middleware.ProvidePool(envService),
		middleware.RequestLogger(app.Logger()),
	)

	app.RegisterControllers(
		controllers.NewMigrationAPIController(app),
	)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	registerMetricHandlers(app.EventPublisher())
	return nil
}

func (m *Module) Name() string {
	return "migration"
}

func registerMetricHandlers(bus eventbus.EventBus) {
	bus.Subscribe(func(e *importing.CompletedEvent) {
		metrics.ImportsTotal.WithLabelValues(e.Kind.String(), "completed").Inc()
		metrics.ImportRows.WithLabelValues(e.Kind.String(), "valid").Add(float64(e.Result.Valid))
		metrics.ImportRows.WithLabelValues(e.Kind.String(), "invalid").Add(float64(len(e.Result.Invalid)))
		metrics.ImportRows.WithLabelValues(e.Kind.String(), "duplicate").Add(float64(len(e.Result.Duplicates)))
		metrics.ImportRows.WithLabelValues(e.Kind.String(), "blank").Add(float64(e.Result.Blank))
	})
	bus.Subscribe(func(e *importing.FailedEvent) {
		metrics.ImportsTotal.WithLabelValues(e.Kind.String(), "failed").Inc()
	})
	bus.Subscribe(func(e *services.ReconciledEvent) {
		metrics.ReconciliationsTotal.Inc()
		metrics.CombinedRecords.Set(float64(e.Report.Total))
	})
}
