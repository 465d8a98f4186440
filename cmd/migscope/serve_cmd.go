package main

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/migscope/modules"
	"github.com/iota-uz/migscope/pkg/application"
	"github.com/iota-uz/migscope/pkg/configuration"
	"github.com/iota-uz/migscope/pkg/eventbus"
	"github.com/iota-uz/migscope/pkg/server"
)

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := configuration.Use()
			logger := conf.Logger()

			dsn := conf.Database.ConnectionStringFor(conf.DefaultEnvironment)
			pool, err := pgxpool.New(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer pool.Close()

			app := application.New(&application.ApplicationOptions{
				Pool:     pool,
				EventBus: eventbus.NewEventPublisher(logger),
				Logger:   logger,
				DSN:      dsn,
			})
			if err := modules.Load(app, modules.BuiltInModules...); err != nil {
				return err
			}
			if !skipMigrations {
				if err := app.Migrations().Up(cmd.Context()); err != nil {
					return err
				}
			}

			srv := server.NewHTTPServer(
				app,
				http.NotFoundHandler(),
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				}),
			)
			go func() {
				<-cmd.Context().Done()
				if err := srv.Shutdown(); err != nil {
					logger.WithError(err).Warn("shutdown did not drain cleanly")
				}
			}()
			logger.Infof("listening on %s", conf.SocketAddress)
			return srv.Start(conf.SocketAddress)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending schema migrations on startup")
	return cmd
}
