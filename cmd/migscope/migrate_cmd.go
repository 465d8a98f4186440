package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/migscope/modules"
	"github.com/iota-uz/migscope/pkg/application"
	"github.com/iota-uz/migscope/pkg/configuration"
	"github.com/iota-uz/migscope/pkg/eventbus"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schemas across dataset environments",
	}
	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateResetCmd())
	return cmd
}

func newMigrateUpCmd() *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachEnvironment(cmd.Context(), env, func(ctx context.Context, m application.MigrationManager) error {
				return m.Up(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&env, "env", "", "dataset environment (default: all configured)")
	return cmd
}

func newMigrateResetCmd() *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Roll all migrations back down",
		RunE: func(cmd *cobra.Command, args []string) error {
			return forEachEnvironment(cmd.Context(), env, func(ctx context.Context, m application.MigrationManager) error {
				return m.Reset(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&env, "env", "", "dataset environment (default: all configured)")
	return cmd
}

// forEachEnvironment loads the module set against each requested environment
// so registered schemas are applied to that environment's database.
func forEachEnvironment(ctx context.Context, env string, apply func(context.Context, application.MigrationManager) error) error {
	conf := configuration.Use()
	targets := conf.EnvironmentNames()
	if env != "" {
		targets = []string{env}
	}
	for _, name := range targets {
		app := application.New(&application.ApplicationOptions{
			EventBus: eventbus.NewEventPublisher(conf.Logger()),
			Logger:   conf.Logger(),
			DSN:      conf.Database.ConnectionStringFor(name),
		})
		if err := modules.Load(app, modules.BuiltInModules...); err != nil {
			return err
		}
		if err := apply(ctx, app.Migrations()); err != nil {
			return fmt.Errorf("environment %q: %w", name, err)
		}
	}
	return nil
}
