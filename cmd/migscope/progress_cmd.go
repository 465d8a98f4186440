package main

import (
	"github.com/spf13/cobra"

	"github.com/iota-uz/migscope/modules/migration/services"
)

func newProgressCmd() *cobra.Command {
	var (
		env               string
		excludeRedirected bool
		exceptLeft        bool
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Score migration progress over the combined records",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newCliRuntime(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer rt.Close()

			report, err := rt.scoring.Score(rt.Context(cmd.Context()), services.ScoreOptions{
				ExcludeRedirected: excludeRedirected,
				ExceptLeft:        exceptLeft,
			})
			if err != nil {
				return err
			}
			return writeJSON(report)
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "dataset environment (default: first configured)")
	cmd.Flags().BoolVar(&excludeRedirected, "exclude-redirected", false, "fold users of redirected applications into their successor")
	cmd.Flags().BoolVar(&exceptLeft, "except-left", false, "skip users who have already left the organization")
	return cmd
}
