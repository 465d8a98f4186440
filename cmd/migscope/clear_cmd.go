package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
)

func newClearCmd() *cobra.Command {
	var (
		env  string
		kind string
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop one source dataset, or everything including combined records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (kind != "") {
				return fmt.Errorf("pass exactly one of --kind or --all")
			}

			rt, err := newCliRuntime(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := rt.Context(cmd.Context())
			if all {
				return rt.imports.Reinitialize(ctx)
			}
			k, err := records.ParseKind(kind)
			if err != nil {
				return err
			}
			return rt.imports.Clear(ctx, k)
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "dataset environment (default: first configured)")
	cmd.Flags().StringVar(&kind, "kind", "", "data kind to clear")
	cmd.Flags().BoolVar(&all, "all", false, "clear every source dataset and the combined records")
	return cmd
}
