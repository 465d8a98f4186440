package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
)

type importOutput struct {
	Environment string `json:"environment"`
	Kind        string `json:"kind"`
	DataRows    int    `json:"dataRows"`
	Valid       int    `json:"valid"`
	Invalid     int    `json:"invalid"`
	Duplicates  int    `json:"duplicates"`
	Blank       int    `json:"blank"`
}

func newImportCmd() *cobra.Command {
	var (
		env  string
		kind string
		file string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import one spreadsheet into a source dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := records.ParseKind(kind)
			if err != nil {
				return err
			}

			rt, err := newCliRuntime(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer rt.Close()

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			result, err := rt.imports.Import(rt.Context(cmd.Context()), k, f)
			if err != nil {
				return err
			}
			return writeJSON(importOutput{
				Environment: envOrDefault(rt, env),
				Kind:        k.String(),
				DataRows:    result.DataRows,
				Valid:       result.Valid,
				Invalid:     len(result.Invalid),
				Duplicates:  len(result.Duplicates),
				Blank:       result.Blank,
			})
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "dataset environment (default: first configured)")
	cmd.Flags().StringVar(&kind, "kind", "", "data kind: groups, personnel, packages, tests, migration or clusters")
	cmd.Flags().StringVar(&file, "file", "", "path to the .xlsx workbook")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func envOrDefault(rt *cliRuntime, env string) string {
	if env != "" {
		return env
	}
	return rt.conf.DefaultEnvironment
}
