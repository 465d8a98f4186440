package main

import (
	"github.com/spf13/cobra"
)

type reconcileOutput struct {
	Environment        string   `json:"environment"`
	Total              int      `json:"total"`
	MissingPersonnel   int      `json:"missingPersonnel"`
	AmbiguousGroups    int      `json:"ambiguousGroups"`
	AmbiguousPersonnel int      `json:"ambiguousPersonnel"`
	AmbiguousPackages  int      `json:"ambiguousPackages"`
	AmbiguousTests     int      `json:"ambiguousTests"`
	AmbiguousMigration int      `json:"ambiguousMigration"`
	AmbiguousClusters  int      `json:"ambiguousClusters"`
	WillBeCycles       []string `json:"willBeCycles,omitempty"`
	WillBeChains       []string `json:"willBeChains,omitempty"`
}

func newReconcileCmd() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Rebuild the combined records from the imported source datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newCliRuntime(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer rt.Close()

			report, err := rt.reconciliation.Rebuild(rt.Context(cmd.Context()))
			if err != nil {
				return err
			}
			return writeJSON(reconcileOutput{
				Environment:        envOrDefault(rt, env),
				Total:              report.Total,
				MissingPersonnel:   report.MissingPersonnel,
				AmbiguousGroups:    report.AmbiguousGroups,
				AmbiguousPersonnel: report.AmbiguousPersonnel,
				AmbiguousPackages:  report.AmbiguousPackages,
				AmbiguousTests:     report.AmbiguousTests,
				AmbiguousMigration: report.AmbiguousMigration,
				AmbiguousClusters:  report.AmbiguousClusters,
				WillBeCycles:       report.WillBeCycles,
				WillBeChains:       report.WillBeChains,
			})
		},
	}

	cmd.Flags().StringVar(&env, "env", "", "dataset environment (default: first configured)")
	return cmd
}
