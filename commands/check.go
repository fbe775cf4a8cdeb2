package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/provgraph/conflict"
)

// NewCheckCommand returns the check command, which evaluates a set of
// changed files against the active constraints and the decision log.
func NewCheckCommand() *cobra.Command {
	var (
		dataDir    string
		components []string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "check <file> [files...]",
		Short: "Evaluate changed files against active constraints",
		Long: `Check evaluates a proposed change against the constraint registry and
the decision log. Hard constraint matches block the change and the
command exits nonzero; soft matches and prior-decision overlaps are
reported for review.

Components are resolved from the file paths via components.yaml unless
given explicitly with --component.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			ds, err := loadDataset(dataDir)
			if err != nil {
				return err
			}

			req := conflict.ChangeRequest{Files: args, Components: components}
			if len(req.Components) == 0 {
				req.Components = ds.resolver.Resolve(cmd.Context(), req.Files)
			}

			report := conflict.NewEvaluator(ds.registry, ds.decisions).Evaluate(req)

			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), conflict.FormatMarkdown(report))
			}

			if !report.CanProceed {
				return fmt.Errorf("blocked by %d hard constraint violation(s)", len(report.Violations()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory (overrides config)")
	cmd.Flags().StringSliceVar(&components, "component", nil, "Affected component (repeatable; resolved from files when omitted)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")

	return cmd
}
