package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/provgraph/decision"
)

// NewTraceCommand returns the trace command, which lists the recorded
// decisions that shaped a file.
func NewTraceCommand() *cobra.Command {
	var (
		dataDir string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "List recorded decisions affecting a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			ds, err := loadDataset(dataDir)
			if err != nil {
				return err
			}

			matched, err := decision.Trace(args[0], ds.decisions)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(matched, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatTrace(args[0], matched))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory (overrides config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the decisions as JSON")

	return cmd
}

// formatTrace renders trace results as markdown.
func formatTrace(file string, decisions []decision.Decision) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Decisions affecting %s\n\n", file)
	if len(decisions) == 0 {
		b.WriteString("No recorded decisions affect this file.\n")
		return b.String()
	}

	for _, d := range decisions {
		fmt.Fprintf(&b, "- **%s** [%s, %s]", d.Title, d.Category, d.Importance)
		if d.DecidedBy != "" {
			fmt.Fprintf(&b, " decided by %s", d.DecidedBy)
		}
		fmt.Fprintf(&b, " on %s\n", d.CreatedAt.Format("2006-01-02"))
		for _, alt := range d.AlternativesConsidered {
			fmt.Fprintf(&b, "  - rejected: %s (%s)\n", alt.Title, alt.Reason)
		}
	}
	return b.String()
}
