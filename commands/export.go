package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c360studio/provgraph/config"
	"github.com/c360studio/provgraph/datadir"
	"github.com/c360studio/provgraph/export"
)

// NewExportCommand returns the export command, which serializes a team's
// provenance graph as RDF.
func NewExportCommand() *cobra.Command {
	var (
		dataDir string
		team    string
		format  string
		profile string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a team's provenance graph as RDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.NewLoader(nil).Load()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.Data.Dir = dataDir
			}
			if team == "" {
				team = cfg.Data.DefaultTeam
			}
			if format == "" {
				format = cfg.Export.Format
			}
			if profile == "" {
				profile = cfg.Export.Profile
			}

			if _, ok := export.GetFormatInfo(export.Format(format)); !ok {
				return fmt.Errorf("unsupported format %q", format)
			}
			if _, ok := export.Profiles[export.Profile(profile)]; !ok {
				return fmt.Errorf("unknown profile %q", profile)
			}

			g, err := datadir.LoadTeamGraph(datadir.TeamPath(cfg.Data.Dir, team))
			if err != nil {
				return fmt.Errorf("team %q: %w", team, err)
			}

			out, err := export.FromGraph(team, g, export.Profile(profile)).Export(export.Format(format))
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(out), 0644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory (overrides config)")
	cmd.Flags().StringVar(&team, "team", "", "Team graph to export (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: turtle, ntriples, or jsonld")
	cmd.Flags().StringVar(&profile, "profile", "", "Vocabulary profile: minimal, prov, or bfo")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write output to a file instead of stdout")

	return cmd
}
