package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/c360studio/provgraph/config"
	"github.com/c360studio/provgraph/datadir"
)

// NewInitCommand returns the init command, which scaffolds a provgraph
// data directory and the user-level config file.
func NewInitCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold the data directory and default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if err := config.NewLoader(nil).EnsureUserConfig(); err != nil {
				return fmt.Errorf("user config: %w", err)
			}

			if dataDir == "" {
				dataDir = "data"
			}
			created, err := scaffoldDataDir(dataDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(created) == 0 {
				fmt.Fprintln(out, "Data directory already initialized.")
				return nil
			}
			for _, path := range created {
				fmt.Fprintf(out, "Created %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "Data directory to create (default \"data\")")

	return cmd
}

// scaffoldDataDir creates the data directory skeleton, skipping files that
// already exist. It returns the paths it created.
func scaffoldDataDir(dataDir string) ([]string, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, datadir.TeamsDir), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	starters := map[string]string{
		datadir.ConstraintsFile: "version: \"1\"\nconstraints: []\n",
		datadir.DecisionsFile:   "version: \"1\"\ndecisions: []\n",
		datadir.ComponentsFile:  "version: \"1\"\nrules: []\n",
	}

	var created []string
	for _, name := range []string{datadir.ConstraintsFile, datadir.DecisionsFile, datadir.ComponentsFile} {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(starters[name]), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		created = append(created, path)
	}
	return created, nil
}
