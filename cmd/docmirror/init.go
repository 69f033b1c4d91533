package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docmirror/internal/output"
	"github.com/pdiddy/docmirror/pkg/types"
)

const configHeader = `# docmirror configuration.
# Every key can also be set with a flag or a DOCMIRROR_<KEY> environment variable.
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter docmirror.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")
		if err := writeConfigTemplate(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().String("path", "docmirror.yaml", "where to write the config file")
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	rootCmd.AddCommand(initCmd)
}

// writeConfigTemplate writes a config file populated with defaults and
// example roots. It refuses to replace an existing file unless force is set.
func writeConfigTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return output.NewUserError(fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		} else if !errors.Is(err, fs.ErrNotExist) {
			return output.NewSystemError(err)
		}
	}

	cfg := types.DefaultConfig()
	cfg.Source = "notes"
	cfg.Dest = "site"
	cfg.HistoryDB = ".docmirror/history.db"

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return output.NewSystemError(fmt.Errorf("writing %s: %w", path, err))
	}
	return nil
}
