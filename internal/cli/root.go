// Package cli provides the command-line interface for linkgen.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/linkgen/internal/app"
)

// Command group IDs.
const (
	groupSetup    = "setup"
	groupGenerate = "generate"
)

// NewRootCommand creates the root command for linkgen.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "linkgen",
		Short: "Generate friend link data from GitHub issues",
		Long: `linkgen builds a friend link list from the issues of a GitHub repository.

Every issue carrying the configured label is expected to contain one JSON
code block between <!-- DATA_START --> and <!-- DATA_END -->. The decoded
records are grouped by label and written as JSON, JavaScript or YAML.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			if configPath != "" {
				c.UseConfigFile(configPath)
			}

			// Skip for commands that do not read the config
			if cmd.Name() == "init" || cmd.Name() == "check" {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported by the command itself
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: linkgen.toml, then config.toml)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupGenerate, Title: "Generation Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	generateCmd := newGenerateCommand(c)
	generateCmd.GroupID = groupGenerate
	checkCmd := newCheckCommand(c)
	checkCmd.GroupID = groupGenerate
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(generateCmd, checkCmd, configCmd)
	return root
}
