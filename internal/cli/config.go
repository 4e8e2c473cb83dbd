package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/linkgen/internal/app"
	"github.com/runoshun/linkgen/internal/domain"
	"github.com/runoshun/linkgen/internal/usecase"
)

// maskedToken replaces the API token in displayed configuration.
const maskedToken = "********"

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage the linkgen configuration file.`,
		// No RunE: shows subcommand list when called without arguments
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the config file in use and the effective configuration after
merging it over the defaults. The GitHub token is masked.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded file section
			_, _ = fmt.Fprintln(w, styleHeading.Render("[Loaded from]"))
			if out.Config.Exists {
				_, _ = fmt.Fprintf(w, "- %s\n", out.Config.Path)
			} else {
				_, _ = fmt.Fprintf(w, "- %s %s\n", out.Config.Path, styleMuted.Render("(not found)"))
			}

			if out.EffectiveConfig == nil {
				_, _ = fmt.Fprintln(w)
				_, _ = fmt.Fprintln(w, "Run 'linkgen config init' to create one.")
				return nil
			}

			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, styleHeading.Render("[Effective Config]"))
			return formatEffectiveConfig(w, out.EffectiveConfig)
		},
	}

	return cmd
}

// formatEffectiveConfig formats the effective config in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	shown := *cfg
	if shown.GitHub.Token != "" {
		shown.GitHub.Token = maskedToken
	}

	enc := toml.NewEncoder(w)
	enc.SetIndentTables(false)
	if err := enc.Encode(shown); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a commented configuration file template.

The file is created at the --config path, or linkgen.toml in the current directory.

Error conditions:
- Target file already exists and --force is not set: error`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{Force: force})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}
