package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/linkgen/internal/app"
	"github.com/runoshun/linkgen/internal/usecase"
)

// newGenerateCommand creates the generate command.
func newGenerateCommand(c *app.Container) *cobra.Command {
	var dryRun bool
	var outputDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch issues and write the link data files",
		Long: `Fetch the repository's issues, parse the data block of every active issue
and write one file per configured output format.

Issues that fail to parse are skipped and listed in the summary; they never
fail the run. Fetch and write failures do, and no output file is touched then.

With --dry-run the JSON document is printed to stdout instead of written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, closer, err := c.GenerateLinksUseCase(app.GenerateOptions{OutputDir: outputDir})
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			out, err := uc.Execute(cmd.Context(), usecase.GenerateLinksInput{DryRun: dryRun})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if dryRun {
				_, _ = w.Write(out.Preview)
			} else {
				for _, p := range out.Paths {
					_, _ = fmt.Fprintf(w, "Wrote %s\n", p)
				}
			}

			printSummary(cmd.ErrOrStderr(), out.Result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the JSON output instead of writing files")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Override output.dir")

	return cmd
}

// printSummary writes run counts and the skipped issues.
func printSummary(w io.Writer, res *usecase.PipelineOutput) {
	_, _ = fmt.Fprintf(w, "%s %d entries from %d issues %s\n",
		styleOK.Render("Generated"),
		res.Accepted(),
		res.Total,
		styleMuted.Render(fmt.Sprintf("(%d inactive, %d skipped, %d ungrouped)", res.Inactive, res.Skipped(), res.Ungrouped)),
	)
	for _, g := range res.Groups {
		name := g.GroupName
		if name == "" {
			name = g.Group
		}
		_, _ = fmt.Fprintf(w, "  %s: %d\n", name, len(g.Entries))
	}
	if len(res.Diagnostics) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w, styleWarn.Render("Skipped issues:"))
	for _, d := range res.Diagnostics {
		_, _ = fmt.Fprintf(w, "  #%d [%s] %s: %v\n", d.Number, d.Kind, d.Title, d.Err)
	}
}
