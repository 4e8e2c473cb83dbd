package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/linkgen/internal/app"
	"github.com/runoshun/linkgen/internal/usecase"
)

// errInvalidBody is returned when check rejects a body, so that the process exits non-zero.
var errInvalidBody = errors.New("issue body is invalid")

// newCheckCommand creates the check command.
func newCheckCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [FILE|-]",
		Short: "Validate an issue body",
		Long: `Validate one issue body the way generate would, without contacting GitHub.

The body is read from FILE, or from stdin when FILE is omitted or "-".
On success the decoded record is printed. On failure the failure kind is
printed and the command exits with a non-zero status.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			out, err := c.CheckIssueUseCase().Execute(cmd.Context(), usecase.CheckIssueInput{Body: body})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.OK() {
				_, _ = fmt.Fprintf(w, "%s %v\n", styleFail.Render(out.Kind+":"), out.Err)
				return errInvalidBody
			}

			_, _ = fmt.Fprintln(w, styleOK.Render("OK"))
			enc := json.NewEncoder(w)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(out.Record)
		},
	}

	return cmd
}

// readBody reads the issue body from the file argument or stdin.
func readBody(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
