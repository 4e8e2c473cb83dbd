package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/linkgen/internal/app"
	"github.com/runoshun/linkgen/internal/domain"
)

// validBody is an issue body that parses.
const validBody = "Add me!\n\n<!-- DATA_START -->\n```json\n{\"name\": \"Alice\", \"url\": \"https://alice.example\", \"description\": \"<b>hi</b>\"}\n```\n<!-- DATA_END -->\n"

// newTestContainer creates a container rooted at a temp directory with stderr captured.
func newTestContainer(t *testing.T) (*app.Container, *bytes.Buffer) {
	t.Helper()
	t.Setenv(domain.TokenEnvVar, "")
	c := app.New(t.TempDir())
	var stderr bytes.Buffer
	c.Stderr = &stderr
	return c, &stderr
}

// writeTestConfig writes a linkgen.toml in the container's working directory.
func writeTestConfig(t *testing.T, c *app.Container, content string) {
	t.Helper()
	path := filepath.Join(c.Config.WorkDir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newIssuesServer serves a fixed issue list for octo/friends.
func newIssuesServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/friends/issues" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}
