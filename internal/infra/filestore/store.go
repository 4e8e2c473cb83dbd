// Package filestore provides a file-based implementation of OutputSink.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/linkgen/internal/domain"
)

// Ensure Store implements domain.OutputSink.
var _ domain.OutputSink = (*Store)(nil)

// extensions maps output formats to file extensions.
var extensions = map[string]string{
	domain.FormatJSON: ".json",
	domain.FormatJS:   ".js",
	domain.FormatYAML: ".yaml",
}

// Store writes generated collections under an output directory.
type Store struct {
	dir      string
	basename string
	jsExport string
	formats  []string
}

// New creates a new Store from the output settings.
func New(cfg domain.OutputConfig) (*Store, error) {
	if cfg.JSExport != "" && !IsIdentifier(cfg.JSExport) {
		return nil, fmt.Errorf("%w: output.js_export %q is not a valid identifier", domain.ErrInvalidConfig, cfg.JSExport)
	}
	for _, f := range cfg.Formats {
		if _, ok := extensions[f]; !ok {
			return nil, fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidConfig, f)
		}
	}
	return &Store{
		dir:      cfg.Dir,
		basename: cfg.Basename,
		jsExport: cfg.JSExport,
		formats:  cfg.Formats,
	}, nil
}

// Path returns the file a format is written to.
func (s *Store) Path(format string) string {
	return filepath.Join(s.dir, s.basename+extensions[format])
}

// Render serializes groups in the given format.
// JSON is the canonical form; the other formats are derived from it so that
// key order is identical everywhere.
func (s *Store) Render(format string, groups []domain.GroupOutput) ([]byte, error) {
	data, err := renderJSON(groups)
	if err != nil {
		return nil, err
	}
	switch format {
	case domain.FormatJSON:
		return data, nil
	case domain.FormatJS:
		return renderJS(data, s.jsExport)
	case domain.FormatYAML:
		return renderYAML(data)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Write renders every configured format and then replaces the files.
// A render failure leaves the output directory untouched.
func (s *Store) Write(ctx context.Context, groups []domain.GroupOutput) ([]string, error) {
	rendered := make([][]byte, len(s.formats))
	for i, f := range s.formats {
		content, err := s.Render(f, groups)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		rendered[i] = content
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	paths := make([]string, 0, len(s.formats))
	for i, f := range s.formats {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := s.Path(f)
		if err := writeFileAtomic(path, rendered[i]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// renderJSON encodes groups as indented JSON without HTML escaping.
func renderJSON(groups []domain.GroupOutput) ([]byte, error) {
	if groups == nil {
		groups = []domain.GroupOutput{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(groups); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes content to a temp file next to path and renames it into place.
func writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
