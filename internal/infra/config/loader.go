// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/linkgen/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file.
type Loader struct {
	getenv  func(string) string
	workDir string // Directory searched for the default file names
	path    string // Explicit config path (optional)
}

// NewLoader creates a new Loader.
// If path is empty, linkgen.toml and then config.toml are looked up in workDir.
func NewLoader(workDir, path string) *Loader {
	return &Loader{
		workDir: workDir,
		path:    path,
		getenv:  os.Getenv,
	}
}

// NewLoaderWithEnv creates a new Loader with a custom environment lookup.
// This is useful for testing.
func NewLoaderWithEnv(workDir, path string, getenv func(string) string) *Loader {
	return &Loader{
		workDir: workDir,
		path:    path,
		getenv:  getenv,
	}
}

// Path returns the config file the loader reads.
// When no candidate exists it returns the preferred default location.
func (l *Loader) Path() string {
	if l.path != "" {
		return l.path
	}
	for _, name := range []string{domain.ConfigFileName, domain.LegacyConfigFileName} {
		p := filepath.Join(l.workDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(l.workDir, domain.ConfigFileName)
}

// Load reads the config file, merges it over the defaults and validates it.
func (l *Loader) Load() (*domain.Config, error) {
	path := l.Path()
	file, err := l.loadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	cfg := mergeConfigs(domain.NewDefaultConfig(), file)
	if cfg.GitHub.Token == "" && l.getenv != nil {
		cfg.GitHub.Token = l.getenv(domain.TokenEnvVar)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return convertRawToFileConfig(raw), nil
}

// fileConfig is the parsed file content. Pointers mark values that were set,
// so that explicit false and zero values override the defaults.
type fileConfig struct {
	concurrency         *int64
	sortByUpdatedTime   *bool
	preserveExtraFields *bool
	formats             []string
	groups              []domain.GroupConfig
	warnings            []string
	ungrouped           domain.UngroupedConfig
	github              domain.GitHubConfig
	output              domain.OutputConfig
	log                 domain.LogConfig
	label               string
	hasGroups           bool
}

// convertRawToFileConfig converts the raw map to file config and collects warnings.
func convertRawToFileConfig(raw map[string]any) *fileConfig {
	res := &fileConfig{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "github":
			for k, v := range m {
				switch k {
				case "token":
					res.github.Token = stringOf(v)
				case "owner":
					res.github.Owner = stringOf(v)
				case "repository":
					res.github.Repository = stringOf(v)
				case "state":
					res.github.State = stringOf(v)
				case "api_url":
					res.github.APIURL = stringOf(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [github]: %s", k))
				}
			}
		case "generation":
			warnings = append(warnings, parseGenerationSection(m, res)...)
		case "output":
			for k, v := range m {
				switch k {
				case "dir":
					res.output.Dir = stringOf(v)
				case "basename":
					res.output.Basename = stringOf(v)
				case "js_export":
					res.output.JSExport = stringOf(v)
				case "formats":
					res.formats = stringsOf(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [output]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.log.Level = stringOf(v)
				case "file":
					res.log.File = stringOf(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.warnings = warnings
	return res
}

// parseGenerationSection parses [generation] into res and returns warnings.
func parseGenerationSection(m map[string]any, res *fileConfig) []string {
	var warnings []string
	for k, v := range m {
		switch k {
		case "label":
			res.label = stringOf(v)
		case "sort_by_updated_time":
			if b, ok := v.(bool); ok {
				res.sortByUpdatedTime = &b
			} else {
				warnings = append(warnings, "generation.sort_by_updated_time must be a boolean")
			}
		case "preserve_extra_fields":
			if b, ok := v.(bool); ok {
				res.preserveExtraFields = &b
			} else {
				warnings = append(warnings, "generation.preserve_extra_fields must be a boolean")
			}
		case "concurrency":
			if n, ok := v.(int64); ok {
				res.concurrency = &n
			} else {
				warnings = append(warnings, "generation.concurrency must be an integer")
			}
		case "groups":
			res.hasGroups = true
			items, _ := v.([]any)
			for i, item := range items {
				gm, ok := item.(map[string]any)
				if !ok {
					warnings = append(warnings, fmt.Sprintf("generation.groups[%d] is not a table", i))
					continue
				}
				var g domain.GroupConfig
				for gk, gv := range gm {
					switch gk {
					case "name":
						g.Name = stringOf(gv)
					case "description":
						g.Description = stringOf(gv)
					case "label":
						g.Label = stringOf(gv)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [[generation.groups]]: %s", gk))
					}
				}
				res.groups = append(res.groups, g)
			}
		case "ungrouped":
			um, ok := v.(map[string]any)
			if !ok {
				warnings = append(warnings, "generation.ungrouped is not a table")
				continue
			}
			for uk, uv := range um {
				switch uk {
				case "mode":
					res.ungrouped.Mode = domain.UngroupedMode(stringOf(uv))
				case "name":
					res.ungrouped.Name = stringOf(uv)
				case "description":
					res.ungrouped.Description = stringOf(uv)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [generation.ungrouped]: %s", uk))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in [generation]: %s", k))
		}
	}
	return warnings
}

// mergeConfigs merges the file config over base, with the file taking precedence.
func mergeConfigs(base *domain.Config, override *fileConfig) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.warnings...)
	result.Output.Formats = append([]string{}, base.Output.Formats...)
	result.Generation.Groups = append([]domain.GroupConfig{}, base.Generation.Groups...)

	if override.github.Token != "" {
		result.GitHub.Token = override.github.Token
	}
	if override.github.Owner != "" {
		result.GitHub.Owner = override.github.Owner
	}
	if override.github.Repository != "" {
		result.GitHub.Repository = override.github.Repository
	}
	if override.github.State != "" {
		result.GitHub.State = override.github.State
	}
	if override.github.APIURL != "" {
		result.GitHub.APIURL = override.github.APIURL
	}

	if override.label != "" {
		result.Generation.Label = override.label
	}
	if override.sortByUpdatedTime != nil {
		result.Generation.SortByUpdatedTime = *override.sortByUpdatedTime
	}
	if override.preserveExtraFields != nil {
		result.Generation.PreserveExtraFields = *override.preserveExtraFields
	}
	if override.concurrency != nil {
		result.Generation.Concurrency = int(*override.concurrency)
	}
	if override.hasGroups {
		result.Generation.Groups = override.groups
	}
	if override.ungrouped.Mode != "" {
		result.Generation.Ungrouped.Mode = override.ungrouped.Mode
	}
	if override.ungrouped.Name != "" {
		result.Generation.Ungrouped.Name = override.ungrouped.Name
	}
	if override.ungrouped.Description != "" {
		result.Generation.Ungrouped.Description = override.ungrouped.Description
	}

	if override.output.Dir != "" {
		result.Output.Dir = override.output.Dir
	}
	if override.output.Basename != "" {
		result.Output.Basename = override.output.Basename
	}
	if override.output.JSExport != "" {
		result.Output.JSExport = override.output.JSExport
	}
	if override.formats != nil {
		result.Output.Formats = override.formats
	}

	if override.log.Level != "" {
		result.Log.Level = override.log.Level
	}
	if override.log.File != "" {
		result.Log.File = override.log.File
	}

	return &result
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func stringsOf(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
