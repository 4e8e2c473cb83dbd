package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Config file names searched in the working directory, in order.
const (
	ConfigFileName       = "linkgen.toml"
	LegacyConfigFileName = "config.toml"
)

// TokenEnvVar is consulted when the config file carries no GitHub token.
const TokenEnvVar = "GITHUB_TOKEN"

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings   []string         `toml:"-"`
	GitHub     GitHubConfig     `toml:"github"`
	Output     OutputConfig     `toml:"output"`
	Log        LogConfig        `toml:"log"`
	Generation GenerationConfig `toml:"generation"`
}

// GitHubConfig holds settings from the [github] section.
type GitHubConfig struct {
	Token      string `toml:"token,omitempty"`      // API token; falls back to $GITHUB_TOKEN
	Owner      string `toml:"owner,omitempty"`      // Repository owner; falls back to the origin remote
	Repository string `toml:"repository,omitempty"` // Repository name; falls back to the origin remote
	State      string `toml:"state,omitempty"`      // Issue state filter: open (default), closed or all
	APIURL     string `toml:"api_url,omitempty"`    // GitHub Enterprise API base URL
}

// GenerationConfig holds settings from the [generation] section.
// Fields are ordered to minimize memory padding.
type GenerationConfig struct {
	Label               string          `toml:"label"`                 // Label that marks an issue as active
	Ungrouped           UngroupedConfig `toml:"ungrouped"`             // Placement of records without a group
	Groups              []GroupConfig   `toml:"groups"`                // Configured groups, in output order
	Concurrency         int             `toml:"concurrency"`           // Parallel issue workers
	SortByUpdatedTime   bool            `toml:"sort_by_updated_time"`  // Order by last update instead of creation
	PreserveExtraFields bool            `toml:"preserve_extra_fields"` // Pass unknown record keys through to output
}

// GroupConfig describes one output group from [[generation.groups]].
type GroupConfig struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Label       string `toml:"label"`
}

// UngroupedMode selects what happens to records that match no group.
type UngroupedMode string

// Valid ungrouped modes.
const (
	UngroupedOmit    UngroupedMode = "omit"    // Leave them out of the output
	UngroupedCollect UngroupedMode = "collect" // Put them in a trailing collection
)

// UngroupedConfig holds settings from [generation.ungrouped].
type UngroupedConfig struct {
	Mode        UngroupedMode `toml:"mode"`
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
}

// Output formats.
const (
	FormatJSON = "json"
	FormatJS   = "js"
	FormatYAML = "yaml"
)

// OutputConfig holds settings from the [output] section.
type OutputConfig struct {
	Dir      string   `toml:"dir"`       // Directory for generated files
	Basename string   `toml:"basename"`  // File name without extension
	JSExport string   `toml:"js_export"` // Exported constant name for js output; empty means default export
	Formats  []string `toml:"formats"`   // Any of json, js, yaml
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
	File  string `toml:"file"`  // Optional log file, appended to
}

// Defaults.
const (
	DefaultConcurrency   = 8
	DefaultOutputDir     = "data"
	DefaultBasename      = "links"
	DefaultIssueState    = "open"
	DefaultLogLevel      = "info"
	DefaultUngroupedName = "Others"
)

// NewDefaultConfig returns the configuration used before any file is merged in.
func NewDefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			State: DefaultIssueState,
		},
		Generation: GenerationConfig{
			Concurrency:         DefaultConcurrency,
			PreserveExtraFields: true,
			Ungrouped: UngroupedConfig{
				Mode: UngroupedOmit,
				Name: DefaultUngroupedName,
			},
		},
		Output: OutputConfig{
			Dir:      DefaultOutputDir,
			Basename: DefaultBasename,
			Formats:  []string{FormatJSON},
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks the settings the generator cannot run without.
// GitHub credentials are resolved later and are not checked here.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Generation.Label) == "" {
		problems = append(problems, "generation.label is required")
	}
	if c.Generation.Concurrency < 1 {
		problems = append(problems, "generation.concurrency must be at least 1")
	}

	seen := make(map[string]bool)
	for i, g := range c.Generation.Groups {
		if g.Label == "" {
			problems = append(problems, fmt.Sprintf("generation.groups[%d].label is required", i))
			continue
		}
		if g.Name == "" {
			problems = append(problems, fmt.Sprintf("generation.groups[%d].name is required", i))
		}
		if seen[g.Label] {
			problems = append(problems, fmt.Sprintf("generation.groups[%d]: duplicate label %q", i, g.Label))
		}
		seen[g.Label] = true
	}

	switch c.Generation.Ungrouped.Mode {
	case UngroupedOmit, UngroupedCollect:
	default:
		problems = append(problems, fmt.Sprintf("generation.ungrouped.mode must be %q or %q, got %q",
			UngroupedOmit, UngroupedCollect, c.Generation.Ungrouped.Mode))
	}

	switch c.GitHub.State {
	case "open", "closed", "all":
	default:
		problems = append(problems, fmt.Sprintf("github.state must be open, closed or all, got %q", c.GitHub.State))
	}

	if len(c.Output.Formats) == 0 {
		problems = append(problems, "output.formats must not be empty")
	}
	for _, f := range c.Output.Formats {
		if !slices.Contains([]string{FormatJSON, FormatJS, FormatYAML}, f) {
			problems = append(problems, fmt.Sprintf("output.formats: unknown format %q", f))
		}
	}
	if c.Output.Basename == "" {
		problems = append(problems, "output.basename must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// GroupLabels returns the configured group labels in order.
func (c *Config) GroupLabels() []string {
	return c.Generation.GroupLabels()
}

// GroupLabels returns the configured group labels in order.
func (g GenerationConfig) GroupLabels() []string {
	labels := make([]string, 0, len(g.Groups))
	for _, group := range g.Groups {
		labels = append(labels, group.Label)
	}
	return labels
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}
