// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/runoshun/linkgen/internal/domain"
	"github.com/runoshun/linkgen/internal/infra/config"
	"github.com/runoshun/linkgen/internal/infra/filestore"
	"github.com/runoshun/linkgen/internal/infra/git"
	"github.com/runoshun/linkgen/internal/infra/github"
	"github.com/runoshun/linkgen/internal/infra/logging"
	"github.com/runoshun/linkgen/internal/usecase"
)

// httpTimeout bounds each GitHub API request.
const httpTimeout = 30 * time.Second

// Config holds the application paths.
type Config struct {
	WorkDir    string // Directory commands run in
	ConfigPath string // Explicit config file (optional)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Repository    domain.RepositoryResolver
	Clock         domain.Clock

	// Pointer fields
	HTTPClient *http.Client
	Stderr     io.Writer

	// Configuration
	Config Config
}

// New creates a new Container rooted at dir.
func New(dir string) *Container {
	c := &Container{
		Repository: git.NewClient(),
		Clock:      domain.RealClock{},
		HTTPClient: &http.Client{Timeout: httpTimeout},
		Stderr:     os.Stderr,
		Config:     Config{WorkDir: dir},
	}
	c.UseConfigFile("")
	return c
}

// UseConfigFile switches the container to an explicit config file.
// An empty path restores the default lookup in the working directory.
func (c *Container) UseConfigFile(path string) {
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.Config.WorkDir, path)
	}
	loader := config.NewLoader(c.Config.WorkDir, path)
	c.Config.ConfigPath = path
	c.ConfigLoader = loader
	c.ConfigManager = config.NewManager(loader)
}

// GenerateOptions overrides config values for a single generation run.
type GenerateOptions struct {
	OutputDir string // Replaces output.dir when set
}

// UseCase factory methods

// CheckIssueUseCase returns a new CheckIssue use case.
func (c *Container) CheckIssueUseCase() *usecase.CheckIssue {
	return usecase.NewCheckIssue()
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// GenerateLinksUseCase loads the config and wires the GitHub source, output
// store and logger into a GenerateLinks use case.
// The returned closer releases the log file and must be called when done.
func (c *Container) GenerateLinksUseCase(opts GenerateOptions) (*usecase.GenerateLinks, io.Closer, error) {
	cfg, err := c.ConfigLoader.Load()
	if err != nil {
		return nil, nil, err
	}

	if cfg.GitHub.Owner == "" || cfg.GitHub.Repository == "" {
		owner, repo, err := c.Repository.Resolve(c.Config.WorkDir)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", domain.ErrMissingRepository, err)
		}
		if cfg.GitHub.Owner == "" {
			cfg.GitHub.Owner = owner
		}
		if cfg.GitHub.Repository == "" {
			cfg.GitHub.Repository = repo
		}
	}

	source, err := github.NewSource(cfg.GitHub, c.HTTPClient)
	if err != nil {
		return nil, nil, err
	}

	output := cfg.Output
	if opts.OutputDir != "" {
		output.Dir = opts.OutputDir
	}
	output.Dir = c.resolvePath(output.Dir)
	sink, err := filestore.New(output)
	if err != nil {
		return nil, nil, err
	}

	logFile := cfg.Log.File
	if logFile != "" {
		logFile = c.resolvePath(logFile)
	}
	logger := logging.New(c.Stderr, logFile, logging.ParseLevel(cfg.Log.Level))

	return usecase.NewGenerateLinks(source, sink, cfg.Generation, logger, c.Clock), logger, nil
}

// resolvePath makes a relative path relative to the working directory.
func (c *Container) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Config.WorkDir, path)
}
