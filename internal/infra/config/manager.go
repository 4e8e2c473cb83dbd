package config

import (
	"os"
	"path/filepath"

	"github.com/runoshun/linkgen/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	loader *Loader
}

// NewManager creates a new Manager for the file the loader resolves.
func NewManager(loader *Loader) *Manager {
	return &Manager{loader: loader}
}

// GetConfigInfo returns information about the active config file.
func (m *Manager) GetConfigInfo() domain.ConfigInfo {
	path := m.loader.Path()
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitConfig creates a config file with the default template and returns its path.
// An existing file is only replaced when force is set.
func (m *Manager) InitConfig(force bool) (string, error) {
	path := m.loader.Path()

	if _, err := os.Stat(path); err == nil && !force {
		return path, domain.ErrConfigExists
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return path, err
		}
	}

	return path, os.WriteFile(path, []byte(domain.ConfigTemplate()), 0o600)
}
