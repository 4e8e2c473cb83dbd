package usecase

import (
	"context"
	"errors"

	"github.com/runoshun/linkgen/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config    // Defaults merged with the file; nil when no file exists
	Config          domain.ConfigInfo // Config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information and the effective config.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	out := &ShowConfigOutput{
		Config: uc.configManager.GetConfigInfo(),
	}

	cfg, err := uc.configLoader.Load()
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			return out, nil
		}
		return nil, err
	}
	out.EffectiveConfig = cfg
	return out, nil
}
