package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/linkgen/internal/domain"
	"github.com/runoshun/linkgen/internal/testutil"
	"github.com/runoshun/linkgen/internal/usecase"
)

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns config info and effective config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.ConfigInfo = domain.ConfigInfo{
			Path:    "/test/site/linkgen.toml",
			Content: "[generation]\nlabel = \"active\"",
			Exists:  true,
		}
		loader := testutil.NewMockConfigLoader()
		loader.Config.Generation.Label = "active"

		uc := usecase.NewShowConfig(manager, loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, "/test/site/linkgen.toml", out.Config.Path)
		assert.Equal(t, "[generation]\nlabel = \"active\"", out.Config.Content)
		assert.True(t, out.Config.Exists)
		require.NotNil(t, out.EffectiveConfig)
		assert.Equal(t, "active", out.EffectiveConfig.Generation.Label)
	})

	t.Run("handles non-existent file", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		loader := testutil.NewMockConfigLoader()
		loader.LoadErr = domain.ErrConfigNotFound

		uc := usecase.NewShowConfig(manager, loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.False(t, out.Config.Exists)
		assert.Nil(t, out.EffectiveConfig)
	})

	t.Run("returns load errors", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		loader := testutil.NewMockConfigLoader()
		loader.LoadErr = errors.Join(domain.ErrInvalidConfig, errors.New("generation.label is required"))

		uc := usecase.NewShowConfig(manager, loader)
		_, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})
}
