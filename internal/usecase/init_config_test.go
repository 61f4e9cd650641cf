package usecase_test

import (
	"context"
	"testing"

	"github.com/runoshun/changelog-generator/internal/domain"
	"github.com/runoshun/changelog-generator/internal/testutil"
	"github.com/runoshun/changelog-generator/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates default config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		resolver := &testutil.MockRemoteResolver{Owner: "jwage", Repo: "changelog-generator"}

		uc := usecase.NewInitConfig(manager, resolver)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{Dir: "/test"})

		require.NoError(t, err)
		assert.Equal(t, "/test/.changelog-generator.toml", out.Path)
		assert.True(t, manager.InitCalled)
		assert.Equal(t, domain.ConfigTemplateData{
			Project:    "changelog-generator",
			User:       "jwage",
			Repository: "changelog-generator",
		}, manager.InitData)
	})

	t.Run("creates config at explicit path", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		uc := usecase.NewInitConfig(manager, nil)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{Path: "/test/changelog.yaml", Project: "main"})

		require.NoError(t, err)
		assert.Equal(t, "/test/changelog.yaml", out.Path)
		assert.Equal(t, "main", manager.InitData.Project)
	})

	t.Run("returns error when config already exists", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitErr = domain.ErrConfigExists

		uc := usecase.NewInitConfig(manager, nil)
		_, err := uc.Execute(context.Background(), usecase.InitConfigInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}
