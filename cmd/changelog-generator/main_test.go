package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func TestRun_Version(t *testing.T) {
	chdir(t, t.TempDir())

	assert.NoError(t, run([]string{"--version"}))
}

func TestRun_InvalidConfig(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	err := run([]string{"--milestone", "1.0"})

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestRun_ConfigInit(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, run([]string{"config", "init", "-p", "main"}))

	content, err := os.ReadFile(filepath.Join(dir, domain.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[projects.main]")

	err = run([]string{"config", "init"})
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
