package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcoach/devcoach/internal/project"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func runInit(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, initCmd.RunE(initCmd, []string{name}))
}

func resetInitFlags() {
	initFlags.description = ""
	initFlags.descriptionFile = ""
	initFlags.problem = ""
	initFlags.metrics = nil
}

func TestInitMissingDescriptionFileFallsBack(t *testing.T) {
	chdirTemp(t)
	t.Cleanup(resetInitFlags)
	initFlags.description = "Fallback description."
	initFlags.descriptionFile = "does-not-exist.md"

	runInit(t, "demo")

	proj, err := project.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "Fallback description.", proj.Meta.Description)
}

func TestInitEmptyDescriptionFileFallsBack(t *testing.T) {
	dir := chdirTemp(t)
	t.Cleanup(resetInitFlags)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "desc.md"), []byte("  \n"), 0o644))
	initFlags.description = "Fallback description."
	initFlags.descriptionFile = "desc.md"

	runInit(t, "demo")

	proj, err := project.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "Fallback description.", proj.Meta.Description)
}

func TestInitDescriptionFileWins(t *testing.T) {
	dir := chdirTemp(t)
	t.Cleanup(resetInitFlags)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "desc.md"), []byte("From the file.\n"), 0o644))
	initFlags.description = "Ignored."
	initFlags.descriptionFile = "desc.md"

	runInit(t, "demo")

	proj, err := project.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "From the file.", proj.Meta.Description)
}

func TestInitRefusesExistingProject(t *testing.T) {
	chdirTemp(t)
	t.Cleanup(resetInitFlags)

	runInit(t, "demo")

	err := initCmd.RunE(initCmd, []string{"demo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}
