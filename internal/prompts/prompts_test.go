package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out := Render("hello {{name}}, {{name}} again, {{missing}}", map[string]string{
		"name": "world",
	})
	assert.Equal(t, "hello world, world again, {{missing}}", out)
}

func TestLoadFallsBackToDefault(t *testing.T) {
	chdirTemp(t)

	tmpl, err := Load(NameRequirementsAnalyst)
	require.NoError(t, err)
	assert.Equal(t, DefaultRequirementsAnalyst, tmpl)
}

func TestLoadPrefersProjectOverride(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.MkdirAll(Dir, 0o755))
	custom := "custom prompt for {{requirement}}"
	require.NoError(t, os.WriteFile(filepath.Join(Dir, NameRequirementsAnalyst+".md"), []byte(custom), 0o644))

	tmpl, err := Load(NameRequirementsAnalyst)
	require.NoError(t, err)
	assert.Equal(t, custom, tmpl)
}

func TestLoadUnknownName(t *testing.T) {
	_, err := Load("nonexistent")
	assert.ErrorContains(t, err, "unknown prompt template")
}

func TestWriteDefaults(t *testing.T) {
	dir := t.TempDir()

	written, err := WriteDefaults(dir)
	require.NoError(t, err)
	assert.Len(t, written, 3)

	for _, name := range Names() {
		data, err := os.ReadFile(filepath.Join(dir, name+".md"))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}

	// Existing files are left alone on a second run.
	edited := filepath.Join(dir, NameTaskAssistant+".md")
	require.NoError(t, os.WriteFile(edited, []byte("edited"), 0o644))
	written, err = WriteDefaults(dir)
	require.NoError(t, err)
	assert.Empty(t, written)
	data, err := os.ReadFile(edited)
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))
}

func TestDefaultsContainPlaceholders(t *testing.T) {
	assert.True(t, strings.Contains(DefaultRequirementsAnalyst, "{{requirement}}"))
	assert.True(t, strings.Contains(DefaultSprintPlanner, "{{backlog}}"))
	assert.True(t, strings.Contains(DefaultTaskAssistant, "{{user_prompt}}"))
}

func chdirTemp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}
