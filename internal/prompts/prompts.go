// Package prompts provides the LLM prompt templates and their rendering.
// Templates use {{placeholder}} markers substituted from a variable map.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Template names. Each corresponds to a file under .devcoach/prompts/.
const (
	NameRequirementsAnalyst = "requirements_analyst"
	NameSprintPlanner       = "sprint_planner"
	NameTaskAssistant       = "task_assistant"
)

// Dir is the per-project prompt override directory.
const Dir = ".devcoach/prompts"

// Render substitutes {{key}} placeholders in tmpl with values from vars.
// Unknown placeholders are left in place so missing variables are visible
// in the rendered output rather than silently dropped.
func Render(tmpl string, vars map[string]string) string {
	out := tmpl
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

// Load returns the template with the given name, preferring a project
// override under .devcoach/prompts/<name>.md and falling back to the
// embedded default.
func Load(name string) (string, error) {
	def, ok := defaults[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt template %q", name)
	}
	path := filepath.Join(Dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return def, nil
		}
		return "", fmt.Errorf("read prompt override %s: %w", path, err)
	}
	return string(data), nil
}

// WriteDefaults writes each default template under dir, skipping files
// that already exist so user edits survive re-initialization.
func WriteDefaults(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prompt dir %s: %w", dir, err)
	}
	var written []string
	for _, name := range Names() {
		path := filepath.Join(dir, name+".md")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(defaults[name]), 0o644); err != nil {
			return nil, fmt.Errorf("write prompt %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Names returns the known template names in stable order.
func Names() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
