package apply

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/devcoach/devcoach/internal/logger"
)

// ManifestName is the dependency manifest this tool knows how to edit.
const ManifestName = "Cargo.toml"

// AddCargoDependencies inserts dependency lines into the [dependencies]
// section of Cargo.toml under root. Lines whose key already exists are
// skipped, so re-applying the same suggestion is a no-op. Returns the
// lines that were actually added.
func AddCargoDependencies(root string, lines []string) ([]string, error) {
	path := filepath.Join(root, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s not found in %s: %w", ManifestName, root, err)
	}

	var manifest map[string]any
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	existing := map[string]bool{}
	if deps, ok := manifest["dependencies"].(map[string]any); ok {
		for key := range deps {
			existing[key] = true
		}
	}

	content := string(data)
	var added []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, err := dependencyKey(line)
		if err != nil {
			logger.Warn("skipping malformed dependency line %q: %v", line, err)
			continue
		}
		if existing[key] {
			logger.Info("dependency %q already present, skipping", key)
			continue
		}
		content = insertDependencyLine(content, line)
		existing[key] = true
		added = append(added, line)
	}

	if len(added) == 0 {
		return nil, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return added, nil
}

// dependencyKey validates that a line is a single "name = spec" TOML
// entry and returns the name.
func dependencyKey(line string) (string, error) {
	var probe map[string]any
	if err := toml.Unmarshal([]byte(line), &probe); err != nil {
		return "", fmt.Errorf("not a valid TOML entry: %w", err)
	}
	if len(probe) != 1 {
		return "", fmt.Errorf("expected exactly one key, got %d", len(probe))
	}
	for key := range probe {
		return key, nil
	}
	return "", fmt.Errorf("empty entry")
}

// insertDependencyLine places the line at the end of the [dependencies]
// section, creating the section when the manifest has none.
func insertDependencyLine(content, line string) string {
	lines := strings.Split(content, "\n")
	sectionStart := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == "[dependencies]" {
			sectionStart = i
			break
		}
	}
	if sectionStart == -1 {
		out := strings.TrimRight(content, "\n")
		return out + "\n\n[dependencies]\n" + line + "\n"
	}

	insertAt := len(lines)
	for i := sectionStart + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "[") {
			insertAt = i
			break
		}
	}
	// Back up over blank lines so the entry lands inside the section.
	for insertAt > sectionStart+1 && strings.TrimSpace(lines[insertAt-1]) == "" {
		insertAt--
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:insertAt]...)
	out = append(out, line)
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n")
}
