// Package docgen keeps README.md and CHANGELOG.md in step with
// completed tasks.
package docgen

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/devcoach/devcoach/internal/logger"
	"github.com/devcoach/devcoach/internal/project"
)

const (
	readmePath    = "README.md"
	changelogPath = "CHANGELOG.md"
)

// UpdateForCompletedTask records a finished task in the README feature
// list and the changelog. Both updates are deduplicated by task ID, so
// completing the same task twice changes nothing.
func UpdateForCompletedTask(proj *project.Project, taskID string) error {
	item := proj.Item(taskID)
	if item == nil {
		return fmt.Errorf("item %s not found", taskID)
	}
	if err := updateReadme(proj.Meta.Name, item); err != nil {
		return fmt.Errorf("update %s: %w", readmePath, err)
	}
	if err := updateChangelog(item); err != nil {
		return fmt.Errorf("update %s: %w", changelogPath, err)
	}
	logger.Info("documentation updated for %s", taskID)
	return nil
}

func updateReadme(projectName string, item *project.Item) error {
	content := ""
	if data, err := os.ReadFile(readmePath); err == nil {
		content = string(data)
	} else {
		content = fmt.Sprintf("# %s\n\n## Features\n\n", projectName)
	}

	if strings.Contains(content, item.ID) {
		return nil
	}

	featureLine := fmt.Sprintf("- [x] %s (%s)\n", item.Title, item.ID)
	if idx := strings.Index(content, "## Features"); idx >= 0 {
		if nl := strings.IndexByte(content[idx:], '\n'); nl >= 0 {
			lineEnd := idx + nl + 1
			content = content[:lineEnd] + featureLine + content[lineEnd:]
		} else {
			content += "\n" + featureLine
		}
	} else {
		content += "\n## Features\n" + featureLine
	}

	return os.WriteFile(readmePath, []byte(content), 0o644)
}

func updateChangelog(item *project.Item) error {
	content := "# Changelog\n\n"
	if data, err := os.ReadFile(changelogPath); err == nil {
		content = string(data)
	}

	if strings.Contains(content, item.ID) {
		return nil
	}

	entry := fmt.Sprintf("## %s - %s\n- Completed: %s (%s)\n\n",
		time.Now().UTC().Format("2006-01-02"), item.Title, item.Story, item.ID)

	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		content = content[:idx+1] + entry + content[idx+1:]
	} else {
		content += entry
	}

	return os.WriteFile(changelogPath, []byte(content), 0o644)
}
