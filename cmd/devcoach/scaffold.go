package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devcoach/devcoach/internal/project"
	"github.com/devcoach/devcoach/internal/prompts"
)

const gitignoreAdditions = `
# devcoach
.devcoach/cache/
.devcoach/logs/
`

func readmeTemplate(projectName string) string {
	return fmt.Sprintf(`# %s

This project uses devcoach for AI-assisted development.

## Quick Start

`+"```bash"+`
# Check project status and LLM connectivity
devcoach status

# Add requirements in natural language
devcoach add-requirement "I want to build a REST API for user management"

# View and manage the backlog
devcoach list-backlog
devcoach add-story --title "User Authentication" --description "Login system"

# Plan and run sprints
devcoach plan-sprint --goal "MVP development" --days 14
devcoach start-sprint SPRINT-001
devcoach show-sprint

# Work on tasks
devcoach start-task US-001
devcoach assist-task US-001
devcoach complete-task US-001
`+"```"+`

## Project Structure

- `+"`project.json`"+` - Project configuration and backlog
- `+"`.devcoach/`"+` - prompts, cache, and logs
- `+"`README.md`"+` - This file

## LLM Configuration

devcoach uses Ollama by default. Make sure you have:

1. Ollama installed and running: `+"`ollama serve`"+`
2. A model downloaded: `+"`ollama pull deepseek-coder:6.7b`"+`

Connection settings live in the `+"`llm`"+` section of `+"`project.json`"+`
and can also be set globally or via DEVCOACH_* environment variables.
`, projectName)
}

// scaffoldWorkspace creates the data directory, default prompts, README,
// and gitignore entries around a freshly created project.
func scaffoldWorkspace(projectName string) error {
	for _, dir := range []string{
		filepath.Join(project.DataDir, "cache"),
		filepath.Join(project.DataDir, "logs"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	written, err := prompts.WriteDefaults(prompts.Dir)
	if err != nil {
		return err
	}
	if len(written) > 0 {
		fmt.Println(success("Created default prompts under " + prompts.Dir))
	}

	if _, err := os.Stat("README.md"); os.IsNotExist(err) {
		if err := os.WriteFile("README.md", []byte(readmeTemplate(projectName)), 0o644); err != nil {
			return fmt.Errorf("create README.md: %w", err)
		}
		fmt.Println(success("Created README.md"))
	} else {
		fmt.Println(dim("README.md already exists, skipping"))
	}

	return updateGitignore()
}

func updateGitignore() error {
	data, err := os.ReadFile(".gitignore")
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read .gitignore: %w", err)
		}
		content := "# Generated files\n" + gitignoreAdditions
		if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
			return fmt.Errorf("create .gitignore: %w", err)
		}
		fmt.Println(success("Created .gitignore"))
		return nil
	}

	if strings.Contains(string(data), "# devcoach") {
		fmt.Println(dim(".gitignore already has devcoach entries, skipping"))
		return nil
	}
	if err := os.WriteFile(".gitignore", append(data, []byte(gitignoreAdditions)...), 0o644); err != nil {
		return fmt.Errorf("update .gitignore: %w", err)
	}
	fmt.Println(success("Updated .gitignore with devcoach entries"))
	return nil
}
