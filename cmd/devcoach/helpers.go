package main

import (
	"fmt"
	"strings"

	"github.com/devcoach/devcoach/internal/llm"
	"github.com/devcoach/devcoach/internal/project"
)

// transcripts is a persistent flag: record every LLM exchange under
// .devcoach/logs/.
var transcripts bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&transcripts, "transcripts", false,
		"Record LLM prompts and responses under .devcoach/logs/")
}

// loadProject loads project.json with the global LLM layer applied.
func loadProject() (*project.Project, error) {
	proj, err := project.Load(&globalCfg.LLM)
	if err != nil {
		return nil, err
	}
	return proj, nil
}

// newClient builds an Ollama client from the project's resolved config.
func newClient(proj *project.Project) (*llm.Client, error) {
	resolved := proj.LLM()
	if err := resolved.Validate(); err != nil {
		return nil, fmt.Errorf("LLM configuration invalid: %w", err)
	}
	c := llm.New(resolved)
	if transcripts {
		c = c.WithTranscripts()
	}
	return c, nil
}

// promptVars returns the project-level placeholder values shared by all
// prompt templates.
func promptVars(proj *project.Project) map[string]string {
	return map[string]string{
		"project_name":        proj.Meta.Name,
		"project_description": proj.Meta.Description,
		"tech_stack":          strings.Join(proj.Meta.TechStack, ", "),
		"primary_language":    proj.Meta.PrimaryLanguage(),
		"tags":                proj.Meta.TagsDisplay(),
	}
}

// printItem writes one backlog item in the two-line list format.
func printItem(item *project.Item) {
	fmt.Printf("  %s %s - %s [%dpts]\n",
		priorityBadge(string(item.Priority)), idBadge(item.ID), item.Title, item.Effort)
	fmt.Printf("     %s\n", dim(item.Story))
	if item.Sprint != nil {
		fmt.Printf("     sprint: %s\n", *item.Sprint)
	}
	if len(item.Dependencies) > 0 {
		fmt.Printf("     depends on: %s\n", strings.Join(item.Dependencies, ", "))
	}
}

// printItemDetails writes the full task detail block.
func printItemDetails(item *project.Item) {
	fmt.Println(heading("Task details:"))
	fmt.Printf("   Title:    %s\n", item.Title)
	fmt.Printf("   Story:    %s\n", item.Story)
	fmt.Printf("   Priority: %s\n", item.Priority)
	fmt.Printf("   Effort:   %d points\n", item.Effort)
	if len(item.AcceptanceCriteria) > 0 {
		fmt.Println("   Acceptance criteria:")
		for i, c := range item.AcceptanceCriteria {
			fmt.Printf("     %d. %s\n", i+1, c)
		}
	}
}

// criteriaList formats acceptance criteria for prompt substitution.
func criteriaList(criteria []string) string {
	if len(criteria) == 0 {
		return "  - (none specified)"
	}
	lines := make([]string, len(criteria))
	for i, c := range criteria {
		lines[i] = "  - " + c
	}
	return strings.Join(lines, "\n")
}
