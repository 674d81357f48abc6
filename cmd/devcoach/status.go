package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/project"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show project state and LLM connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !project.Exists() {
			fmt.Println(warn("No " + project.FileName + " found in this directory."))
			fmt.Println(dim("Run devcoach init to start a project."))
			return nil
		}

		proj, err := loadProject()
		if err != nil {
			return err
		}

		fmt.Println(heading("Project: " + proj.Meta.Name))
		fmt.Println("  " + proj.Meta.Description)
		fmt.Printf("  Tech stack: %s\n", proj.Meta.TechStackDescription())
		fmt.Printf("  Tags:       %s\n", proj.Meta.TagsDisplay())
		fmt.Printf("  Created:    %s\n", proj.Meta.Created.Format("2006-01-02"))
		if proj.Meta.PRD != nil {
			fmt.Printf("  Problem:    %s\n", proj.Meta.PRD.Problem)
		}
		fmt.Println()

		todo := len(proj.TodoItems())
		done := len(proj.DoneItems())
		fmt.Printf("Backlog: %d items (%d to do, %d done)\n", len(proj.Backlog), todo, done)
		if sprint := proj.ActiveSprint(); sprint != nil {
			fmt.Printf("Active sprint: %s %q, %d%% complete\n", sprint.ID, sprint.Goal, sprint.Progress())
		} else {
			fmt.Println("Active sprint: none")
		}
		fmt.Println()

		resolved := proj.LLM()
		fmt.Println(heading("LLM configuration:"))
		fmt.Printf("  Host:    %s (%s)\n", resolved.Host, resolved.HostSource)
		fmt.Printf("  Port:    %d (%s)\n", resolved.Port, resolved.PortSource)
		fmt.Printf("  Model:   %s (%s)\n", resolved.Model, resolved.ModelSource)
		fmt.Printf("  Timeout: %s (%s)\n", resolved.Timeout(), resolved.TimeoutSource)
		fmt.Println()

		client, err := newClient(proj)
		if err != nil {
			return err
		}

		fmt.Printf("Checking Ollama at %s...\n", client.BaseURL())
		pingCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		models, err := client.Ping(pingCtx)
		if err != nil {
			fmt.Println(fail("Ollama is not reachable"))
			fmt.Println()
			fmt.Println("Troubleshooting:")
			fmt.Println("  1. Start the server: ollama serve")
			fmt.Printf("  2. Pull the model:   ollama pull %s\n", resolved.Model)
			fmt.Println("  3. Check host/port in the llm section of " + project.FileName)
			return err
		}

		fmt.Println(success("Ollama is reachable"))
		available := false
		for _, m := range models {
			if m == resolved.Model {
				available = true
				break
			}
		}
		if available {
			fmt.Println(success("Model " + resolved.Model + " is available"))
		} else {
			fmt.Println(warn("Model " + resolved.Model + " is not downloaded"))
			fmt.Printf("Pull it with: ollama pull %s\n", resolved.Model)
			if len(models) > 0 {
				fmt.Println("Available models:")
				for _, m := range models {
					fmt.Println("  - " + m)
				}
			}
		}
		return nil
	},
}
