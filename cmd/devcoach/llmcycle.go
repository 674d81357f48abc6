package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/apply"
	"github.com/devcoach/devcoach/internal/project"
)

var llmCycleFlags struct {
	prompt string
}

var llmCycleCmd = &cobra.Command{
	Use:   "llm-cycle",
	Short: "Send a free-form prompt through the project's LLM",
	Long: `llm-cycle sends a one-off chat prompt to the configured Ollama model
and renders the response. When no project exists yet, one is created in the
current directory so the LLM settings have a place to live.

The --prompt value is treated as a file path when it names a readable file,
so prompts can be kept under version control.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if llmCycleFlags.prompt == "" {
			return fmt.Errorf("--prompt is required")
		}

		var proj *project.Project
		var err error
		if project.Exists() {
			proj, err = loadProject()
		} else {
			fmt.Println(dim("No " + project.FileName + " found, creating one here."))
			proj, err = project.CreateInCurrentDir(&globalCfg.LLM)
		}
		if err != nil {
			return err
		}

		prompt := llmCycleFlags.prompt
		if strings.Contains(prompt, ".") {
			if data, err := os.ReadFile(prompt); err == nil {
				fmt.Println(dim("Reading prompt from " + prompt))
				prompt = string(data)
			}
		}

		client, err := newClient(proj)
		if err != nil {
			return err
		}

		fmt.Println(heading("Chatting with " + client.Model() + "..."))
		response, err := client.Chat(cmd.Context(), prompt)
		if err != nil {
			return err
		}
		fmt.Println(apply.RenderMarkdown(response))
		return nil
	},
}

func init() {
	llmCycleCmd.Flags().StringVar(&llmCycleFlags.prompt, "prompt", "", "prompt text, or a path to a prompt file")
}
