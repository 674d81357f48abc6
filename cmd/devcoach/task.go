package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/apply"
	"github.com/devcoach/devcoach/internal/docgen"
	"github.com/devcoach/devcoach/internal/llm"
	"github.com/devcoach/devcoach/internal/logger"
	"github.com/devcoach/devcoach/internal/project"
	"github.com/devcoach/devcoach/internal/prompts"
	"github.com/devcoach/devcoach/internal/suggest"
)

var startTaskCmd = &cobra.Command{
	Use:   "start-task <task-id>",
	Short: "Mark a task as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		item := proj.Item(args[0])
		if item == nil {
			return fmt.Errorf("task %s not found", args[0])
		}
		item.Status = project.StatusInProgress
		if err := proj.Save(); err != nil {
			return err
		}

		fmt.Println(success("Started " + item.ID + ": " + item.Title))
		fmt.Println()
		printItemDetails(item)
		fmt.Println()
		fmt.Println(dim("Get AI help with:  devcoach assist-task " + item.ID))
		fmt.Println(dim("Mark it done with: devcoach complete-task " + item.ID))
		return nil
	},
}

var assistTaskFlags struct {
	prompt string
}

var assistTaskCmd = &cobra.Command{
	Use:   "assist-task <task-id>",
	Short: "Ask the LLM for help with a task and apply its suggestions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		item := proj.Item(args[0])
		if item == nil {
			return fmt.Errorf("task %s not found", args[0])
		}
		client, err := newClient(proj)
		if err != nil {
			return err
		}

		userPrompt := assistTaskFlags.prompt
		if userPrompt == "" {
			userPrompt = "Provide general assistance and next steps for this task."
		}
		return assist(cmd, proj, item, client, userPrompt)
	},
}

// assist runs the task-assistant prompt and applies whatever comes back,
// structured suggestions first and raw code blocks as the fallback.
func assist(cmd *cobra.Command, proj *project.Project, item *project.Item, client *llm.Client, userPrompt string, opts ...apply.Option) error {
	tmpl, err := prompts.Load(prompts.NameTaskAssistant)
	if err != nil {
		return err
	}
	vars := promptVars(proj)
	vars["task_id"] = item.ID
	vars["task_title"] = item.Title
	vars["task_story"] = item.Story
	vars["acceptance_criteria"] = criteriaList(item.AcceptanceCriteria)
	vars["user_prompt"] = userPrompt
	prompt := prompts.Render(tmpl, vars)

	fmt.Println(heading("Asking " + client.Model() + " about " + item.ID + "..."))
	response, err := client.Generate(cmd.Context(), prompt)
	if err != nil {
		return fmt.Errorf("generate assistance: %w", err)
	}

	applier := apply.New(".", opts...)
	resp, parseErr := suggest.ParseAssistResponse(response)
	if parseErr != nil {
		logger.Warn("Structured suggestion parse failed: %v", parseErr)
		fmt.Println(apply.RenderMarkdown(response))
		blocks := suggest.ExtractCodeBlocks(proj.Meta.PrimaryLanguage(), response)
		if len(blocks) == 0 {
			fmt.Println(dim("No structured suggestions or code blocks found in the response."))
			return nil
		}
		fmt.Println(warn("The response was not structured, extracting code blocks instead"))
		applier.ApplyCodeBlocks(blocks)
		return nil
	}
	return applier.Apply(resp)
}

var executeTaskFlags struct {
	prompt          string
	autoApproveDeps bool
	autoApproveCode bool
}

var executeTaskCmd = &cobra.Command{
	Use:   "execute-task <task-id>",
	Short: "Start a task and drive it with AI assistance in one step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		item := proj.Item(args[0])
		if item == nil {
			return fmt.Errorf("task %s not found", args[0])
		}
		if item.Status != project.StatusTodo {
			return fmt.Errorf("task %s is %s, execute-task only picks up open tasks", item.ID, item.Status)
		}
		client, err := newClient(proj)
		if err != nil {
			return err
		}

		item.Status = project.StatusInProgress
		if err := proj.Save(); err != nil {
			return err
		}
		fmt.Println(success("Started " + item.ID + ": " + item.Title))

		userPrompt := executeTaskFlags.prompt
		if userPrompt == "" {
			userPrompt = fmt.Sprintf("Provide implementation steps and code for task: %s", item.Title)
		}
		var opts []apply.Option
		if executeTaskFlags.autoApproveDeps {
			opts = append(opts, apply.WithAutoApproveDeps())
		}
		if executeTaskFlags.autoApproveCode {
			opts = append(opts, apply.WithAutoApproveCode())
		}
		if err := assist(cmd, proj, item, client, userPrompt, opts...); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(dim("Review the changes, then: devcoach complete-task " + item.ID))
		return nil
	},
}

var completeTaskCmd = &cobra.Command{
	Use:   "complete-task <task-id>",
	Short: "Mark a task done and update project documentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		item := proj.Item(args[0])
		if item == nil {
			return fmt.Errorf("task %s not found", args[0])
		}
		if item.Status == project.StatusDone {
			fmt.Println(dim(item.ID + " is already done."))
			return nil
		}

		item.Status = project.StatusDone
		if item.Sprint != nil {
			if sprint := proj.Sprint(*item.Sprint); sprint != nil {
				sprint.CompletedPoints += item.Effort
			}
		}

		if err := docgen.UpdateForCompletedTask(proj, item.ID); err != nil {
			logger.Warn("Documentation update failed: %v", err)
			fmt.Println(warn("Could not update README/CHANGELOG: " + err.Error()))
		} else {
			fmt.Println(success("Updated README.md and CHANGELOG.md"))
		}

		if err := proj.Save(); err != nil {
			return err
		}

		fmt.Println(success("Completed " + item.ID + ": " + item.Title))
		if item.Sprint != nil {
			if sprint := proj.Sprint(*item.Sprint); sprint != nil {
				fmt.Printf("Sprint %s: %d%% complete (%d of %d points)\n",
					sprint.ID, sprint.Progress(), sprint.CompletedPoints, sprint.TotalPoints)
			}
		}
		return nil
	},
}

func init() {
	assistTaskCmd.Flags().StringVar(&assistTaskFlags.prompt, "prompt", "", "what to ask the assistant")
	executeTaskCmd.Flags().StringVar(&executeTaskFlags.prompt, "prompt", "", "what to ask the assistant")
	executeTaskCmd.Flags().BoolVar(&executeTaskFlags.autoApproveDeps, "auto-approve-deps", false, "apply dependency suggestions without asking")
	executeTaskCmd.Flags().BoolVar(&executeTaskFlags.autoApproveCode, "auto-approve-code", false, "apply file suggestions without asking")
}
