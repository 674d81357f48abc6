package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/logger"
	"github.com/devcoach/devcoach/internal/project"
	"github.com/devcoach/devcoach/internal/prompts"
	"github.com/devcoach/devcoach/internal/suggest"
)

var addRequirementCmd = &cobra.Command{
	Use:   "add-requirement <requirement>",
	Short: "Turn a natural-language requirement into backlog stories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requirement := args[0]

		proj, err := loadProject()
		if err != nil {
			return err
		}
		client, err := newClient(proj)
		if err != nil {
			return err
		}

		tmpl, err := prompts.Load(prompts.NameRequirementsAnalyst)
		if err != nil {
			return err
		}
		vars := promptVars(proj)
		vars["requirement"] = requirement
		prompt := prompts.Render(tmpl, vars)

		fmt.Println(heading("Analyzing requirement with " + client.Model() + "..."))
		response, err := client.Generate(cmd.Context(), prompt)
		if err != nil {
			return fmt.Errorf("generate stories: %w", err)
		}

		stories, parseErr := suggest.ParseStoryResponse(response)
		var added []string
		if parseErr == nil {
			for _, s := range stories {
				added = append(added, addStory(proj, s))
			}
		} else {
			logger.Warn("Structured story parse failed, falling back to text extraction: %v", parseErr)
			fmt.Println(warn("The model response was not valid JSON, extracting stories from text"))
			extracted := suggest.ExtractStoriesFromText(response)
			if len(extracted) == 0 {
				fmt.Println(fail("No user stories could be extracted from the response:"))
				fmt.Println(response)
				return fmt.Errorf("requirement analysis produced no stories")
			}
			for _, s := range extracted {
				added = append(added, addStory(proj, suggest.Story{
					Title:    s.Title,
					Story:    s.Story,
					Priority: "Medium",
					Effort:   3,
					AcceptanceCriteria: []string{
						"Define specific acceptance criteria",
						"Implement the feature",
						"Write tests and documentation",
					},
				}))
			}
		}

		if err := proj.Save(); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(success(fmt.Sprintf("Added %d user stories to the backlog:", len(added))))
		for _, id := range added {
			item := proj.Item(id)
			printItem(item)
		}
		fmt.Println()
		fmt.Println(dim("Next: devcoach list-backlog, then devcoach plan-sprint --goal \"...\""))
		return nil
	},
}

// addStory appends a parsed story to the backlog and returns its new ID.
func addStory(proj *project.Project, s suggest.Story) string {
	priority, ok := project.ParsePriority(s.Priority)
	if !ok {
		logger.Warn("Unrecognized priority %q on story %q, defaulting to medium", s.Priority, s.Title)
		fmt.Println(warn(fmt.Sprintf("Unknown priority %q for %q, using Medium", s.Priority, s.Title)))
		priority = project.PriorityMedium
	}
	effort := s.Effort
	if effort <= 0 {
		effort = 3
	}
	item := project.Item{
		ID:                 proj.NextStoryID(),
		Type:               project.TypeUserStory,
		Title:              s.Title,
		Story:              s.Story,
		AcceptanceCriteria: s.AcceptanceCriteria,
		Priority:           priority,
		Effort:             effort,
		Status:             project.StatusTodo,
		Created:            time.Now().UTC(),
	}
	proj.Backlog = append(proj.Backlog, item)
	return item.ID
}

var addStoryFlags struct {
	title       string
	description string
	priority    string
	effort      int
}

var addStoryCmd = &cobra.Command{
	Use:   "add-story",
	Short: "Add a user story to the backlog by hand",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addStoryFlags.title == "" {
			return fmt.Errorf("--title is required")
		}

		proj, err := loadProject()
		if err != nil {
			return err
		}

		story := addStoryFlags.description
		if story == "" {
			story = addStoryFlags.title
		}
		lower := strings.ToLower(story)
		if !strings.HasPrefix(lower, "as a") && !strings.HasPrefix(lower, "as an") {
			story = fmt.Sprintf("As a user, I want %s so that I can achieve my goals.", story)
		}

		id := addStory(proj, suggest.Story{
			Title:    addStoryFlags.title,
			Story:    story,
			Priority: addStoryFlags.priority,
			Effort:   addStoryFlags.effort,
			AcceptanceCriteria: []string{
				"Define clear acceptance criteria",
				"Write unit tests",
				"Update documentation",
			},
		})
		if err := proj.Save(); err != nil {
			return err
		}

		fmt.Println(success("Added " + id + ": " + addStoryFlags.title))
		printItem(proj.Item(id))
		return nil
	},
}

func init() {
	addStoryCmd.Flags().StringVar(&addStoryFlags.title, "title", "", "story title")
	addStoryCmd.Flags().StringVar(&addStoryFlags.description, "description", "", "story description, wrapped in user-story form when plain")
	addStoryCmd.Flags().StringVar(&addStoryFlags.priority, "priority", "Medium", "priority: Critical, High, Medium, or Low")
	addStoryCmd.Flags().IntVar(&addStoryFlags.effort, "effort", 3, "effort estimate in points")
}
