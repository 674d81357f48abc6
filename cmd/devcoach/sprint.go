package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/logger"
	"github.com/devcoach/devcoach/internal/project"
	"github.com/devcoach/devcoach/internal/prompts"
	"github.com/devcoach/devcoach/internal/suggest"
)

var planSprintFlags struct {
	goal string
	days int
}

var planSprintCmd = &cobra.Command{
	Use:   "plan-sprint",
	Short: "Select backlog items for a new sprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planSprintFlags.goal == "" {
			return fmt.Errorf("--goal is required")
		}

		proj, err := loadProject()
		if err != nil {
			return err
		}
		todo := proj.TodoItems()
		if len(todo) == 0 {
			fmt.Println("Nothing to plan, the backlog has no open items.")
			fmt.Println(dim("Add work with: devcoach add-requirement \"...\""))
			return nil
		}

		client, err := newClient(proj)
		if err != nil {
			return err
		}

		tmpl, err := prompts.Load(prompts.NameSprintPlanner)
		if err != nil {
			return err
		}
		var backlogLines []string
		for _, item := range todo {
			backlogLines = append(backlogLines, fmt.Sprintf("%s | %s | %d | %s",
				item.ID, item.Priority, item.Effort, item.Title))
		}
		vars := promptVars(proj)
		vars["sprint_goal"] = planSprintFlags.goal
		vars["sprint_days"] = fmt.Sprintf("%d", planSprintFlags.days)
		vars["backlog"] = strings.Join(backlogLines, "\n")
		prompt := prompts.Render(tmpl, vars)

		fmt.Println(heading("Planning sprint with " + client.Model() + "..."))
		var selected []*project.Item
		var rationale string
		response, err := client.Generate(cmd.Context(), prompt)
		if err == nil {
			if plan, parseErr := suggest.ParseSprintResponse(response); parseErr == nil {
				for _, id := range plan.ItemIDs {
					item := proj.Item(id)
					if item == nil || item.Status != project.StatusTodo {
						logger.Warn("Sprint plan referenced %s which is not an open backlog item, skipping", id)
						continue
					}
					selected = append(selected, item)
				}
				rationale = plan.Rationale
			} else {
				logger.Warn("Sprint plan parse failed: %v", parseErr)
			}
		} else {
			logger.Warn("Sprint plan generation failed: %v", err)
		}

		if len(selected) == 0 {
			fmt.Println(warn("Falling back to priority-based selection"))
			selected = greedySelect(todo, planSprintFlags.days)
			rationale = "Selected by priority and effort to fit the sprint length."
		}

		sprint := project.Sprint{
			ID:        proj.NextSprintID(),
			Goal:      planSprintFlags.goal,
			StartDate: time.Now().UTC(),
			EndDate:   time.Now().UTC().AddDate(0, 0, planSprintFlags.days),
			Status:    project.SprintPlanning,
		}
		for _, item := range selected {
			sprint.Items = append(sprint.Items, item.ID)
			sprint.TotalPoints += item.Effort
			id := sprint.ID
			item.Sprint = &id
		}
		proj.Sprints = append(proj.Sprints, sprint)
		if err := proj.Save(); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(success(fmt.Sprintf("Planned %s: %d items, %d points over %d days",
			sprint.ID, len(sprint.Items), sprint.TotalPoints, planSprintFlags.days)))
		if rationale != "" {
			fmt.Println(dim("Rationale: " + rationale))
		}
		for _, item := range selected {
			printItem(item)
		}
		fmt.Println()
		fmt.Println(dim("Start it with: devcoach start-sprint " + sprint.ID))
		return nil
	},
}

// greedySelect fills the sprint by priority rank, then by smaller effort,
// capping the total at roughly one point per sprint day.
func greedySelect(todo []*project.Item, days int) []*project.Item {
	capacity := days
	if capacity < 1 {
		capacity = 14
	}
	sorted := make([]*project.Item, len(todo))
	copy(sorted, todo)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority.Rank() != sorted[j].Priority.Rank() {
			return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
		}
		return sorted[i].Effort < sorted[j].Effort
	})

	var selected []*project.Item
	points := 0
	for _, item := range sorted {
		if points+item.Effort > capacity && len(selected) > 0 {
			continue
		}
		selected = append(selected, item)
		points += item.Effort
	}
	return selected
}

var startSprintCmd = &cobra.Command{
	Use:   "start-sprint <sprint-id>",
	Short: "Activate a planned sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		sprint := proj.Sprint(args[0])
		if sprint == nil {
			return fmt.Errorf("sprint %s not found", args[0])
		}
		if active := proj.ActiveSprint(); active != nil && active.ID != sprint.ID {
			return fmt.Errorf("sprint %s is already active, complete it first", active.ID)
		}

		sprint.Status = project.SprintActive
		id := sprint.ID
		proj.CurrentSprint = &id
		if err := proj.Save(); err != nil {
			return err
		}

		fmt.Println(success(fmt.Sprintf("Started %s: %s", sprint.ID, sprint.Goal)))
		fmt.Printf("Ends %s, %d points planned\n", sprint.EndDate.Format("2006-01-02"), sprint.TotalPoints)
		fmt.Println(dim("Pick a task with: devcoach start-task <id>"))
		return nil
	},
}

var showSprintCmd = &cobra.Command{
	Use:   "show-sprint",
	Short: "Show the active sprint and its items",
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		sprint := proj.ActiveSprint()
		if sprint == nil {
			fmt.Println("No active sprint.")
			fmt.Println(dim("Plan one with: devcoach plan-sprint --goal \"...\""))
			return nil
		}

		fmt.Println(heading(fmt.Sprintf("%s: %s", sprint.ID, sprint.Goal)))
		fmt.Printf("  %s to %s\n", sprint.StartDate.Format("2006-01-02"), sprint.EndDate.Format("2006-01-02"))
		fmt.Printf("  Progress: %d%% (%d of %d points)\n", sprint.Progress(), sprint.CompletedPoints, sprint.TotalPoints)
		fmt.Println()

		items := proj.SprintItems(sprint.ID)
		for _, status := range []project.Status{
			project.StatusInProgress, project.StatusReview, project.StatusTodo, project.StatusDone,
		} {
			for _, item := range items {
				if item.Status == status {
					fmt.Printf("%s ", statusBadge(string(item.Status)))
					printItem(item)
				}
			}
		}
		return nil
	},
}

func init() {
	planSprintCmd.Flags().StringVar(&planSprintFlags.goal, "goal", "", "sprint goal")
	planSprintCmd.Flags().IntVar(&planSprintFlags.days, "days", 14, "sprint length in days")
}
