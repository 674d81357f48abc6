package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/project"
)

var listBacklogCmd = &cobra.Command{
	Use:   "list-backlog",
	Short: "Show the backlog grouped by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		if len(proj.Backlog) == 0 {
			fmt.Println("The backlog is empty.")
			fmt.Println(dim("Add work with: devcoach add-requirement \"...\" or devcoach add-story --title \"...\""))
			return nil
		}

		fmt.Println(heading(fmt.Sprintf("Backlog for %s (%d items)", proj.Meta.Name, len(proj.Backlog))))
		fmt.Println()

		groups := []struct {
			label  string
			status project.Status
		}{
			{"In progress", project.StatusInProgress},
			{"In review", project.StatusReview},
			{"To do", project.StatusTodo},
			{"Done", project.StatusDone},
		}

		totalPoints, donePoints := 0, 0
		for _, g := range groups {
			var items []*project.Item
			for i := range proj.Backlog {
				if proj.Backlog[i].Status == g.status {
					items = append(items, &proj.Backlog[i])
				}
			}
			if len(items) == 0 {
				continue
			}
			fmt.Printf("%s %s:\n", statusBadge(string(g.status)), g.label)
			for _, item := range items {
				printItem(item)
				totalPoints += item.Effort
				if item.Status == project.StatusDone {
					donePoints += item.Effort
				}
			}
			fmt.Println()
		}

		fmt.Printf("Total: %d points, %d completed\n", totalPoints, donePoints)
		if len(proj.TodoItems()) > 0 && proj.ActiveSprint() == nil {
			fmt.Println(dim("Next: devcoach plan-sprint --goal \"...\" --days 14"))
		}
		return nil
	},
}

var listStoriesCmd = &cobra.Command{
	Use:   "list-stories",
	Short: "Show only the user stories in the backlog",
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := loadProject()
		if err != nil {
			return err
		}
		stories := proj.Stories()
		if len(stories) == 0 {
			fmt.Println("No user stories yet.")
			fmt.Println(dim("Add some with: devcoach add-requirement \"...\""))
			return nil
		}

		fmt.Println(heading(fmt.Sprintf("User stories (%d)", len(stories))))
		for _, item := range stories {
			fmt.Printf("%s ", statusBadge(string(item.Status)))
			printItem(item)
		}
		return nil
	},
}
