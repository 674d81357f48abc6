package main

import "github.com/charmbracelet/lipgloss"

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

func heading(s string) string { return headingStyle.Render(s) }
func success(s string) string { return successStyle.Render(s) }
func warn(s string) string    { return warnStyle.Render(s) }
func fail(s string) string    { return failStyle.Render(s) }
func dim(s string) string     { return dimStyle.Render(s) }
func idBadge(s string) string { return idStyle.Render(s) }

// priorityBadge returns a colored single-word priority marker.
func priorityBadge(priority string) string {
	switch priority {
	case "critical":
		return failStyle.Render("[critical]")
	case "high":
		return warnStyle.Render("[high]")
	case "low":
		return dimStyle.Render("[low]")
	default:
		return "[medium]"
	}
}

// statusBadge returns a colored status marker.
func statusBadge(status string) string {
	switch status {
	case "done":
		return successStyle.Render("done")
	case "in_progress":
		return warnStyle.Render("in progress")
	case "review":
		return "review"
	default:
		return dimStyle.Render("todo")
	}
}
