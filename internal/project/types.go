// Package project defines the project document persisted as project.json and
// the operations on its backlog and sprints.
package project

import (
	"fmt"
	"time"

	"github.com/devcoach/devcoach/internal/config"
)

// ItemType classifies a backlog item.
type ItemType string

const (
	TypeUserStory ItemType = "user_story"
	TypeBug       ItemType = "bug"
	TypeEpic      ItemType = "epic"
	TypeTask      ItemType = "task"
)

// Priority ranks a backlog item.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// ParsePriority maps a free-form priority string to a Priority, defaulting to
// medium for anything unrecognized. LLMs are inconsistent about casing.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "critical", "Critical":
		return PriorityCritical, true
	case "high", "High":
		return PriorityHigh, true
	case "medium", "Medium":
		return PriorityMedium, true
	case "low", "Low":
		return PriorityLow, true
	default:
		return PriorityMedium, false
	}
}

// Rank returns a sortable rank, lower is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Status is the lifecycle state of a backlog item.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// SprintStatus is the lifecycle state of a sprint.
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "planning"
	SprintActive    SprintStatus = "active"
	SprintReview    SprintStatus = "review"
	SprintCompleted SprintStatus = "completed"
)

// Item is a unit of work in the backlog.
type Item struct {
	ID                 string    `json:"id"`
	Type               ItemType  `json:"type"`
	Title              string    `json:"title"`
	Story              string    `json:"story"`
	AcceptanceCriteria []string  `json:"acceptance_criteria"`
	Priority           Priority  `json:"priority"`
	Effort             int       `json:"effort"`
	Status             Status    `json:"status"`
	Created            time.Time `json:"created"`
	Sprint             *string   `json:"sprint,omitempty"`
	Dependencies       []string  `json:"dependencies,omitempty"`
}

// Sprint is a time-boxed collection of backlog items.
type Sprint struct {
	ID              string       `json:"id"`
	Goal            string       `json:"goal"`
	StartDate       time.Time    `json:"start_date"`
	EndDate         time.Time    `json:"end_date"`
	Status          SprintStatus `json:"status"`
	TotalPoints     int          `json:"total_points"`
	CompletedPoints int          `json:"completed_points"`
	Items           []string     `json:"items"`
}

// Progress returns completion as a percentage, 0 when no points are planned.
func (s *Sprint) Progress() int {
	if s.TotalPoints <= 0 {
		return 0
	}
	return s.CompletedPoints * 100 / s.TotalPoints
}

// PRD captures the optional product requirement document fields.
type PRD struct {
	Problem        string   `json:"problem"`
	SuccessMetrics []string `json:"success_metrics"`
}

// Meta is the project metadata block.
type Meta struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Created     time.Time           `json:"created"`
	TechStack   []string            `json:"tech_stack"`
	Tags        []string            `json:"tags"`
	PRD         *PRD                `json:"prd,omitempty"`
	LLM         *config.LLMSettings `json:"llm,omitempty"`
}

// Project is the root JSON document.
type Project struct {
	Meta          Meta     `json:"meta"`
	Backlog       []Item   `json:"backlog"`
	Sprints       []Sprint `json:"sprints"`
	CurrentSprint *string  `json:"current_sprint"`

	// resolved LLM config, populated on load/creation, never serialized
	resolved config.ResolvedLLM
	global   *config.LLMSettings
}

// New creates a project for the given name and description, detecting the
// tech stack from the current directory and seeding the project-level LLM
// override layer with the built-in defaults so the file documents them.
func New(name, description string, global *config.LLMSettings) *Project {
	techStack := DetectTechStack(".")
	p := &Project{
		Meta: Meta{
			Name:        name,
			Description: description,
			Created:     time.Now().UTC(),
			TechStack:   techStack,
			Tags:        InitialTags(name, techStack),
			LLM: &config.LLMSettings{
				Host:      config.DefaultLLMHost,
				Port:      config.DefaultLLMPort,
				Model:     config.DefaultLLMModel,
				TimeoutMS: config.DefaultLLMTimeoutMS,
			},
		},
		Backlog: []Item{},
		Sprints: []Sprint{},
		global:  global,
	}
	p.resolved = config.Resolve(global, p.Meta.LLM)
	return p
}

// LLM returns the resolved LLM configuration for this project.
func (p *Project) LLM() config.ResolvedLLM {
	return p.resolved
}

// Validate performs basic sanity checks before saving or using the project.
func (p *Project) Validate() error {
	if p.Meta.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	return p.resolved.Validate()
}

// Item returns the backlog item with the given ID, or nil.
func (p *Project) Item(id string) *Item {
	for i := range p.Backlog {
		if p.Backlog[i].ID == id {
			return &p.Backlog[i]
		}
	}
	return nil
}

// Sprint returns the sprint with the given ID, or nil.
func (p *Project) Sprint(id string) *Sprint {
	for i := range p.Sprints {
		if p.Sprints[i].ID == id {
			return &p.Sprints[i]
		}
	}
	return nil
}

// ActiveSprint returns the currently active sprint, or nil.
func (p *Project) ActiveSprint() *Sprint {
	for i := range p.Sprints {
		if p.Sprints[i].Status == SprintActive {
			return &p.Sprints[i]
		}
	}
	return nil
}

// Stories returns all user-story backlog items.
func (p *Project) Stories() []*Item {
	return p.filter(func(it *Item) bool { return it.Type == TypeUserStory })
}

// TodoItems returns all items that have not been started.
func (p *Project) TodoItems() []*Item {
	return p.filter(func(it *Item) bool { return it.Status == StatusTodo })
}

// DoneItems returns all completed items.
func (p *Project) DoneItems() []*Item {
	return p.filter(func(it *Item) bool { return it.Status == StatusDone })
}

// SprintItems returns the backlog items assigned to the given sprint.
func (p *Project) SprintItems(sprintID string) []*Item {
	return p.filter(func(it *Item) bool {
		return it.Sprint != nil && *it.Sprint == sprintID
	})
}

func (p *Project) filter(keep func(*Item) bool) []*Item {
	var out []*Item
	for i := range p.Backlog {
		if keep(&p.Backlog[i]) {
			out = append(out, &p.Backlog[i])
		}
	}
	return out
}
