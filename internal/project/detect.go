package project

import (
	"os"
	"path/filepath"
	"strings"
)

// markerFiles maps well-known project files to tech stack entries, checked in
// a stable order so detection output is deterministic.
var markerFiles = []struct {
	tech  string
	files []string
}{
	{"rust", []string{"Cargo.toml"}},
	{"nodejs", []string{"package.json"}},
	{"python", []string{"requirements.txt", "setup.py", "pyproject.toml"}},
	{"go", []string{"go.mod"}},
	{"java", []string{"pom.xml", "build.gradle"}},
	{"docker", []string{"Dockerfile"}},
	{"git", []string{".git"}},
}

// DetectTechStack inspects dir for well-known project files and returns the
// matching tech stack entries. Returns ["general"] when nothing matches.
func DetectTechStack(dir string) []string {
	var stack []string
	for _, m := range markerFiles {
		for _, f := range m.files {
			if _, err := os.Stat(filepath.Join(dir, f)); err == nil {
				stack = append(stack, m.tech)
				break
			}
		}
	}
	if len(stack) == 0 {
		stack = append(stack, "general")
	}
	return stack
}

// InitialTags derives starter tags from the project name and tech stack.
// The devcoach tag is always present so generated artifacts are traceable.
func InitialTags(name string, techStack []string) []string {
	var tags []string
	nameLower := strings.ToLower(name)

	namePatterns := []struct {
		substrs []string
		tag     string
	}{
		{[]string{"api", "server"}, "backend"},
		{[]string{"web", "frontend", "ui"}, "frontend"},
		{[]string{"cli", "tool"}, "cli"},
		{[]string{"game"}, "game"},
		{[]string{"bot"}, "automation"},
		{[]string{"lib", "crate"}, "library"},
	}
	for _, p := range namePatterns {
		for _, s := range p.substrs {
			if strings.Contains(nameLower, s) {
				tags = append(tags, p.tag)
				break
			}
		}
	}

	stackTags := map[string]string{
		"rust":   "systems",
		"nodejs": "javascript",
		"docker": "containerization",
	}
	for _, tech := range techStack {
		if tag, ok := stackTags[tech]; ok {
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		tags = append(tags, "development")
	}
	return append(tags, "devcoach")
}

// PrimaryLanguage returns the display name of the project's primary
// programming language. Rust is the default because the manifest pipeline
// targets Cargo.toml.
func (m *Meta) PrimaryLanguage() string {
	for _, tech := range m.TechStack {
		switch tech {
		case "rust":
			return "Rust"
		case "nodejs":
			return "JavaScript/Node.js"
		case "python":
			return "Python"
		case "go":
			return "Go"
		case "java":
			return "Java"
		}
	}
	return "Rust"
}

// TechStackDescription returns a user-friendly description of the stack.
func (m *Meta) TechStackDescription() string {
	has := func(t string) bool {
		for _, s := range m.TechStack {
			if s == t {
				return true
			}
		}
		return false
	}
	switch {
	case has("rust"):
		return "Rust project with modern tooling"
	case has("nodejs"):
		return "Node.js/JavaScript project"
	case has("python"):
		return "Python project"
	case has("go"):
		return "Go project"
	case has("java"):
		return "Java project"
	default:
		return "Multi-technology project (" + strings.Join(m.TechStack, ", ") + ")"
	}
}

// TagsDisplay returns the tags joined for display, "none" when empty.
func (m *Meta) TagsDisplay() string {
	if len(m.Tags) == 0 {
		return "none"
	}
	return strings.Join(m.Tags, ", ")
}
