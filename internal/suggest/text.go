package suggest

import (
	"fmt"
	"strings"
)

// TextStory is a user story recovered from an unstructured response.
type TextStory struct {
	Title string
	Story string
}

// ExtractStoriesFromText scans a free-form response for lines that look
// like user stories. Used when the structured JSON parse fails.
func ExtractStoriesFromText(text string) []TextStory {
	lines := strings.Split(text, "\n")
	var stories []TextStory
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "as a user") &&
			!strings.Contains(lower, "user story") &&
			!strings.Contains(line, "US-") {
			continue
		}
		stories = append(stories, TextStory{
			Title: titleFromContext(lines, i),
			Story: strings.TrimSpace(line),
		})
	}
	return stories
}

// titleFromContext walks backwards from a story line looking for a short
// non-heading line to use as the title.
func titleFromContext(lines []string, index int) string {
	for i := index - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" ||
			strings.Contains(strings.ToLower(line), "as a user") ||
			strings.HasPrefix(line, "##") ||
			strings.HasPrefix(line, "```") ||
			len(line) >= 100 {
			continue
		}
		return line
	}
	return fmt.Sprintf("Extracted story near line %d", index+1)
}
