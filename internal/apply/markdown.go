package apply

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for the terminal. Falls back to the
// raw text if the renderer cannot be built.
func RenderMarkdown(content string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content + "\n"
	}
	out, err := r.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}
