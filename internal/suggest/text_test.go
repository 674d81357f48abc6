package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStoriesFromText(t *testing.T) {
	text := `Here are some ideas.

Login support
As a user, I want to log in so that my data is safe.

Password reset
As a user, I want to reset my password so that I can recover access.
`
	stories := ExtractStoriesFromText(text)
	require.Len(t, stories, 2)
	assert.Equal(t, "Login support", stories[0].Title)
	assert.Equal(t, "As a user, I want to log in so that my data is safe.", stories[0].Story)
	assert.Equal(t, "Password reset", stories[1].Title)
}

func TestExtractStoriesFromTextNoStories(t *testing.T) {
	assert.Empty(t, ExtractStoriesFromText("Nothing story-like in here.\nJust prose."))
}

func TestExtractStoriesFromTextFallbackTitle(t *testing.T) {
	text := "As a user, I want something so that I benefit."
	stories := ExtractStoriesFromText(text)
	require.Len(t, stories, 1)
	assert.Contains(t, stories[0].Title, "Extracted story near line 1")
}

func TestTitleFromContextSkipsHeadingsAndFences(t *testing.T) {
	lines := []string{
		"## Stories",
		"```",
		"Short title",
		"",
		"As a user, I want X so that Y.",
	}
	assert.Equal(t, "Short title", titleFromContext(lines, 4))
}

func TestExtractCodeBlocks(t *testing.T) {
	text := "Some intro.\n\n```rust\nfn main() {\n    println!(\"hi\");\n}\n```\n\n### Config loader\n\n```rust\npub struct Config;\n```\n"
	blocks := ExtractCodeBlocks("Rust", text)
	require.Len(t, blocks, 2)
	assert.Equal(t, "src/main.rs", blocks[0].Filename)
	assert.Contains(t, blocks[0].Content, "println!")
	assert.Equal(t, "src/config-loader.rs", blocks[1].Filename)
}

func TestExtractCodeBlocksUntaggedUsesPrimaryLanguage(t *testing.T) {
	text := "```\nsome code\n```\n"
	blocks := ExtractCodeBlocks("Python", text)
	require.Len(t, blocks, 1)
	assert.Equal(t, "src/generated_0.py", blocks[0].Filename)
}

func TestExtractCodeBlocksSkipsEmpty(t *testing.T) {
	text := "```rust\n\n```\n"
	assert.Empty(t, ExtractCodeBlocks("Rust", text))
}

func TestExtractCodeBlocksGo(t *testing.T) {
	text := "```go\npackage main\n\nfunc main() {}\n```\n"
	blocks := ExtractCodeBlocks("Go", text)
	require.Len(t, blocks, 1)
	assert.Equal(t, "main.go", blocks[0].Filename)
}

func TestExtractCodeBlocksJavaClassName(t *testing.T) {
	text := "```java\npublic class Account {\n}\n```\n"
	blocks := ExtractCodeBlocks("Java", text)
	require.Len(t, blocks, 1)
	assert.Equal(t, "src/Account.java", blocks[0].Filename)
}
