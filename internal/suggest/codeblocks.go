package suggest

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// CodeBlock is a fenced code block recovered from an unstructured
// response, with a guessed destination filename.
type CodeBlock struct {
	Filename string
	Content  string
}

// ExtractCodeBlocks pulls fenced code blocks out of a free-form response
// and guesses a filename for each. primaryLanguage decides the extension
// for blocks with no language tag.
func ExtractCodeBlocks(primaryLanguage, text string) []CodeBlock {
	lines := strings.Split(text, "\n")
	var blocks []CodeBlock
	for i := 0; i < len(lines); i++ {
		lang, ok := fenceLanguage(lines[i])
		if !ok {
			continue
		}
		heading := headingBefore(lines, i)
		var code strings.Builder
		i++
		for i < len(lines) && !strings.HasPrefix(lines[i], "```") {
			code.WriteString(lines[i])
			code.WriteByte('\n')
			i++
		}
		if strings.TrimSpace(code.String()) == "" {
			continue
		}
		blocks = append(blocks, CodeBlock{
			Filename: guessFilename(primaryLanguage, lang, heading, code.String(), len(blocks)),
			Content:  code.String(),
		})
	}
	return blocks
}

func fenceLanguage(line string) (string, bool) {
	if !strings.HasPrefix(line, "```") {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "```"))), true
}

// headingBefore finds the nearest markdown heading above a fence so the
// filename can reflect what the model called the snippet.
func headingBefore(lines []string, index int) string {
	for i := index - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
		return ""
	}
	return ""
}

func guessFilename(primaryLanguage, lang, heading, code string, index int) string {
	switch lang {
	case "rust", "rs":
		if strings.Contains(code, "fn main()") {
			return "src/main.rs"
		}
		if strings.Contains(code, "#[cfg(test)]") || strings.Contains(code, "mod tests") {
			return "src/tests.rs"
		}
		return named(heading, "rs", index)
	case "javascript", "js":
		return named(heading, "js", index)
	case "python", "py":
		if strings.Contains(code, `if __name__ == "__main__"`) {
			return "main.py"
		}
		return named(heading, "py", index)
	case "go", "golang":
		if strings.Contains(code, "func main()") {
			return "main.go"
		}
		return named(heading, "go", index)
	case "java":
		if class := javaClassName(code); class != "" {
			return "src/" + class + ".java"
		}
		return named(heading, "java", index)
	default:
		return named(heading, extensionFor(primaryLanguage), index)
	}
}

// named builds a path from the heading slug when one exists, otherwise a
// numbered placeholder.
func named(heading, ext string, index int) string {
	if heading != "" {
		return fmt.Sprintf("src/%s.%s", slug.Make(heading), ext)
	}
	return fmt.Sprintf("src/generated_%d.%s", index, ext)
}

func javaClassName(code string) string {
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "public class ") || strings.HasPrefix(line, "class ") {
			fields := strings.Fields(line)
			for j, f := range fields {
				if f == "class" && j+1 < len(fields) {
					return strings.TrimSuffix(fields[j+1], "{")
				}
			}
		}
	}
	return ""
}

func extensionFor(primaryLanguage string) string {
	switch strings.ToLower(primaryLanguage) {
	case "rust":
		return "rs"
	case "javascript", "nodejs":
		return "js"
	case "python":
		return "py"
	case "go":
		return "go"
	case "java":
		return "java"
	default:
		return "txt"
	}
}
