// Package apply turns parsed suggestions into filesystem changes, asking
// the user before each one unless auto-approval is on.
package apply

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/editor"

	"github.com/devcoach/devcoach/internal/logger"
	"github.com/devcoach/devcoach/internal/suggest"
)

// Applier processes an assist response against the project directory.
type Applier struct {
	root            string
	in              *bufio.Scanner
	out             io.Writer
	autoApproveDeps bool
	autoApproveCode bool

	// openEditor is swapped out in tests.
	openEditor func(path string) error
}

// Option configures an Applier.
type Option func(*Applier)

// WithInput sets where confirmation answers are read from.
func WithInput(r io.Reader) Option {
	return func(a *Applier) { a.in = bufio.NewScanner(r) }
}

// WithOutput sets where prompts and progress are written.
func WithOutput(w io.Writer) Option {
	return func(a *Applier) { a.out = w }
}

// WithAutoApproveDeps applies dependency suggestions without asking.
func WithAutoApproveDeps() Option {
	return func(a *Applier) { a.autoApproveDeps = true }
}

// WithAutoApproveCode applies file suggestions without asking.
func WithAutoApproveCode() Option {
	return func(a *Applier) { a.autoApproveCode = true }
}

// New creates an Applier rooted at the project directory.
func New(root string, opts ...Option) *Applier {
	a := &Applier{
		root: root,
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
	}
	a.openEditor = a.runEditor
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply walks the response: dependencies first, then file suggestions,
// then advice. Individual operation failures are reported and do not
// stop the remaining suggestions.
func (a *Applier) Apply(resp *suggest.AssistResponse) error {
	if resp.OverallSummary != "" {
		fmt.Fprintf(a.out, "Summary: %s\n", resp.OverallSummary)
	}

	deps := resp.Dependencies()
	files := resp.Files()
	advice := resp.Advice()

	if len(deps) == 0 && len(files) == 0 && len(advice) == 0 {
		fmt.Fprintln(a.out, "The response parsed but contained no actionable suggestions.")
		return nil
	}

	if len(deps) > 0 {
		a.applyDependencies(deps)
	}
	if len(files) > 0 {
		a.applyFiles(files)
	}
	if len(advice) > 0 {
		fmt.Fprintln(a.out, "\nAdvice:")
		fmt.Fprint(a.out, RenderMarkdown("- "+strings.Join(advice, "\n- ")))
	}
	return nil
}

func (a *Applier) applyDependencies(deps []string) {
	fmt.Fprintf(a.out, "\nProposed %s dependencies:\n", ManifestName)
	for _, dep := range deps {
		fmt.Fprintf(a.out, "  %s\n", dep)
	}

	approved := a.autoApproveDeps
	if !approved {
		answer := a.ask(fmt.Sprintf("Add these to %s? [y/n]: ", ManifestName))
		approved = answer == "y" || answer == "yes"
	} else {
		fmt.Fprintln(a.out, "Auto-approving dependency changes.")
	}
	if !approved {
		fmt.Fprintln(a.out, "Skipped dependency changes.")
		return
	}

	added, err := AddCargoDependencies(a.root, deps)
	if err != nil {
		fmt.Fprintf(a.out, "Could not update %s: %v\n", ManifestName, err)
		return
	}
	if len(added) == 0 {
		fmt.Fprintf(a.out, "All dependencies were already present in %s.\n", ManifestName)
		return
	}
	fmt.Fprintf(a.out, "Added %d dependencies to %s.\n", len(added), ManifestName)
}

func (a *Applier) applyFiles(files []suggest.Suggestion) {
	skipRemaining := false
	for i, sugg := range files {
		if skipRemaining {
			fmt.Fprintf(a.out, "  Skipping %s (skip-all).\n", sugg.TargetFile)
			continue
		}

		fmt.Fprintf(a.out, "\nSuggestion %d/%d: %s %s\n", i+1, len(files), sugg.Action, sugg.TargetFile)
		if sugg.Content != "" {
			fmt.Fprintf(a.out, "%s\n", indent(snippetOf(sugg.Content, 200), "  | "))
		} else if sugg.ImportStatement != "" {
			fmt.Fprintf(a.out, "  | %s\n", sugg.ImportStatement)
		}

		if sugg.Action.Advisory() {
			fmt.Fprintf(a.out, "  Action %q needs a manual edit", sugg.Action)
			if sugg.FunctionName != "" {
				fmt.Fprintf(a.out, " (function %s)", sugg.FunctionName)
			}
			fmt.Fprintln(a.out, "; shown for reference only.")
			continue
		}

		apply := a.autoApproveCode
		if !a.autoApproveCode {
			apply, skipRemaining = a.confirmFile(&sugg)
		} else {
			fmt.Fprintf(a.out, "Auto-approving change to %s.\n", sugg.TargetFile)
		}
		if !apply {
			if !skipRemaining {
				fmt.Fprintf(a.out, "  Skipped %s.\n", sugg.TargetFile)
			}
			continue
		}

		if err := a.applyFileSuggestion(sugg); err != nil {
			fmt.Fprintf(a.out, "  Failed to apply change to %s: %v\n", sugg.TargetFile, err)
		} else {
			fmt.Fprintf(a.out, "  Applied %s to %s.\n", sugg.Action, sugg.TargetFile)
		}
	}
}

// confirmFile runs the y/n/d/e/s loop for one file suggestion. The
// suggestion is passed by pointer so an editor session can amend its
// content before application.
func (a *Applier) confirmFile(sugg *suggest.Suggestion) (apply, skipRemaining bool) {
	for {
		answer := a.ask(fmt.Sprintf("Apply to %s? [y]es/[n]o/[d]etails/[e]dit/[s]kip-all: ", sugg.TargetFile))
		switch answer {
		case "y", "yes":
			return true, false
		case "n", "no":
			return false, false
		case "d", "details":
			a.showDetails(sugg)
		case "e", "edit":
			if err := a.editContent(sugg); err != nil {
				fmt.Fprintf(a.out, "  Editor failed: %v\n", err)
			}
		case "s", "skip-all", "skip_all":
			fmt.Fprintln(a.out, "  Skipping this and all remaining file changes.")
			return false, true
		default:
			fmt.Fprintln(a.out, "  Please answer y, n, d, e, or s.")
		}
	}
}

func (a *Applier) showDetails(sugg *suggest.Suggestion) {
	fmt.Fprintf(a.out, "--- %s %s ---\n", sugg.Action, sugg.TargetFile)
	if sugg.ImportStatement != "" {
		fmt.Fprintf(a.out, "Import: %s\n", sugg.ImportStatement)
	}
	if diff := a.diffPreview(sugg); diff != "" {
		fmt.Fprint(a.out, diff)
	} else if sugg.Content != "" {
		fmt.Fprintln(a.out, sugg.Content)
	}
	if sugg.Notes != "" {
		fmt.Fprintf(a.out, "Notes: %s\n", sugg.Notes)
	}
	fmt.Fprintln(a.out, "--- end ---")
}

// diffPreview returns a unified diff against the current file content
// for actions that modify an existing file.
func (a *Applier) diffPreview(sugg *suggest.Suggestion) string {
	current, err := os.ReadFile(sugg.TargetFile)
	if err != nil {
		return ""
	}
	var proposed string
	switch sugg.Action {
	case suggest.ActionReplace:
		proposed = sugg.Content
	case suggest.ActionAppend:
		proposed = string(current) + sugg.Content + "\n"
	case suggest.ActionAddImport:
		proposed = string(current) + sugg.ImportStatement + "\n"
	default:
		return ""
	}
	return udiff.Unified(sugg.TargetFile+" (current)", sugg.TargetFile+" (proposed)", string(current), proposed)
}

// editContent opens the suggestion content in the user's editor and
// reads the result back into the suggestion.
func (a *Applier) editContent(sugg *suggest.Suggestion) error {
	tmp, err := os.CreateTemp("", "devcoach-edit-*"+suffixFor(sugg.TargetFile))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(sugg.Content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	if err := a.openEditor(tmp.Name()); err != nil {
		return err
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return fmt.Errorf("read edited content: %w", err)
	}
	sugg.Content = string(edited)
	fmt.Fprintln(a.out, "  Content updated from editor.")
	return nil
}

func (a *Applier) runEditor(path string) error {
	cmd, err := editor.Command("devcoach", path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (a *Applier) applyFileSuggestion(sugg suggest.Suggestion) error {
	switch sugg.Action {
	case suggest.ActionCreate:
		return CreateFile(sugg.TargetFile, sugg.Content)
	case suggest.ActionReplace:
		return ReplaceFile(sugg.TargetFile, sugg.Content)
	case suggest.ActionAppend:
		return AppendFile(sugg.TargetFile, sugg.Content)
	case suggest.ActionAddImport:
		if sugg.ImportStatement == "" {
			return fmt.Errorf("add_import suggestion is missing import_statement")
		}
		return AddImport(sugg.TargetFile, sugg.ImportStatement)
	default:
		return fmt.Errorf("unsupported action %q", sugg.Action)
	}
}

// ApplyCodeBlocks writes extracted code blocks to disk, never touching
// files that already exist. Used for the unstructured-response fallback.
func (a *Applier) ApplyCodeBlocks(blocks []suggest.CodeBlock) {
	if len(blocks) == 0 {
		fmt.Fprintln(a.out, "No code blocks found in the response.")
		return
	}
	for _, block := range blocks {
		if _, err := os.Stat(block.Filename); err == nil {
			fmt.Fprintf(a.out, "  %s already exists, skipping. Delete it and re-run to regenerate.\n", block.Filename)
			continue
		}
		if err := CreateFile(block.Filename, block.Content); err != nil {
			fmt.Fprintf(a.out, "  Failed to write %s: %v\n", block.Filename, err)
			continue
		}
		fmt.Fprintf(a.out, "  Generated %s.\n", block.Filename)
	}
}

func (a *Applier) ask(prompt string) string {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		logger.Warn("input closed during confirmation, treating as no")
		return "n"
	}
	return strings.ToLower(strings.TrimSpace(a.in.Text()))
}

func snippetOf(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func suffixFor(target string) string {
	if idx := strings.LastIndexByte(target, '.'); idx >= 0 {
		return target[idx:]
	}
	return ".txt"
}
