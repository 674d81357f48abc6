package apply

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateFile writes a new file, creating parent directories as needed.
// Fails if the file already exists.
func CreateFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent directories for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReplaceFile overwrites an existing file. Fails if the file does not
// exist so a bad target path cannot silently create a new file.
func ReplaceFile(path, content string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found for replacement: %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// AppendFile appends content plus a trailing newline, creating the file
// and its parent directories if they do not exist.
func AppendFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent directories for %s: %w", path, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content + "\n"); err != nil {
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return nil
}

// AddImport appends an import statement line to the target file.
func AddImport(path, statement string) error {
	return AppendFile(path, statement)
}
