package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/devcoach/devcoach/internal/config"
	"github.com/devcoach/devcoach/internal/logger"
)

// FileName is the project document file, always in the working directory.
const FileName = "project.json"

// DataDir is the devcoach state directory inside the project.
const DataDir = ".devcoach"

//go:embed schema.json
var schemaJSON string

var projectSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("project.schema.json", strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("adding project schema resource: %v", err))
	}
	schema, err := compiler.Compile("project.schema.json")
	if err != nil {
		panic(fmt.Sprintf("compiling project schema: %v", err))
	}
	return schema
}

// Exists reports whether a project document is present in the working
// directory.
func Exists() bool {
	info, err := os.Stat(FileName)
	return err == nil && !info.IsDir()
}

// Load reads and validates project.json from the working directory and
// resolves the LLM configuration against the given global layer.
func Load(global *config.LLMSettings) (*Project, error) {
	return LoadPath(FileName, global)
}

// LoadPath reads and validates the project document at path.
func LoadPath(path string, global *config.LLMSettings) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no project found (%s missing): run 'devcoach init' first", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := validateDocument(data); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	p.global = global
	p.resolved = config.Resolve(global, p.Meta.LLM)
	logger.Debug("Loaded project %q with %d backlog items, %d sprints",
		p.Meta.Name, len(p.Backlog), len(p.Sprints))
	return &p, nil
}

// validateDocument checks raw JSON against the embedded project schema.
func validateDocument(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if err := projectSchema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := ve
			for len(leaf.Causes) > 0 {
				leaf = leaf.Causes[0]
			}
			loc := leaf.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			return fmt.Errorf("schema violation at %s: %s", loc, leaf.Message)
		}
		return err
	}
	return nil
}

// Save writes the project document to project.json in the working directory.
func (p *Project) Save() error {
	return p.SavePath(FileName)
}

// SavePath writes the project document to path atomically (temp file plus
// rename) so a crash mid-write never leaves a truncated document behind.
func (p *Project) SavePath(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project: %w", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".project-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	logger.Debug("Saved project %q to %s", p.Meta.Name, path)
	return nil
}

// CreateInCurrentDir builds a project named after the working directory and
// persists it, so callers and other processes can load it straight away.
func CreateInCurrentDir(global *config.LLMSettings) (*Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	name := filepath.Base(cwd)
	if name == "" || name == string(filepath.Separator) {
		return nil, fmt.Errorf("cannot derive project name from directory %q", cwd)
	}
	p := New(name, "Generated project", global)
	if err := p.Save(); err != nil {
		return nil, err
	}
	return p, nil
}
