// Package config provides layered configuration management using Viper.
//
// Ambient settings (logging, default LLM endpoint) resolve with the
// precedence: ENV vars > global XDG config > built-in defaults. LLM settings
// additionally accept per-project overrides stored in project.json, which
// take precedence over everything in the global layer; see Resolve.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Built-in LLM defaults. These are the final fallback layer and are the
// values written into fresh projects.
const (
	DefaultLLMHost      = "localhost"
	DefaultLLMPort      = 11434
	DefaultLLMModel     = "deepseek-coder:6.7b"
	DefaultLLMTimeoutMS = 180000
)

// Config holds the global (non-project) configuration values for devcoach.
type Config struct {
	LogLevel string      `mapstructure:"log_level" yaml:"log_level,omitempty"`
	LogFile  string      `mapstructure:"log_file" yaml:"log_file,omitempty"`
	LLM      LLMSettings `mapstructure:"llm" yaml:"llm,omitempty"`
}

// LLMSettings is a partial set of LLM connection settings. Zero values mean
// "not set here, look at the next layer down". The same shape is embedded in
// project.json as the project-level override layer.
type LLMSettings struct {
	Host      string `mapstructure:"host" yaml:"host,omitempty" json:"host,omitempty"`
	Port      int    `mapstructure:"port" yaml:"port,omitempty" json:"port,omitempty"`
	Model     string `mapstructure:"model" yaml:"model,omitempty" json:"model,omitempty"`
	TimeoutMS int64  `mapstructure:"timeout_ms" yaml:"timeout_ms,omitempty" json:"timeout_ms,omitempty"`
}

// IsZero reports whether no field is set.
func (s LLMSettings) IsZero() bool {
	return s.Host == "" && s.Port == 0 && s.Model == "" && s.TimeoutMS == 0
}

// Load loads the global configuration with precedence:
// ENV vars > XDG global config file > defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("log_level", "")
	v.SetDefault("log_file", "")
	v.SetDefault("llm.host", "")
	v.SetDefault("llm.port", 0)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout_ms", 0)

	v.SetEnvPrefix("DEVCOACH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better int parsing
	for key, env := range map[string]string{
		"log_level":      "DEVCOACH_LOG_LEVEL",
		"log_file":       "DEVCOACH_LOG_FILE",
		"llm.host":       "DEVCOACH_LLM_HOST",
		"llm.port":       "DEVCOACH_LLM_PORT",
		"llm.model":      "DEVCOACH_LLM_MODEL",
		"llm.timeout_ms": "DEVCOACH_LLM_TIMEOUT_MS",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// GlobalPath returns the XDG global config path:
// $XDG_CONFIG_HOME/devcoach/devcoach.yml or ~/.config/devcoach/devcoach.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "devcoach", "devcoach.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "devcoach", "devcoach.yml")
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Source identifies which layer a resolved value came from.
type Source string

const (
	SourceProject Source = "project (project.json)"
	SourceGlobal  Source = "global config"
	SourceDefault Source = "default"
)

// ResolvedLLM is the final LLM configuration after merging the project layer,
// the global layer, and built-in defaults. Every field records its origin so
// `devcoach status` can explain where a value came from.
type ResolvedLLM struct {
	Host          string
	HostSource    Source
	Port          int
	PortSource    Source
	Model         string
	ModelSource   Source
	TimeoutMS     int64
	TimeoutSource Source
}

// BaseURL returns the Ollama base URL built from host and port.
func (r ResolvedLLM) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", r.Host, r.Port)
}

// Timeout returns the request timeout as a duration.
func (r ResolvedLLM) Timeout() time.Duration {
	return time.Duration(r.TimeoutMS) * time.Millisecond
}

// Validate checks that the resolved configuration is usable.
func (r ResolvedLLM) Validate() error {
	if r.Host == "" {
		return fmt.Errorf("LLM host cannot be empty")
	}
	if r.Port <= 0 || r.Port > 65535 {
		return fmt.Errorf("LLM port must be between 1 and 65535, got %d", r.Port)
	}
	if r.Model == "" {
		return fmt.Errorf("LLM model cannot be empty")
	}
	if r.TimeoutMS <= 0 {
		return fmt.Errorf("LLM timeout must be positive, got %d", r.TimeoutMS)
	}
	return nil
}

// Resolve merges LLM settings with the precedence project > global > default.
// Either layer may be nil.
func Resolve(global, project *LLMSettings) ResolvedLLM {
	r := ResolvedLLM{
		Host:          DefaultLLMHost,
		HostSource:    SourceDefault,
		Port:          DefaultLLMPort,
		PortSource:    SourceDefault,
		Model:         DefaultLLMModel,
		ModelSource:   SourceDefault,
		TimeoutMS:     DefaultLLMTimeoutMS,
		TimeoutSource: SourceDefault,
	}

	apply := func(layer *LLMSettings, src Source) {
		if layer == nil {
			return
		}
		if layer.Host != "" {
			r.Host, r.HostSource = layer.Host, src
		}
		if layer.Port != 0 {
			r.Port, r.PortSource = layer.Port, src
		}
		if layer.Model != "" {
			r.Model, r.ModelSource = layer.Model, src
		}
		if layer.TimeoutMS != 0 {
			r.TimeoutMS, r.TimeoutSource = layer.TimeoutMS, src
		}
	}

	apply(global, SourceGlobal)
	apply(project, SourceProject)
	return r
}
