// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/git-batch/internal/domain"
)

// Loader loads configuration from the TOML file under the batch root.
type Loader struct {
	batchDir string
}

// NewLoader creates a new Loader.
func NewLoader(batchDir string) *Loader {
	return &Loader{batchDir: batchDir}
}

// Ensure Loader implements its ports.
var (
	_ domain.ConfigLoader      = (*Loader)(nil)
	_ domain.ConfigInitializer = (*Loader)(nil)
)

// configFile mirrors the TOML layout.
type configFile struct {
	Agent struct {
		Command        string   `toml:"command"`
		Args           []string `toml:"args"`
		TimeoutSeconds int      `toml:"timeout_seconds"`
	} `toml:"agent"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Load returns the configuration with defaults applied. A missing config
// file yields the defaults; a malformed one is an error.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	data, err := os.ReadFile(l.path())
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var file configFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if file.Agent.Command != "" {
		cfg.Agent.Command = file.Agent.Command
	}
	if file.Agent.Args != nil {
		cfg.Agent.Args = file.Agent.Args
	}
	if file.Agent.TimeoutSeconds > 0 {
		cfg.Agent.TimeoutSeconds = file.Agent.TimeoutSeconds
	}
	if file.Log.Level != "" {
		cfg.Log.Level = file.Log.Level
	}

	return cfg, nil
}

// Init writes a starter config file and returns its path.
// Returns domain.ErrConfigExists if one is already present.
func (l *Loader) Init() (string, error) {
	path := l.path()
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrConfigExists, path)
	}

	if err := os.MkdirAll(l.batchDir, 0o750); err != nil {
		return "", fmt.Errorf("create batch directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func (l *Loader) path() string {
	return filepath.Join(l.batchDir, domain.ConfigFileName)
}

const defaultConfigTemplate = `# git-batch configuration

[agent]
# External coding agent invoked once per task. The prompt text is passed
# as the final argument; the agent must emit newline-delimited JSON events
# on stdout.
# command = "codex"
# args = ["exec", "--json"]
# timeout_seconds = 0

[log]
# CLI log level: debug, info, warn, error
# level = "info"
`
