package domain

// Config represents the application configuration.
type Config struct {
	Agent AgentConfig // [agent] settings
	Log   LogConfig   // [log] settings
}

// AgentConfig holds the external agent invocation settings.
type AgentConfig struct {
	Command        string   // Agent executable (default "codex")
	Args           []string // Arguments placed before the prompt (default exec --json)
	TimeoutSeconds int      // Optional timeout for the agent call; 0 = none
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// NewDefaultConfig returns the configuration used when no config file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Command: "codex",
			Args:    []string{"exec", "--json"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
