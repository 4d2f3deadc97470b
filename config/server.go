package config

import "fmt"

// ServerConfig configures the HTTP dashboard and API listener.
type ServerConfig struct {
	Address string `json:"address"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
}

func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}

// APIConfig guards the mutating API routes. An empty token disables auth.
type APIConfig struct {
	Token string `json:"token"`
}

// LogConfig selects the zerolog level and, optionally, a rotated log file
// instead of stdout.
type LogConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	MaxSizeMB int    `json:"max_size_mb"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LogConfig) Validate() error {
	switch c.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	}
	return fmt.Errorf("unknown level %q", c.Level)
}
