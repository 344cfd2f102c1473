package config

import "time"

const (
	// DefaultHost is used when a service definition omits its host.
	DefaultHost = "localhost"

	// DefaultCallTimeout bounds every MCP exchange when the config does not
	// override it.
	DefaultCallTimeout = 30 * time.Second
)

// DefaultConfig returns the built-in configuration. No services are defined
// by default; user and project files supply them.
func DefaultConfig() Config {
	return Config{
		GlobalSettings: GlobalSettings{
			LogLevel:    "info",
			CallTimeout: DefaultCallTimeout,
		},
		Environment: "default",
		Services:    []ServiceDefinition{},
	}
}
