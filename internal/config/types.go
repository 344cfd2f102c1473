package config

import (
	"time"
)

// Config is the top-level configuration structure for toolctl.
type Config struct {
	GlobalSettings GlobalSettings      `yaml:"globalSettings"`
	Environment    string              `yaml:"environment,omitempty"`
	Services       []ServiceDefinition `yaml:"services"`
}

// GlobalSettings holds cross-service settings.
type GlobalSettings struct {
	LogLevel    string        `yaml:"logLevel,omitempty"`    // "debug", "info", "warn", "error"
	CallTimeout time.Duration `yaml:"callTimeout,omitempty"` // per-call deadline for every MCP exchange
}

// ServiceDefinition names one backend tool service and where to reach it.
type ServiceDefinition struct {
	Name     string `yaml:"name"`               // Unique logical name, e.g. "deployments", "billing"
	Host     string `yaml:"host,omitempty"`     // Defaults to localhost
	MCPPort  int    `yaml:"mcpPort"`            // Port serving the /mcp endpoint
	BasePath string `yaml:"basePath,omitempty"` // Optional path prefix before /mcp
}
