package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfigPaths points the loader at test-controlled user and project
// config files for the duration of a test.
func withConfigPaths(t *testing.T, userPath, projectPath string) {
	t.Helper()
	origUser := getUserConfigPath
	origProject := getProjectConfigPath
	getUserConfigPath = func() (string, error) { return userPath, nil }
	getProjectConfigPath = func() (string, error) { return projectPath, nil }
	t.Cleanup(func() {
		getUserConfigPath = origUser
		getProjectConfigPath = origProject
	})
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaultsOnly(t *testing.T) {
	dir := t.TempDir()
	withConfigPaths(t, filepath.Join(dir, "missing-user.yaml"), filepath.Join(dir, "missing-project.yaml"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.GlobalSettings.LogLevel)
	assert.Equal(t, DefaultCallTimeout, cfg.GlobalSettings.CallTimeout)
	assert.Equal(t, "default", cfg.Environment)
	assert.Empty(t, cfg.Services)
}

func TestLoadConfigUserOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	userPath := writeConfigFile(t, dir, `
globalSettings:
  logLevel: debug
environment: production
services:
  - name: inventory
    mcpPort: 8090
`)
	withConfigPaths(t, userPath, filepath.Join(dir, "missing-project.yaml"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.GlobalSettings.LogLevel)
	assert.Equal(t, DefaultCallTimeout, cfg.GlobalSettings.CallTimeout, "unset fields keep their defaults")
	assert.Equal(t, "production", cfg.Environment)
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, "inventory", cfg.Services[0].Name)
	assert.Equal(t, 8090, cfg.Services[0].MCPPort)
}

func TestLoadConfigProjectOverridesUser(t *testing.T) {
	userDir := t.TempDir()
	projectDir := t.TempDir()
	userPath := writeConfigFile(t, userDir, `
globalSettings:
  logLevel: debug
  callTimeout: 10s
services:
  - name: inventory
    host: user-host
    mcpPort: 8090
  - name: billing
    mcpPort: 8091
`)
	projectPath := writeConfigFile(t, projectDir, `
globalSettings:
  logLevel: warn
services:
  - name: inventory
    host: project-host
    mcpPort: 9090
  - name: deployments
    mcpPort: 9095
`)
	withConfigPaths(t, userPath, projectPath)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.GlobalSettings.LogLevel, "project layer wins")
	assert.Equal(t, 10*time.Second, cfg.GlobalSettings.CallTimeout, "user layer survives where project is silent")

	require.Len(t, cfg.Services, 3)
	assert.Equal(t, "inventory", cfg.Services[0].Name, "merged services keep base order")
	assert.Equal(t, "project-host", cfg.Services[0].Host)
	assert.Equal(t, 9090, cfg.Services[0].MCPPort)
	assert.Equal(t, "billing", cfg.Services[1].Name)
	assert.Equal(t, "deployments", cfg.Services[2].Name, "project-only services are appended")
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	userPath := writeConfigFile(t, dir, "services: [unclosed")
	withConfigPaths(t, userPath, filepath.Join(dir, "missing-project.yaml"))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading user config")
}

func TestMergeConfigsEmptyOverlay(t *testing.T) {
	base := DefaultConfig()
	base.Services = []ServiceDefinition{{Name: "inventory", MCPPort: 8090}}

	merged := mergeConfigs(base, Config{})

	assert.Equal(t, base.GlobalSettings, merged.GlobalSettings)
	assert.Equal(t, base.Environment, merged.Environment)
	assert.Equal(t, base.Services, merged.Services)
}

func TestGetUserConfigDir(t *testing.T) {
	orig := osUserHomeDir
	osUserHomeDir = func() (string, error) { return "/home/tester", nil }
	t.Cleanup(func() { osUserHomeDir = orig })

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".config", "toolctl"), dir)
}
