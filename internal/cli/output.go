// Package cli renders client results for the console's command surface.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"toolctl/internal/config"
	"toolctl/internal/mcpclient"
)

// OutputFormat represents the output format for CLI commands.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatText OutputFormat = "text"
)

const descriptionColumnWidth = 72

// FormatResult renders a raw tool-call result. The json format preserves
// the result verbatim (indented); yaml converts it; text extracts the first
// text content block, falling back to json when there is none.
func FormatResult(raw json.RawMessage, format OutputFormat) (string, error) {
	switch format {
	case OutputFormatJSON, "":
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return "", fmt.Errorf("formatting result: %w", err)
		}
		return buf.String(), nil

	case OutputFormatYAML:
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return "", fmt.Errorf("formatting result: %w", err)
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("formatting result: %w", err)
		}
		return string(out), nil

	case OutputFormatText:
		if text, ok := ExtractText(raw); ok {
			return text, nil
		}
		return FormatResult(raw, OutputFormatJSON)

	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// ExtractText pulls the first text content block out of a tools/call
// result. It reports false when the result has no such block.
func ExtractText(raw json.RawMessage) (string, bool) {
	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", false
	}
	for _, content := range result.Content {
		if content.Type == "text" {
			return content.Text, true
		}
	}
	return "", false
}

// RenderToolTable renders a tool catalog as an aligned table. Long
// descriptions are truncated at display width, not byte count.
func RenderToolTable(tools []mcpclient.ToolDescriptor) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"TOOL", "DESCRIPTION"})
	for _, tool := range tools {
		t.AppendRow(table.Row{tool.Name, runewidth.Truncate(tool.Description, descriptionColumnWidth, "…")})
	}
	return t.Render()
}

// RenderServiceTable renders the configured services as an aligned table.
func RenderServiceTable(services []config.ServiceDefinition) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"SERVICE", "HOST", "MCP PORT", "BASE PATH"})
	for _, svc := range services {
		host := svc.Host
		if host == "" {
			host = config.DefaultHost
		}
		t.AppendRow(table.Row{svc.Name, host, svc.MCPPort, svc.BasePath})
	}
	return t.Render()
}
