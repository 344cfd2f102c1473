package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmdHasExpectedSubcommands(t *testing.T) {
	expected := []string{"call", "tools", "services", "version", "self-update"}

	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestSetVersion(t *testing.T) {
	orig := rootCmd.Version
	defer func() { rootCmd.Version = orig }()

	SetVersion("1.2.3")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("expected version to be 1.2.3, got %q", rootCmd.Version)
	}
}

func TestVersionCmdOutput(t *testing.T) {
	orig := rootCmd.Version
	defer func() { rootCmd.Version = orig }()
	rootCmd.Version = "9.9.9"

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	if got := out.String(); !strings.Contains(got, "toolctl version 9.9.9") {
		t.Errorf("unexpected version output: %q", got)
	}
}

func TestCallCmdRejectsMalformedArgs(t *testing.T) {
	cmd := newCallCmd()
	cmd.SetArgs([]string{"inventory", "health_check", "--args", "{not json"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for malformed --args")
	}
	if !strings.Contains(err.Error(), "--args must be a JSON object") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCallCmdRequiresServiceAndTool(t *testing.T) {
	cmd := newCallCmd()
	cmd.SetArgs([]string{"inventory"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when the tool argument is missing")
	}
}

func TestToolsCmdRequiresService(t *testing.T) {
	cmd := newToolsCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when the service argument is missing")
	}
}
