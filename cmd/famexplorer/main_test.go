package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phanxgames/famexplorer/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(buf.String(), "famexplorer v") {
		t.Errorf("version output should contain 'famexplorer v', got: %s", buf.String())
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	cmd := cli.NewRootCmd()
	for _, name := range []string{"run", "search", "resolve", "import", "version"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
