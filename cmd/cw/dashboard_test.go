package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDashboardCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"dashboard", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("dashboard --help failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "JSON API") {
		t.Errorf("expected help to mention 'JSON API', got: %s", out)
	}
	for _, flag := range []string{"--port", "--config"} {
		if !strings.Contains(out, flag) {
			t.Errorf("expected %s flag in help, got: %s", flag, out)
		}
	}
}

func TestNewDashboardCmd(t *testing.T) {
	cmd := newDashboardCmd()
	if cmd.Use != "dashboard" {
		t.Errorf("Use = %q, want %q", cmd.Use, "dashboard")
	}

	portFlag := cmd.Flags().Lookup("port")
	if portFlag == nil {
		t.Fatal("expected --port flag")
	}
	if portFlag.Shorthand != "p" {
		t.Errorf("--port shorthand = %q, want %q", portFlag.Shorthand, "p")
	}
}
