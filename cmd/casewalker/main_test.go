package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/fang"

	"github.com/gorewood/casewalker/internal/output"
)

var fixedTime = time.Date(2026, 1, 15, 15, 4, 5, 0, time.Local)

func fixedClock() time.Time { return fixedTime }

// executeCmd runs the root command with args and returns stdout, stderr and
// the error returned by Execute.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CASEWALKER_CONFIG_HOME", t.TempDir())

	cmd := newRootCmdInternal(fixedClock)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	t.Cleanup(func() { version = "dev" })

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "casewalker") {
		t.Errorf("--version output should contain 'casewalker': %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCmd(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if output.GetExitCode(err) != output.ExitSuccess {
		t.Errorf("--help exit code = %d, want 0", output.GetExitCode(err))
	}

	for _, expected := range []string{"casewalker", "Usage:", "--file", "-f", "--out", "--json"} {
		if !strings.Contains(stdout, expected) {
			t.Errorf("--help output should contain %q: %q", expected, stdout)
		}
	}
}

func TestRootCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no flags", args: nil},
		{name: "unknown flag", args: []string{"--bogus"}},
		{name: "unknown shorthand", args: []string{"-x", "facts.json"}},
		{name: "flag without value", args: []string{"-f"}},
		{name: "positional argument", args: []string{"facts.json"}},
		{name: "bad color", args: []string{"-f", "facts.json", "--color", "rainbow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCmd(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() expected error")
			}
			if code := output.GetExitCode(err); code != output.ExitUsageError {
				t.Errorf("exit code = %d, want %d (err: %v)", code, output.ExitUsageError, err)
			}
		})
	}
}

func TestBuildVersion(t *testing.T) {
	version, commit, date = "1.0.0", "abcdef123456", "2026-01-15"
	t.Cleanup(func() { version, commit, date = "dev", "none", "unknown" })

	if got, want := buildVersion(), "1.0.0 (abcdef1, 2026-01-15)"; got != want {
		t.Errorf("buildVersion() = %q, want %q", got, want)
	}
}

func TestErrorHandler_Human(t *testing.T) {
	cmd := newRootCmdInternal(fixedClock)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)

	errorHandler(cmd)(&stderr, fang.Styles{}, output.NewUsageError("unknown flag: --bogus"))

	got := stderr.String()
	if !strings.Contains(got, "Error: unknown flag: --bogus") {
		t.Errorf("stderr = %q", got)
	}
	if !strings.Contains(got, usageLine) {
		t.Errorf("usage errors should print the usage line: %q", got)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
}

func TestErrorHandler_InputErrorOmitsUsage(t *testing.T) {
	cmd := newRootCmdInternal(fixedClock)
	var stderr bytes.Buffer

	errorHandler(cmd)(&stderr, fang.Styles{}, output.NewInputError("the JSON syntax of f.json is invalid"))

	if strings.Contains(stderr.String(), usageLine) {
		t.Errorf("input errors should not print usage: %q", stderr.String())
	}
}

func TestErrorHandler_JSON(t *testing.T) {
	cmd := newRootCmdInternal(fixedClock)
	if err := cmd.Flags().Set("json", "true"); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)

	errorHandler(cmd)(&stderr, fang.Styles{}, output.NewInputError("input is empty"))

	var result map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("stdout should be JSON: %v\n%s", err, stdout.String())
	}
	if result["error"] != "input is empty" {
		t.Errorf("error = %v", result["error"])
	}
	if code, ok := result["code"].(float64); !ok || int(code) != output.ExitInputError {
		t.Errorf("code = %v, want %d", result["code"], output.ExitInputError)
	}
}

func TestNoArgs(t *testing.T) {
	if err := noArgs(nil, nil); err != nil {
		t.Errorf("noArgs(nil) = %v", err)
	}
	err := noArgs(nil, []string{"x"})
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != output.ExitUsageError {
		t.Errorf("noArgs([x]) = %v, want usage error", err)
	}
}
