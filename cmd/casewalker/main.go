// Package main provides the entry point for the casewalker CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/casewalker/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// usageLine is printed with every usage error.
const usageLine = "Usage: casewalker -f <json-file>"

// isJSONMode reads the --json flag from the root command.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Root().Flags().Lookup("json")
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(buildVersion()),
		fang.WithoutManpage(),
		fang.WithErrorHandler(errorHandler(cmd)),
	)
	return output.GetExitCode(err)
}

// errorHandler reports a failed run through the output printer so that
// --json produces a structured error. Usage errors also print the usage line.
func errorHandler(root *cobra.Command) fang.ErrorHandler {
	return func(w io.Writer, _ fang.Styles, err error) {
		jsonMode := isJSONMode(root)
		printer := output.NewPrinter(root.OutOrStdout(), jsonMode, output.IsTTY(w)).WithStderr(w)
		printer.Error(err)
		if !jsonMode && output.GetExitCode(err) == output.ExitUsageError {
			_, _ = fmt.Fprintln(w, usageLine)
		}
	}
}

// newRootCmd creates the casewalker command.
func newRootCmd() *cobra.Command {
	return newRootCmdInternal(time.Now)
}

// newRootCmdInternal creates the casewalker command with an injectable clock.
// The clock stamps every block and picks the dated output directory.
func newRootCmdInternal(clock func() time.Time) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "casewalker -f <json-file>",
		Short: "Convert fact-type JSON into EXP export files",
		Long: `Casewalker converts a JSON document of fact-types into EXP export files.

Each fact-type is a titled sentence template with example data rows. Fact-types
are sorted by title, rendered as a commented header plus one quoted sentence per
row, and appended to a file named after their model (my_model.exp), or to
generated_by_the_casewalker.exp when they have none.

Files are written to <output-root>/<YYYY-MM-DD>. Files left in that directory by
an earlier run are removed first.

Examples:
  casewalker -f ./facts.json                 # Write ./output/<today>/*.exp
  casewalker -f ./facts.json -o ./exports    # Write ./exports/<today>/*.exp
  casewalker -f ./facts.json --json          # Print the run report as JSON`,
		Version:       buildVersion(),
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd, opts, clock)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Fact-type JSON document to convert")
	cmd.Flags().StringVarP(&opts.outRoot, "out", "o", "", "Output root directory (default: output)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default: <config dir>/config.yaml)")
	cmd.Flags().BoolVar(&opts.jsonMode, "json", false, "Print the run report as JSON")
	cmd.Flags().StringVar(&opts.color, "color", "auto", "Colorize output: auto, always or never")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return output.NewUsageError(err.Error())
	})

	lipgloss.SetHasDarkBackground(true)

	return cmd
}

// noArgs rejects positional arguments; the input is always given with -f.
func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return output.NewUsageError(fmt.Sprintf("unexpected argument %q", args[0]))
	}
	return nil
}
