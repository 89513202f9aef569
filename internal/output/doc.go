// Package output provides structured output handling for the casewalker CLI.
//
// The converter talks to its user through a Printer: progress lines and the
// final summary go to stdout, warnings and errors to stderr. With --json the
// run report is written as a single JSON document instead.
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, isTTY).WithStderr(cmd.ErrOrStderr())
//	printer.Dim("Writing fact-type to %s.", path)
//	printer.Warn("creation of the directory %s failed", dir)
//
// # Styling
//
// Human-readable output uses lipgloss styles that are cleared when the
// writer is not a terminal or --color never is given.
//
// # Exit Codes
//
//	output.ExitSuccess    // 0: Success, --help, --version
//	output.ExitInputError // 1: Invalid JSON, unreadable/empty input, malformed records
//	output.ExitUsageError // 2: Missing --file, unknown flags, stray arguments
//
// Errors built with NewInputError and NewUsageError carry their exit code;
// GetExitCode recovers it at the top of main.
package output
