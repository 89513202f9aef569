package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/casewalker/internal/config"
	"github.com/gorewood/casewalker/internal/export"
	"github.com/gorewood/casewalker/internal/facttype"
	"github.com/gorewood/casewalker/internal/output"
	"github.com/gorewood/casewalker/internal/sentence"
)

// convertOptions holds the parsed command-line flags.
type convertOptions struct {
	file       string
	outRoot    string
	configPath string
	jsonMode   bool
	color      string
}

// runConvert executes one conversion run.
func runConvert(cmd *cobra.Command, opts convertOptions, clock func() time.Time) error {
	mode, err := output.ParseColorMode(opts.color)
	if err != nil {
		return err
	}
	stdout := cmd.OutOrStdout()
	printer := output.NewPrinter(stdout, opts.jsonMode, mode.Enabled(output.IsTTY(stdout))).
		WithStderr(cmd.ErrOrStderr())

	if opts.file == "" {
		return output.NewUsageError("no input file given")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Input is fully loaded and validated before the output directory is touched.
	records, err := loadRecords(facttype.Parser{AllowComments: cfg.AllowComments}, opts.file)
	if err != nil {
		return err
	}

	formatter := &export.Formatter{
		Now:      clock,
		Renderer: sentence.Renderer{Sentinel: cfg.Sentinel},
	}
	router := export.NewRouter(export.RouterConfig{
		Dir:         cfg.OutputDir(clock()),
		DefaultFile: cfg.DefaultFile,
		Extension:   cfg.Extension,
	})

	report := export.Convert(records, formatter, router, progressHooks(printer))

	return writeReport(printer, report)
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(opts convertOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, output.NewInputErrorWithCause(err.Error(), err)
	}
	if opts.outRoot != "" {
		cfg.OutputRoot = opts.outRoot
	}
	return cfg, nil
}

// loadRecords reads and validates the fact-type document.
func loadRecords(parser facttype.Parser, path string) ([]*facttype.Record, error) {
	records, err := parser.Load(path)
	if err == nil {
		return records, nil
	}

	switch {
	case errors.Is(err, facttype.ErrInputNotFound), errors.Is(err, facttype.ErrEmptyInput):
		return nil, output.NewInputErrorWithCause(fmt.Sprintf("%s: %v", path, err), err)
	case errors.Is(err, facttype.ErrInvalidJSON):
		return nil, output.NewInputErrorWithCause(fmt.Sprintf("the JSON syntax of %s is invalid: %v", path, err), err)
	default:
		return nil, output.NewInputErrorWithCause(fmt.Sprintf("cannot convert %s: %v", path, err), err)
	}
}

// progressHooks reports each write as it happens in human mode. In JSON mode
// everything is left to the final report.
func progressHooks(printer *output.Printer) export.Hooks {
	if printer.IsJSON() {
		return export.Hooks{}
	}
	return export.Hooks{
		OnWrite: func(_ *facttype.Record, res export.WriteResult) {
			if res.Err != nil {
				printer.Warn("%v", res.Err)
				return
			}
			printer.Dim("Writing fact-type to %s.", res.Path)
		},
		OnWarning: func(err error) {
			printer.Warn("%v", err)
		},
	}
}

// writeReport prints the run summary. Write failures are warnings only;
// the run still succeeds.
func writeReport(printer *output.Printer, report *export.Report) error {
	if printer.IsJSON() {
		if err := printer.WriteJSON(report); err != nil {
			return output.NewRunError(fmt.Sprintf("writing report: %v", err), err)
		}
		return nil
	}

	if err := printer.Success(fmt.Sprintf("Converted %d fact-types into %d files", report.Blocks, len(report.Files))); err != nil {
		return output.NewRunError(fmt.Sprintf("writing report: %v", err), err)
	}
	printer.KeyValue("Output", report.Dir)
	if n := len(report.Incomplete); n > 0 {
		printer.KeyValue("Rows with missing values", fmt.Sprint(n))
	}
	if failed := report.Failed(); failed > 0 {
		printer.Warn("%d fact-types could not be written", failed)
	}
	return nil
}
