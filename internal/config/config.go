package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/casewalker/internal/export"
	"github.com/gorewood/casewalker/internal/sentence"
)

// FileName is the name of the config file inside Dir().
const FileName = "config.yaml"

// DefaultOutputRoot is the directory below which each run gets a dated
// subdirectory.
const DefaultOutputRoot = "output"

// dateLayout names the per-run output directory.
const dateLayout = "2006-01-02"

// ErrConfigNotFound is returned when an explicitly requested config file
// does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// Config holds the settings that shape a conversion run.
type Config struct {
	// OutputRoot is the parent of the dated per-run directory.
	OutputRoot string `yaml:"output_root"`
	// DefaultFile receives fact-types without a model.
	DefaultFile string `yaml:"default_file"`
	// Extension is appended to model-derived file names.
	Extension string `yaml:"extension"`
	// Sentinel replaces placeholders without data.
	Sentinel string `yaml:"sentinel"`
	// AllowComments accepts comments and trailing commas in the input.
	AllowComments bool `yaml:"allow_comments"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputRoot:  DefaultOutputRoot,
		DefaultFile: export.DefaultFileName,
		Extension:   export.DefaultExtension,
		Sentinel:    sentence.DefaultSentinel,
	}
}

// Load returns the built-in defaults overlaid with a config file.
//
// An explicit path must exist. With an empty path the global config file
// (DefaultPath) is used when present.
func Load(path string) (Config, error) {
	cfg := Default()

	mustExist := path != ""
	if !mustExist {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	overlay, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return merge(cfg, overlay), nil
}

// parse decodes YAML config, rejecting unknown keys.
func parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// merge applies every non-empty overlay field to base.
func merge(base, overlay Config) Config {
	if overlay.OutputRoot != "" {
		base.OutputRoot = overlay.OutputRoot
	}
	if overlay.DefaultFile != "" {
		base.DefaultFile = overlay.DefaultFile
	}
	if overlay.Extension != "" {
		base.Extension = overlay.Extension
	}
	if overlay.Sentinel != "" {
		base.Sentinel = overlay.Sentinel
	}
	if overlay.AllowComments {
		base.AllowComments = true
	}
	return base
}

// OutputDir returns the directory for a run started at now:
// <OutputRoot>/<YYYY-MM-DD>.
func (c Config) OutputDir(now time.Time) string {
	return filepath.Join(c.OutputRoot, now.Format(dateLayout))
}
