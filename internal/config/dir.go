// Package config resolves casewalker's configuration: defaults, the YAML
// config file, and the per-run output directory.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfigHome overrides the configuration directory.
const EnvConfigHome = "CASEWALKER_CONFIG_HOME"

const appDirName = "casewalker"

// Dir returns the casewalker configuration directory, or "" when none can
// be determined. The first match wins:
//   - $CASEWALKER_CONFIG_HOME
//   - $XDG_CONFIG_HOME/casewalker
//   - %AppData%/casewalker (Windows only)
//   - ~/.config/casewalker
func Dir() string {
	return resolveDir(os.Getenv, os.UserHomeDir, runtime.GOOS)
}

// DefaultPath returns the location of the optional global config file,
// or "" when no config directory can be determined.
func DefaultPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}

func resolveDir(getenv func(string) string, home func() (string, error), goos string) string {
	if dir := getenv(EnvConfigHome); dir != "" {
		return dir
	}

	var base string
	switch {
	case getenv("XDG_CONFIG_HOME") != "":
		base = getenv("XDG_CONFIG_HOME")
	case goos == "windows" && getenv("APPDATA") != "":
		base = getenv("APPDATA")
	default:
		h, err := home()
		if err != nil || h == "" {
			return ""
		}
		base = filepath.Join(h, ".config")
	}
	return filepath.Join(base, appDirName)
}
