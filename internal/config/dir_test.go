package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestResolveDir(t *testing.T) {
	homeDir := func() (string, error) { return "/home/ana", nil }
	noHome := func() (string, error) { return "", errors.New("$HOME is not defined") }

	tests := []struct {
		name string
		env  map[string]string
		home func() (string, error)
		goos string
		want string
	}{
		{
			name: "explicit override wins",
			env:  map[string]string{EnvConfigHome: "/custom", "XDG_CONFIG_HOME": "/xdg"},
			home: homeDir,
			goos: "linux",
			want: "/custom",
		},
		{
			name: "xdg",
			env:  map[string]string{"XDG_CONFIG_HOME": "/xdg", "APPDATA": "/appdata"},
			home: homeDir,
			goos: "windows",
			want: filepath.Join("/xdg", "casewalker"),
		},
		{
			name: "appdata on windows",
			env:  map[string]string{"APPDATA": "/appdata"},
			home: homeDir,
			goos: "windows",
			want: filepath.Join("/appdata", "casewalker"),
		},
		{
			name: "appdata ignored elsewhere",
			env:  map[string]string{"APPDATA": "/appdata"},
			home: homeDir,
			goos: "darwin",
			want: filepath.Join("/home/ana", ".config", "casewalker"),
		},
		{
			name: "home fallback",
			home: homeDir,
			goos: "linux",
			want: filepath.Join("/home/ana", ".config", "casewalker"),
		},
		{
			name: "no home",
			home: noHome,
			goos: "linux",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string { return tt.env[key] }
			if got := resolveDir(getenv, tt.home, tt.goos); got != tt.want {
				t.Errorf("resolveDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv(EnvConfigHome, "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfigHome, "/etc/cw")
	if got := DefaultPath(); got != filepath.Join("/etc/cw", "config.yaml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}
