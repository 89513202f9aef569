package output

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{in: "", want: ColorAuto},
		{in: "auto", want: ColorAuto},
		{in: "always", want: ColorAlways},
		{in: "never", want: ColorNever},
		{in: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				if GetExitCode(err) != ExitUsageError {
					t.Fatalf("ParseColorMode(%q) error = %v, want usage error", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColorMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorMode_Enabled(t *testing.T) {
	tests := []struct {
		mode  ColorMode
		isTTY bool
		want  bool
	}{
		{ColorNever, true, false},
		{ColorNever, false, false},
		{ColorAlways, true, true},
		{ColorAlways, false, true},
		{ColorAuto, true, true},
		{ColorAuto, false, false},
	}

	for _, tt := range tests {
		if got := tt.mode.Enabled(tt.isTTY); got != tt.want {
			t.Errorf("%q.Enabled(%v) = %v, want %v", tt.mode, tt.isTTY, got, tt.want)
		}
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestColorNever_ClearsStyles(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ColorNever.Enabled(true))

	if printer.IsTTY() {
		t.Error("printer should report non-TTY when color=never")
	}

	empty := lipgloss.NewStyle()
	if printer.styles.Error.GetForeground() != empty.GetForeground() {
		t.Error("Error style should have no foreground color when color=never")
	}

	printer.Error(NewInputError("test error"))
	if containsANSI(buf.String()) {
		t.Errorf("--color never should produce no ANSI codes, got: %q", buf.String())
	}
}

func TestColorAlways_KeepsStyles(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ColorAlways.Enabled(false))

	if !printer.IsTTY() {
		t.Error("printer should report TTY when color=always")
	}

	empty := lipgloss.NewStyle()
	if printer.styles.Error.GetForeground() == empty.GetForeground() {
		t.Error("Error style should have foreground color when color=always")
	}
}

// containsANSI checks if a string contains ANSI escape sequences.
func containsANSI(s string) bool {
	for i := range len(s) - 1 {
		if s[i] == '\033' && s[i+1] == '[' {
			return true
		}
	}
	return false
}
