package output

import (
	"fmt"
	"io"
	"os"
)

// ColorMode selects when styled output is used.
type ColorMode string

// Supported values of the --color flag.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color flag value. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return ColorMode(s), nil
	default:
		return "", NewUsageError(fmt.Sprintf("--color must be one of auto, always, never (got %q)", s))
	}
}

// Enabled reports whether styles should be applied for a writer whose
// terminal status is isTTY.
func (m ColorMode) Enabled(isTTY bool) bool {
	switch m {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return isTTY
	}
}

// IsTTY checks if a writer is a terminal.
// Returns true only for os.File that is a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
