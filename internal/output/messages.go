package output

import (
	"fmt"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

// Success prints a success message
func (f *Formatter) Success(format string, args ...any) {
	if f.level == LevelQuiet {
		return
	}
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(f.writer, f.colorize("✓ "+message, f.theme.Success, StyleBold))
}

// Error prints an error message. Errors are shown at every level.
func (f *Formatter) Error(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(f.writer, f.colorize("✗ "+message, f.theme.Error, StyleBold))
}

// Warning prints a warning message
func (f *Formatter) Warning(format string, args ...any) {
	if f.level == LevelQuiet {
		return
	}
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(f.writer, f.colorize("⚠ "+message, f.theme.Warning, StyleBold))
}

// Info prints an info message
func (f *Formatter) Info(format string, args ...any) {
	if f.level == LevelQuiet {
		return
	}
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(f.writer, f.colorize("ℹ "+message, f.theme.Info, StyleNormal))
}

// Failure prints err with its details and suggestions when it is a
// KeymenuError, and as an unexpected error otherwise.
func (f *Formatter) Failure(err error) {
	if kerr, ok := errors.As(err); ok {
		f.Error("%s", kerr.Error())
		return
	}
	f.Error("Unexpected error: %v", err)
}
