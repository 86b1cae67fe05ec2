// Package terminal provides interactive menu surfaces for real terminals:
// a full-screen tcell surface and a raw-mode line editor.
package terminal

import (
	"os"

	"golang.org/x/term"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

// ttyPath is the controlling terminal, used when stdin carries the items.
const ttyPath = "/dev/tty"

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// OpenTTY opens the controlling terminal for reading and writing.
func OpenTTY() (*os.File, error) {
	f, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, errors.PermissionDenied, "Cannot open the controlling terminal").
			WithValue(ttyPath).
			WithSuggestion("Run keymenu from an interactive shell or use --ui line")
	}
	return f, nil
}
