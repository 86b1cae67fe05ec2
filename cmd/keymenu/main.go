// Keymenu - a paged, key-driven selection menu for the terminal
package main

import (
	"io"
	"os"

	"github.com/johnconnor-sec/keymenu/internal/errors"
	"github.com/johnconnor-sec/keymenu/internal/output"
	"github.com/johnconnor-sec/keymenu/internal/terminal"
)

// Build information - set by linker flags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// exitInputClosed follows the shell convention for an interrupted command.
const exitInputClosed = 130

func main() {
	os.Exit(newApp(os.Stdin, os.Stdout, os.Stderr).execute(os.Args[1:]))
}

// app carries the streams and flag values shared by every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// interactive reports whether a user terminal is available; it picks
	// the surface in ui mode auto.
	interactive func() bool

	opts options
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		interactive: func() bool { return terminal.IsTerminal(os.Stderr) },
	}
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(args []string) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return a.handleError(err)
	}
	return 0
}

func (a *app) handleError(err error) int {
	if errors.IsType(err, errors.InputClosed) {
		return exitInputClosed
	}
	output.NewFormatter(a.stderr).Failure(err)
	return 1
}
