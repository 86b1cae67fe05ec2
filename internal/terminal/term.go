package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

// TermSurface reads commands through the x/term line editor on a raw
// terminal.
type TermSurface struct {
	terminal *term.Terminal
	fd       int
	state    *term.State
}

type readWriter struct {
	io.Reader
	io.Writer
}

// NewTermSurface puts in into raw mode and edits lines on it, echoing to
// out. Close restores the previous terminal state.
func NewTermSurface(in *os.File, out io.Writer) (*TermSurface, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New(errors.InternalError, "Input is not a terminal").
			WithValue(in.Name()).
			WithSuggestion("Use --ui line for piped input")
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, errors.InternalError, "Cannot switch the terminal to raw mode")
	}

	s := newTermSurface(readWriter{Reader: in, Writer: out})
	s.fd = fd
	s.state = state
	if width, height, err := term.GetSize(fd); err == nil {
		_ = s.terminal.SetSize(width, height)
	}
	return s, nil
}

func newTermSurface(rw io.ReadWriter) *TermSurface {
	return &TermSurface{
		terminal: term.NewTerminal(rw, ""),
		fd:       -1,
	}
}

// Write prints text followed by a newline.
func (s *TermSurface) Write(text string) error {
	_, err := s.terminal.Write([]byte(text + "\n"))
	return err
}

// ReadLine shows prompt and returns the edited line. Ctrl-D on an empty
// line and Ctrl-C return io.EOF.
func (s *TermSurface) ReadLine(prompt string) (string, error) {
	s.terminal.SetPrompt(prompt)
	line, err := s.terminal.ReadLine()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close restores the terminal state saved by NewTermSurface.
func (s *TermSurface) Close() error {
	if s.state == nil {
		return nil
	}
	err := term.Restore(s.fd, s.state)
	s.state = nil
	return err
}
