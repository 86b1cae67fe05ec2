package terminal

import (
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/johnconnor-sec/keymenu/internal/errors"
)

// ScreenSurface shows menu pages on a full-screen tcell display. The page
// is drawn from the top row with the prompt line under it.
type ScreenSurface struct {
	screen tcell.Screen
	style  tcell.Style

	// Instant submits a command on the first printable keystroke, so
	// single-rune keys act without Enter. Enter alone still submits the
	// empty command.
	Instant bool

	lines  []string
	prompt string
	input  []rune
}

// NewScreen initializes the terminal screen and wraps it in a surface.
func NewScreen() (*ScreenSurface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, errors.InternalError, "Cannot create terminal screen").
			WithSuggestion("Check the TERM environment variable or use --ui line")
	}
	return NewScreenSurface(screen)
}

// NewScreenSurface initializes screen and wraps it. The surface owns the
// screen from here on; Close finalizes it.
func NewScreenSurface(screen tcell.Screen) (*ScreenSurface, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, errors.InternalError, "Cannot initialize terminal screen")
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	return &ScreenSurface{
		screen: screen,
		style:  tcell.StyleDefault,
	}, nil
}

// Write replaces the displayed page with text.
func (s *ScreenSurface) Write(text string) error {
	s.lines = strings.Split(text, "\n")
	s.input = s.input[:0]
	s.draw()
	return nil
}

// ReadLine shows prompt under the page and collects keystrokes until
// Enter. Ctrl-C, or Ctrl-D or Escape on an empty line, end the input
// with io.EOF; Escape on a non-empty line clears it.
func (s *ScreenSurface) ReadLine(prompt string) (string, error) {
	s.prompt = prompt
	s.input = s.input[:0]
	s.draw()

	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return "", io.EOF
		case *tcell.EventResize:
			s.screen.Sync()
			s.draw()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				return string(s.input), nil
			case tcell.KeyCtrlC:
				return "", io.EOF
			case tcell.KeyCtrlD:
				if len(s.input) == 0 {
					return "", io.EOF
				}
			case tcell.KeyEscape:
				if len(s.input) == 0 {
					return "", io.EOF
				}
				s.input = s.input[:0]
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(s.input) > 0 {
					s.input = s.input[:len(s.input)-1]
				}
			case tcell.KeyRune:
				s.input = append(s.input, ev.Rune())
				if s.Instant {
					return string(s.input), nil
				}
			}
			s.draw()
		}
	}
}

// Close restores the terminal.
func (s *ScreenSurface) Close() error {
	s.screen.Fini()
	return nil
}

func (s *ScreenSurface) draw() {
	s.screen.Clear()
	_, height := s.screen.Size()

	row := 0
	for _, line := range s.lines {
		if row >= height-1 {
			break
		}
		s.putStr(0, row, line)
		row++
	}

	x := s.putStr(0, row, s.prompt)
	x += s.putStr(x, row, string(s.input))
	s.screen.ShowCursor(x, row)
	s.screen.Show()
}

// putStr draws str from column x, clipped to the screen width, and
// returns the number of columns used.
func (s *ScreenSurface) putStr(x, y int, str string) int {
	width, _ := s.screen.Size()
	col := x
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		s.screen.SetContent(col, y, r, nil, s.style)
		col += w
	}
	return col - x
}
