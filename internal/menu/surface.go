package menu

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// Surface is where a Menu shows pages and reads commands.
type Surface interface {
	// Write displays a rendered page.
	Write(text string) error
	// ReadLine shows prompt and returns one line of input without its
	// line terminator. It returns io.EOF, and no line, once the input
	// has ended; an empty line is returned as "".
	ReadLine(prompt string) (string, error)
}

// LineSurface exchanges plain text lines over an io.Reader and io.Writer.
// It serves piped input and in-memory transcripts.
type LineSurface struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLineSurface creates a surface reading commands from r and writing
// pages and prompts to w.
func NewLineSurface(r io.Reader, w io.Writer) *LineSurface {
	return &LineSurface{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Write prints text followed by a newline.
func (s *LineSurface) Write(text string) error {
	_, err := fmt.Fprintln(s.writer, text)
	return err
}

// ReadLine prints prompt and reads up to the next newline. A final line
// without a newline is still returned before io.EOF.
func (s *LineSurface) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		if _, err := fmt.Fprint(s.writer, prompt); err != nil {
			return "", err
		}
	}

	line, err := s.reader.ReadString('\n')
	if err != nil {
		if stderrors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
