package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Color represents ANSI color codes
type Color int

const (
	ColorReset Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
)

// Style represents text formatting
type Style int

const (
	StyleNormal Style = iota
	StyleBold
	StyleDim
)

// OutputLevel represents the verbosity level
type OutputLevel int

const (
	LevelQuiet OutputLevel = iota
	LevelNormal
)

// Theme defines the color scheme for different elements
type Theme struct {
	Primary Color
	Success Color
	Warning Color
	Error   Color
	Info    Color
	Border  Color
}

// DefaultTheme provides a sensible default color scheme
var DefaultTheme = Theme{
	Primary: ColorBlue,
	Success: ColorGreen,
	Warning: ColorYellow,
	Error:   ColorRed,
	Info:    ColorCyan,
	Border:  ColorMagenta,
}

// Formatter prints the human-facing messages of the command line:
// results, errors and small tables. Diagnostics go through Logger.
type Formatter struct {
	writer      io.Writer
	theme       Theme
	level       OutputLevel
	colorOutput bool
}

// NewFormatter creates a formatter writing to w. Colors are enabled when
// w is a terminal and NO_COLOR is unset.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{
		writer:      w,
		theme:       DefaultTheme,
		level:       LevelNormal,
		colorOutput: isColorTerminal(w),
	}
}

// SetLevel changes the output verbosity level
func (f *Formatter) SetLevel(level OutputLevel) *Formatter {
	f.level = level
	return f
}

// SetColorOutput enables or disables color output
func (f *Formatter) SetColorOutput(enabled bool) *Formatter {
	f.colorOutput = enabled
	return f
}

func (f *Formatter) colorize(text string, color Color, style Style) string {
	if !f.colorOutput {
		return text
	}

	var codes []string
	switch style {
	case StyleBold:
		codes = append(codes, "1")
	case StyleDim:
		codes = append(codes, "2")
	}
	if color != ColorReset {
		codes = append(codes, fmt.Sprintf("%d", 30+int(color)))
	}
	if len(codes) == 0 {
		return text
	}

	return fmt.Sprintf("\033[%sm%s\033[0m", strings.Join(codes, ";"), text)
}

// Header prints a prominent header
func (f *Formatter) Header(text string) {
	if f.level == LevelQuiet {
		return
	}

	border := strings.Repeat("═", runewidth.StringWidth(text)+4)
	fmt.Fprintln(f.writer, f.colorize(border, f.theme.Border, StyleBold))
	fmt.Fprintln(f.writer, f.colorize(fmt.Sprintf("  %s  ", text), f.theme.Primary, StyleBold))
	fmt.Fprintln(f.writer, f.colorize(border, f.theme.Border, StyleBold))
}

// Table starts a table that is printed by Table.Print.
func (f *Formatter) Table() *Table {
	return &Table{formatter: f}
}

func isColorTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Table represents a columnized table
type Table struct {
	formatter *Formatter
	headers   []string
	rows      [][]string
}

// Headers sets the table headers
func (t *Table) Headers(headers ...string) *Table {
	t.headers = headers
	return t
}

// Row adds a row to the table
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Print renders the table
func (t *Table) Print() {
	f := t.formatter
	if f.level == LevelQuiet {
		return
	}

	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	if len(t.headers) > 0 {
		headerRow := make([]string, len(t.headers))
		separators := make([]string, len(t.headers))
		for i, header := range t.headers {
			headerRow[i] = f.colorize(header, f.theme.Primary, StyleBold)
			separators[i] = strings.Repeat("─", runewidth.StringWidth(header))
		}
		fmt.Fprintln(tw, strings.Join(headerRow, "\t"))
		fmt.Fprintln(tw, strings.Join(separators, "\t"))
	}

	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	tw.Flush()
}
