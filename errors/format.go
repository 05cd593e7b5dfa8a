package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders errors for a terminal, showing the offending source line
// with a caret under the reported column.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

var (
	colorError    = []color.Attribute{color.FgHiRed, color.Bold}
	colorLocation = []color.Attribute{color.FgCyan}
	colorGutter   = []color.Attribute{color.FgHiBlack}
	colorCaret    = []color.Attribute{color.FgHiRed}
	colorHint     = []color.Attribute{color.FgHiYellow}
)

func (f *Formatter) paint(attrs []color.Attribute, s string) string {
	if !f.UseColor {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Format renders err. Errors that are not an *Error are rendered as a plain
// "error: ..." line. The source is used to quote the line the error points at.
func (f *Formatter) Format(err error, source string) string {
	var e *Error
	if !errors.As(err, &e) {
		return f.paint(colorError, "error") + ": " + err.Error() + "\n"
	}
	var b strings.Builder
	b.WriteString(f.paint(colorError, string(e.Kind)))
	b.WriteString(": ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	width := len(fmt.Sprintf("%d", e.Pos.Line))
	if width < 2 {
		width = 2
	}
	padding := strings.Repeat(" ", width)

	if e.Pos.IsValid() {
		b.WriteString(padding)
		b.WriteString(f.paint(colorLocation, "-->"))
		b.WriteString(" ")
		b.WriteString(f.paint(colorLocation, e.Pos.String()))
		b.WriteString("\n")
		if line, ok := sourceLine(source, e.Pos.Line); ok {
			b.WriteString(f.paint(colorGutter, padding+" |"))
			b.WriteString("\n")
			b.WriteString(f.paint(colorGutter, fmt.Sprintf("%*d | ", width, e.Pos.Line)))
			b.WriteString(line)
			b.WriteString("\n")
			b.WriteString(f.paint(colorGutter, padding+" | "))
			if e.Pos.Column > 1 {
				b.WriteString(strings.Repeat(" ", e.Pos.Column-1))
			}
			b.WriteString(f.paint(colorCaret, "^"))
			b.WriteString("\n")
		}
	}
	if e.Hint != "" {
		b.WriteString(f.paint(colorGutter, padding+" = "))
		b.WriteString(f.paint(colorHint, "hint: "))
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}
	return b.String()
}

func sourceLine(source string, line int) (string, bool) {
	if source == "" || line < 1 {
		return "", false
	}
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.ReplaceAll(lines[line-1], "\t", " "), true
}
