package format

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/dhamidi/noa/diagnostic"
)

// ColorMode selects when text output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

type fdWriter interface {
	Fd() uintptr
}

// Enabled reports whether output written to w should be colored. In auto
// mode only terminals get color.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Palette holds the colors of text output. A disabled palette renders
// every string unchanged.
type Palette struct {
	Node     *color.Color
	Token    *color.Color
	Text     *color.Color
	Trivia   *color.Color
	Span     *color.Color
	Missing  *color.Color
	Location *color.Color
	Code     *color.Color
	Error    *color.Color
	Warning  *color.Color
	Info     *color.Color
	Caret    *color.Color
}

func NewPalette(enabled bool) *Palette {
	c := func(attrs ...color.Attribute) *color.Color {
		col := color.New(attrs...)
		if enabled {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
		return col
	}
	return &Palette{
		Node:     c(color.FgBlue, color.Bold),
		Token:    c(color.FgCyan),
		Text:     c(color.FgGreen),
		Trivia:   c(color.Faint),
		Span:     c(color.Faint),
		Missing:  c(color.FgRed, color.Faint),
		Location: c(color.Bold),
		Code:     c(color.Faint),
		Error:    c(color.FgRed, color.Bold),
		Warning:  c(color.FgYellow, color.Bold),
		Info:     c(color.FgCyan, color.Bold),
		Caret:    c(color.FgGreen, color.Bold),
	}
}

// Severity returns the color for s.
func (p *Palette) Severity(s diagnostic.Severity) *color.Color {
	switch s {
	case diagnostic.SeverityError:
		return p.Error
	case diagnostic.SeverityWarning:
		return p.Warning
	default:
		return p.Info
	}
}
