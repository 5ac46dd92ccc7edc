package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/source"
)

// DiagnosticRenderer writes diagnostics in compiler style:
//
//	main.noa:1:10: error NOA-SYN-002: expected ';'
//	   1 | let x = 1
//	     |          ^
//
// In JSON mode it writes one JSON object per diagnostic and line instead.
type DiagnosticRenderer struct {
	w        io.Writer
	palette  *Palette
	json     bool
	errors   int
	warnings int
}

func NewDiagnosticRenderer(w io.Writer, palette *Palette) *DiagnosticRenderer {
	if palette == nil {
		palette = NewPalette(false)
	}
	return &DiagnosticRenderer{w: w, palette: palette}
}

func NewDiagnosticJSONRenderer(w io.Writer) *DiagnosticRenderer {
	return &DiagnosticRenderer{w: w, palette: NewPalette(false), json: true}
}

// Render writes diags, which must all belong to src.
func (r *DiagnosticRenderer) Render(src *source.Source, diags []diagnostic.Diagnostic) error {
	for _, d := range diags {
		switch d.Severity() {
		case diagnostic.SeverityError:
			r.errors++
		case diagnostic.SeverityWarning:
			r.warnings++
		}
	}
	if r.json {
		enc := json.NewEncoder(r.w)
		for _, rec := range diagnosticsToJSON(src, diags) {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	}

	var sb strings.Builder
	for _, d := range diags {
		r.writeDiagnostic(&sb, src, d)
	}
	_, err := io.WriteString(r.w, sb.String())
	return err
}

func (r *DiagnosticRenderer) writeDiagnostic(sb *strings.Builder, src *source.Source, d diagnostic.Diagnostic) {
	p := r.palette
	pos := src.Position(d.Location.Span.Start)
	fmt.Fprintf(sb, "%s %s %s %s\n",
		p.Location.Sprintf("%s:%d:%d:", d.Location.SourceName, pos.Line, pos.Column),
		p.Severity(d.Severity()).Sprint(d.Severity().String()),
		p.Code.Sprintf("%s:", d.Code()),
		d.Message)

	line := src.Line(pos.Line)
	gutter := fmt.Sprintf("%4d | ", pos.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	fmt.Fprintf(sb, "%s%s\n", p.Code.Sprint(gutter), line)

	prefix := line[:min(pos.Column-1, len(line))]
	rest := line[len(prefix):]
	width := utf8.RuneCountInString(rest[:min(d.Location.Span.Len(), len(rest))])
	fmt.Fprintf(sb, "%s%s%s\n", p.Code.Sprint(blank), padding(prefix), p.Caret.Sprint(strings.Repeat("^", max(width, 1))))
}

// padding blanks out prefix while keeping its tabs so the caret lines up.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// Counts returns the number of errors and warnings rendered so far.
func (r *DiagnosticRenderer) Counts() (errors, warnings int) {
	return r.errors, r.warnings
}

// WriteSummary writes a one-line tally of the rendered diagnostics. JSON
// renderers write nothing.
func (r *DiagnosticRenderer) WriteSummary(files int) error {
	if r.json {
		return nil
	}
	_, err := fmt.Fprintf(r.w, "%s, %s in %s\n",
		plural(r.errors, "error"), plural(r.warnings, "warning"), plural(files, "file"))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
