// Package diagnostic defines the located messages produced by the Noa front end.
//
// Every message comes from a Template carrying a stable code of the form
// MAJOR-CATEGORY-NNN. Editors and the CLI filter on these codes, so existing
// codes never change meaning.
package diagnostic

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/noa/source"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Code is a diagnostic identifier such as NOA-SYN-002.
type Code string

// Category returns the middle segment of the code: LEX or SYN.
func (c Code) Category() string {
	parts := strings.Split(string(c), "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}

// Template describes one kind of diagnostic. Format is a fmt verb string
// expanded with the arguments given at report time.
type Template struct {
	Code     Code
	Name     string
	Severity Severity
	Format   string
}

// Message expands the template with args.
func (t Template) Message(args ...any) string {
	if len(args) == 0 {
		return t.Format
	}
	return fmt.Sprintf(t.Format, args...)
}

// Diagnostic is a fully located message.
type Diagnostic struct {
	Template Template
	Message  string
	Location source.Location
}

func (d Diagnostic) Code() Code         { return d.Template.Code }
func (d Diagnostic) Severity() Severity { return d.Template.Severity }

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s %s: %s", d.Location, d.Template.Severity, d.Template.Code, d.Message)
}

// Compare orders diagnostics by source name, then start offset, then length.
func Compare(a, b Diagnostic) int {
	if c := cmp.Compare(a.Location.SourceName, b.Location.SourceName); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Location.Span.Start, b.Location.Span.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.Location.Span.Len(), b.Location.Span.Len())
}

// Sort orders diagnostics for display. The sort is stable so that
// diagnostics at the same location keep their report order.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, Compare)
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity() == SeverityError {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics whose code is not in ignored.
func Filter(diags []Diagnostic, ignored []string) []Diagnostic {
	if len(ignored) == 0 {
		return diags
	}
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if slices.Contains(ignored, string(d.Code())) {
			continue
		}
		out = append(out, d)
	}
	return out
}
