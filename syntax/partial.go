package syntax

import (
	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/source"
)

// PartialDiagnostic is a diagnostic positioned relative to the green element
// it is attached to. Offset is measured backward from the anchor's full
// start, so a span that begins after the anchor start has a negative offset.
type PartialDiagnostic struct {
	Template diagnostic.Template
	Args     []any
	Offset   int
	Width    int
}

// Resolve places the diagnostic given the absolute full start of its anchor.
func (p PartialDiagnostic) Resolve(anchorStart int, sourceName string) diagnostic.Diagnostic {
	start := anchorStart - p.Offset
	return diagnostic.Diagnostic{
		Template: p.Template,
		Message:  p.Template.Message(p.Args...),
		Location: source.Location{
			SourceName: sourceName,
			Span:       source.NewSpan(start, p.Width),
		},
	}
}

// Reanchor moves the diagnostic to an anchor whose full start differs from
// the current one. delta is added to the offset: attaching W bytes of
// trivia in front of the anchor is a delta of -W.
func (p PartialDiagnostic) Reanchor(delta int) PartialDiagnostic {
	p.Offset += delta
	return p
}

// coveringText returns a partial that spans g's text, excluding its leading
// trivia, when anchored to g itself.
func coveringText(g Green, tmpl diagnostic.Template, args ...any) PartialDiagnostic {
	lead := LeadingTriviaWidth(g)
	return PartialDiagnostic{
		Template: tmpl,
		Args:     args,
		Offset:   -lead,
		Width:    g.Width() - lead,
	}
}

// diagnosticTable maps green elements, by identity, to their diagnostics.
type diagnosticTable map[Green][]PartialDiagnostic

func (t diagnosticTable) add(anchor Green, p PartialDiagnostic) {
	t[anchor] = append(t[anchor], p)
}

// resolve walks root and places every attached diagnostic. The result is
// sorted for display.
func (t diagnosticTable) resolve(root Green, sourceName string) []diagnostic.Diagnostic {
	if len(t) == 0 {
		return nil
	}
	var out []diagnostic.Diagnostic
	walkGreen(root, 0, func(g Green, start int) {
		for _, p := range t[g] {
			out = append(out, p.Resolve(start, sourceName))
		}
	})
	diagnostic.Sort(out)
	return out
}
