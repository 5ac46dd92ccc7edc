package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/source"
)

func TestPartialResolve(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		width  int
		anchor int
		span   source.Span
	}{
		{"before anchor", 4, 4, 10, source.Span{Start: 6, End: 10}},
		{"at anchor", 0, 3, 10, source.Span{Start: 10, End: 13}},
		{"inside anchor", -2, 1, 10, source.Span{Start: 12, End: 13}},
		{"zero width", 0, 0, 7, source.Span{Start: 7, End: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PartialDiagnostic{Template: diagnostic.ExpectedKinds, Args: []any{"';'"}, Offset: tt.offset, Width: tt.width}
			d := p.Resolve(tt.anchor, "r.noa")
			assert.Equal(t, tt.span, d.Location.Span)
			assert.Equal(t, "r.noa", d.Location.SourceName)
			assert.Equal(t, "expected ';'", d.Message)
		})
	}
}

func TestPartialReanchor(t *testing.T) {
	p := PartialDiagnostic{Template: diagnostic.UnexpectedCharacter, Offset: -3, Width: 2}
	const anchor = 20

	// Prepending w bytes of trivia moves the anchor start back by w.
	for _, w := range []int{0, 1, 5, 17} {
		moved := p.Reanchor(-w)
		assert.Equal(t,
			p.Resolve(anchor, "x").Location,
			moved.Resolve(anchor-w, "x").Location)
	}

	assert.Equal(t, -3, p.Offset, "Reanchor must not modify the receiver")
	assert.Equal(t, 4, p.Reanchor(3).Reanchor(4).Offset)
}

func TestLexicalDiagnosticSurvivesFolding(t *testing.T) {
	// "$" is lexed as trivia of ")"; the parser then folds ")" into the
	// leading trivia of "let", so the diagnostic ends up nested two levels
	// deep and must still resolve to the "$".
	text := "let a = 1;\n) $ ) let b = 2;"
	tree := parse(t, text)

	var found []diagnostic.Diagnostic
	for _, d := range tree.Diagnostics() {
		if d.Code() == diagnostic.UnexpectedCharacter.Code {
			found = append(found, d)
		}
	}
	require.Len(t, found, 1)
	start := len("let a = 1;\n) ")
	assert.Equal(t, source.Span{Start: start, End: start + 1}, found[0].Location.Span)
}

func TestLexicalDiagnosticMovesWithPendingTrivia(t *testing.T) {
	// The skipped ")" is prepended to "x", whose own "@" diagnostic must be
	// re-anchored by the width of the prepended trivia.
	text := "f(); ) @x;"
	tree := parse(t, text)

	diags := tree.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, diagnostic.UnexpectedToken.Code, diags[0].Code())
	assert.Equal(t, source.Span{Start: 5, End: 6}, diags[0].Location.Span)
	assert.Equal(t, diagnostic.UnexpectedCharacter.Code, diags[1].Code())
	assert.Equal(t, source.Span{Start: 7, End: 8}, diags[1].Location.Span)
	assert.Equal(t, diagnostic.InvalidExpressionStatement.Code, diags[2].Code())
}

func TestTreePartials(t *testing.T) {
	tree := parseExpr(t, "(1, 2)")
	tuple := rootExpression(tree)
	partials := tree.Partials(tuple.Green())
	require.Len(t, partials, 1)
	assert.Equal(t, diagnostic.TuplesUnsupported, partials[0].Template)
	assert.Empty(t, tree.Partials(tuple.ChildToken(0).Green()))
}
