package syntax

import (
	"sync"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/source"
)

// Tree is the result of a parse: a green root, the diagnostics attached to
// its elements, and the source it was parsed from.
type Tree struct {
	source *source.Source
	root   *Node
	diags  diagnosticTable

	syntaxOnce sync.Once
	syntax     *SyntaxNode

	resolveOnce sync.Once
	resolved    []diagnostic.Diagnostic
}

func newTree(src *source.Source, root *Node, diags diagnosticTable) *Tree {
	return &Tree{source: src, root: root, diags: diags}
}

func (t *Tree) Source() *source.Source { return t.source }

// Root returns the green root, a Program or ExpressionRoot node.
func (t *Tree) Root() *Node { return t.root }

// Syntax returns the positioned root. It is built once and shared.
func (t *Tree) Syntax() *SyntaxNode {
	t.syntaxOnce.Do(func() {
		t.syntax = NewSyntaxNode(t.root, 0, nil)
	})
	return t.syntax
}

// Partials returns the diagnostics attached to g, or nil.
func (t *Tree) Partials(g Green) []PartialDiagnostic {
	return t.diags[g]
}

// Diagnostics returns every diagnostic of the parse, located and sorted by
// source name, start and length.
func (t *Tree) Diagnostics() []diagnostic.Diagnostic {
	t.resolveOnce.Do(func() {
		t.resolved = t.diags.resolve(t.root, t.source.Name())
	})
	return t.resolved
}

// Text reconstructs the source text from the tree.
func (t *Tree) Text() string {
	return FullText(t.root)
}
