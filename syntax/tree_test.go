package syntax

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fragments = []string{
	"let", "mut", "func", "if", "else", "loop", "while", "break", "continue",
	"return", "true", "nil", "x", "y", "f", "1", "2.5", `"s`, `"`, `\`, "{", "}",
	"(", ")", ",", ";", ".", "=>", "=", "+=", "||", "&&", "==", "<", "+", "-",
	"*", "/", "!", "$", "// c\n", " ", "\n", "\t",
}

// randomSources returns deterministic pseudo-random token soup.
func randomSources(n int) []string {
	rng := rand.New(rand.NewPCG(1, 2))
	out := make([]string, n)
	for i := range out {
		var sb strings.Builder
		for range rng.IntN(40) {
			sb.WriteString(fragments[rng.IntN(len(fragments))])
			if rng.IntN(3) == 0 {
				sb.WriteByte(' ')
			}
		}
		out[i] = sb.String()
	}
	return out
}

func checkWidths(t *testing.T, g Green) {
	t.Helper()
	switch v := g.(type) {
	case *Token:
		assert.Equal(t, triviaWidth(v.Leading)+len(v.Text), v.Width())
		for _, tr := range v.Leading {
			if tr.Token != nil {
				checkWidths(t, tr.Token)
			}
		}
	case *Node:
		sum := 0
		for i := range v.SlotCount() {
			if s := v.Slot(i); s != nil {
				sum += s.Width()
				checkWidths(t, s)
			}
		}
		assert.Equal(t, sum, v.Width(), v.Kind.String())
	}
}

func checkSpans(t *testing.T, n *SyntaxNode) {
	t.Helper()
	pos := n.FullStart()
	for i, child := range n.Children() {
		slot := n.Node().Slot(i)
		if slot == nil {
			assert.Nil(t, child)
			continue
		}
		require.NotNil(t, child)
		assert.Equal(t, pos, child.FullSpan().Start)
		assert.Same(t, n, child.Parent())
		assert.Equal(t, i, child.Index())
		if node, ok := child.(*SyntaxNode); ok {
			checkSpans(t, node)
		}
		pos += slot.Width()
	}
	assert.Equal(t, n.End(), pos)
}

func TestTreeProperties(t *testing.T) {
	for _, text := range randomSources(300) {
		tree := parse(t, text)
		checkWidths(t, tree.Root())
		checkSpans(t, tree.Syntax())
		assert.Equal(t, len(text), tree.Root().Width())

		for _, d := range tree.Diagnostics() {
			span := d.Location.Span
			assert.True(t, span.Start >= 0 && span.Start <= span.End && span.End <= len(text),
				"diagnostic %s out of bounds in %q", d, text)
		}

		exprTree := parseExpr(t, text)
		checkWidths(t, exprTree.Root())
	}
}

func TestDiagnosticsSorted(t *testing.T) {
	tree := parse(t, "let = ; ) f( $")
	diags := tree.Diagnostics()
	require.NotEmpty(t, diags)
	for i := 1; i < len(diags); i++ {
		prev, cur := diags[i-1].Location.Span, diags[i].Location.Span
		assert.True(t, prev.Start < cur.Start || (prev.Start == cur.Start && prev.Len() <= cur.Len()))
	}
}

func TestSyntaxIsSharedSafely(t *testing.T) {
	tree := parse(t, "func f(a, b) { let c = a + b; if c > 1 { c } else { 0 } }\nf(1, 2);")

	var wg sync.WaitGroup
	texts := make([]string, 8)
	for i := range texts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var sb strings.Builder
			var walk func(n *SyntaxNode)
			walk = func(n *SyntaxNode) {
				for _, child := range n.Children() {
					switch v := child.(type) {
					case *SyntaxNode:
						walk(v)
					case *SyntaxToken:
						sb.WriteString(v.Token().FullText())
					}
				}
			}
			walk(tree.Syntax())
			texts[i] = sb.String()
		}()
	}
	wg.Wait()

	for _, text := range texts {
		assert.Equal(t, tree.Text(), text)
	}
}

func TestGreenHelpers(t *testing.T) {
	tree := parse(t, "  let x = 1;")
	let := tree.Root().Slot(0).(*Node).Slot(0)

	assert.Equal(t, 2, LeadingTriviaWidth(let))
	assert.Equal(t, TokenLet, FirstToken(let).Kind)
	assert.Equal(t, TokenSemicolon, LastToken(let).Kind)
	assert.Equal(t, "  let x = 1;", FullText(let))
	assert.Equal(t, TokenEOF, LastToken(tree.Root()).Kind)
}

func TestNewNodeChecksSlotCount(t *testing.T) {
	assert.Panics(t, func() { NewNode(NodeBinaryExpression, NewToken(TokenPlus, "+")) })
	assert.Panics(t, func() { NewToken(TokenLet, "lett") })

	var absent *Token
	n := NewNode(NodeBreakExpression, NewToken(TokenBreak, "break"), absent)
	assert.Nil(t, n.Slot(1))
	assert.Equal(t, 5, n.Width())
}

func TestNewSyntaxNodeIsPure(t *testing.T) {
	tree := parse(t, "let a = 1;\nlet b = 2;")
	green := tree.Root()

	first := NewSyntaxNode(green, 0, nil)
	second := NewSyntaxNode(green, 0, nil)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.FullSpan(), second.FullSpan())

	a := Program{first}.Statements().At(1)
	b := Program{second}.Statements().At(1)
	assert.Equal(t, a.Span(), b.Span())
	assert.Same(t, a.Node(), b.Node())

	shifted := NewSyntaxNode(green, 100, nil)
	assert.Equal(t, a.Span().Start+100, Program{shifted}.Statements().At(1).Span().Start)
}
