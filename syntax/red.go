package syntax

import (
	"sync"

	"github.com/dhamidi/noa/source"
)

// SyntaxElement is a positioned node or token.
type SyntaxElement interface {
	Green() Green
	Parent() *SyntaxNode
	// Index is the slot of the element in its parent, or -1 for a root.
	Index() int
	// FullSpan includes leading trivia; Span does not.
	FullSpan() source.Span
	Span() source.Span
}

// SyntaxNode positions a green node. Children are created on first access
// and cached; the cache is safe for concurrent readers.
type SyntaxNode struct {
	green  *Node
	start  int
	parent *SyntaxNode
	index  int

	once     sync.Once
	children []SyntaxElement
}

// NewSyntaxNode positions green at start under parent. Calling it twice
// with the same arguments yields equal, independent views.
func NewSyntaxNode(green *Node, start int, parent *SyntaxNode) *SyntaxNode {
	return &SyntaxNode{green: green, start: start, parent: parent, index: -1}
}

func (n *SyntaxNode) Green() Green         { return n.green }
func (n *SyntaxNode) Node() *Node          { return n.green }
func (n *SyntaxNode) Kind() NodeKind       { return n.green.Kind }
func (n *SyntaxNode) Parent() *SyntaxNode  { return n.parent }
func (n *SyntaxNode) Index() int           { return n.index }
func (n *SyntaxNode) FullStart() int       { return n.start }
func (n *SyntaxNode) End() int             { return n.start + n.green.width }
func (n *SyntaxNode) FullSpan() source.Span { return source.NewSpan(n.start, n.green.width) }

func (n *SyntaxNode) Span() source.Span {
	return source.Span{Start: n.start + LeadingTriviaWidth(n.green), End: n.End()}
}

// FullText returns the exact source text under n, leading trivia included.
func (n *SyntaxNode) FullText() string {
	return FullText(n.green)
}

// Text returns the source text under n without its leading trivia.
func (n *SyntaxNode) Text() string {
	return n.FullText()[LeadingTriviaWidth(n.green):]
}

// Children returns one entry per slot; empty slots are nil.
func (n *SyntaxNode) Children() []SyntaxElement {
	n.once.Do(func() {
		n.children = make([]SyntaxElement, len(n.green.slots))
		pos := n.start
		for i, slot := range n.green.slots {
			switch g := slot.(type) {
			case *Node:
				n.children[i] = &SyntaxNode{green: g, start: pos, parent: n, index: i}
			case *Token:
				n.children[i] = &SyntaxToken{green: g, start: pos, parent: n, index: i}
			default:
				continue
			}
			pos += slot.Width()
		}
	})
	return n.children
}

func (n *SyntaxNode) Child(i int) SyntaxElement {
	children := n.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// ChildNode returns slot i if it holds a node.
func (n *SyntaxNode) ChildNode(i int) *SyntaxNode {
	node, _ := n.Child(i).(*SyntaxNode)
	return node
}

// ChildToken returns slot i if it holds a token.
func (n *SyntaxNode) ChildToken(i int) *SyntaxToken {
	tok, _ := n.Child(i).(*SyntaxToken)
	return tok
}

// SyntaxToken positions a green token.
type SyntaxToken struct {
	green  *Token
	start  int
	parent *SyntaxNode
	index  int
}

func (t *SyntaxToken) Green() Green        { return t.green }
func (t *SyntaxToken) Token() *Token       { return t.green }
func (t *SyntaxToken) Kind() TokenKind     { return t.green.Kind }
func (t *SyntaxToken) Text() string        { return t.green.Text }
func (t *SyntaxToken) Parent() *SyntaxNode { return t.parent }
func (t *SyntaxToken) Index() int          { return t.index }
func (t *SyntaxToken) FullStart() int      { return t.start }
func (t *SyntaxToken) IsMissing() bool     { return t.green.IsMissing() }
func (t *SyntaxToken) IsInvisible() bool   { return t.green.IsInvisible() }

func (t *SyntaxToken) FullSpan() source.Span { return source.NewSpan(t.start, t.green.width) }

func (t *SyntaxToken) Span() source.Span {
	return source.NewSpan(t.start+t.green.LeadingWidth(), len(t.green.Text))
}

// LeadingTrivia returns the positioned leading trivia of t.
func (t *SyntaxToken) LeadingTrivia() []SyntaxTrivia {
	out := make([]SyntaxTrivia, len(t.green.Leading))
	pos := t.start
	for i, tr := range t.green.Leading {
		out[i] = SyntaxTrivia{Trivia: tr, Owner: t, span: source.NewSpan(pos, tr.Width())}
		pos += tr.Width()
	}
	return out
}

// SyntaxTrivia is one positioned unit of leading trivia.
type SyntaxTrivia struct {
	Trivia
	Owner *SyntaxToken
	span  source.Span
}

func (t SyntaxTrivia) Span() source.Span { return t.span }
