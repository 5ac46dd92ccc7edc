package format

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/noa/syntax"
)

var errNoTree = errors.New("format: nothing to encode")

// TreeEncoder writes the positioned tree as an indented outline, one
// element per line. Nodes show their kind and span; tokens add their text.
// Absent slots are skipped and missing tokens are printed as Missing.
type TreeEncoder struct {
	w    io.Writer
	tree *syntax.Tree
	opts options
}

func NewTreeEncoder(w io.Writer, opts ...Option) *TreeEncoder {
	return &TreeEncoder{w: w, opts: buildOptions(opts)}
}

func (e *TreeEncoder) Encode(tree *syntax.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errNoTree
	}
	var sb strings.Builder
	e.writeNode(&sb, e.tree.Syntax(), 0)
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, n *syntax.SyntaxNode, depth int) {
	p := e.opts.palette
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s %s\n", indent, p.Node.Sprint(n.Kind()), p.Span.Sprint(n.Span()))

	for _, child := range n.Children() {
		switch c := child.(type) {
		case *syntax.SyntaxNode:
			e.writeNode(sb, c, depth+1)
		case *syntax.SyntaxToken:
			e.writeToken(sb, c, depth+1)
		}
	}
}

func (e *TreeEncoder) writeToken(sb *strings.Builder, tok *syntax.SyntaxToken, depth int) {
	indent := strings.Repeat("  ", depth)
	if e.opts.trivia {
		for _, tr := range tok.LeadingTrivia() {
			sb.WriteString(indent)
			writeTrivia(sb, e.opts.palette, tr)
		}
	}
	sb.WriteString(indent)
	writeTokenLine(sb, e.opts.palette, tok.Kind(), tok.Text(), tok.Span(), tok.IsMissing())
}

// writeTokenLine writes "Kind [s,e) "text"", or "Missing [s,e)" for a
// token the parser inserted.
func writeTokenLine(sb *strings.Builder, p *Palette, kind syntax.TokenKind, text string, span fmt.Stringer, missing bool) {
	if missing {
		fmt.Fprintf(sb, "%s %s\n", p.Missing.Sprint("Missing"), p.Span.Sprint(span))
		return
	}
	fmt.Fprintf(sb, "%s %s", p.Token.Sprint(kind), p.Span.Sprint(span))
	if text != "" {
		fmt.Fprintf(sb, " %s", p.Text.Sprint(strconv.Quote(text)))
	}
	sb.WriteByte('\n')
}

func writeTrivia(sb *strings.Builder, p *Palette, tr syntax.SyntaxTrivia) {
	fmt.Fprintf(sb, "%s %s %s\n",
		p.Trivia.Sprint("~ "+tr.Kind.String()),
		p.Span.Sprint(tr.Span()),
		p.Trivia.Sprint(strconv.Quote(tr.FullText())))
}
