package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/noa/source"
	"github.com/dhamidi/noa/syntax"
)

// TokenEncoder lists tokens one per line in source order. Encode lists the
// tokens of a parsed tree, including the ones the parser inserted;
// EncodeTokens lists the raw lexer output.
type TokenEncoder struct {
	w      io.Writer
	tree   *syntax.Tree
	tokens *syntax.TokenList
	opts   options
}

func NewTokenEncoder(w io.Writer, opts ...Option) *TokenEncoder {
	return &TokenEncoder{w: w, opts: buildOptions(opts)}
}

func (e *TokenEncoder) Encode(tree *syntax.Tree) error {
	e.tree, e.tokens = tree, nil
	return e.write()
}

func (e *TokenEncoder) EncodeTokens(tokens *syntax.TokenList) error {
	e.tree, e.tokens = nil, tokens
	return e.write()
}

func (e *TokenEncoder) write() error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	switch {
	case e.tree != nil:
		for tok := e.tree.Syntax().FirstToken(true); tok != nil; tok = tok.NextToken(true) {
			if e.opts.trivia {
				for _, tr := range tok.LeadingTrivia() {
					sb.WriteString("  ")
					writeTrivia(&sb, e.opts.palette, tr)
				}
			}
			writeTokenLine(&sb, e.opts.palette, tok.Kind(), tok.Text(), tok.Span(), tok.IsMissing())
		}
	case e.tokens != nil:
		pos := 0
		for _, tok := range e.tokens.Tokens() {
			e.writeRaw(&sb, tok, pos)
			pos += tok.Width()
		}
	default:
		return nil, errNoTree
	}
	return []byte(sb.String()), nil
}

func (e *TokenEncoder) writeRaw(sb *strings.Builder, tok *syntax.Token, start int) {
	p := e.opts.palette
	if e.opts.trivia {
		pos := start
		for _, tr := range tok.Leading {
			fmt.Fprintf(sb, "  %s %s %s\n",
				p.Trivia.Sprint("~ "+tr.Kind.String()),
				p.Span.Sprint(source.NewSpan(pos, tr.Width())),
				p.Trivia.Sprint(strconv.Quote(tr.FullText())))
			pos += tr.Width()
		}
	}
	span := source.NewSpan(start+tok.LeadingWidth(), tok.TextWidth())
	writeTokenLine(sb, p, tok.Kind, tok.Text, span, tok.IsMissing())
}
