package syntax

import (
	"github.com/dhamidi/noa/diagnostic"
)

// cursor is the complete mutable state of a parse. It is a plain value:
// copying it forks the parse and assigning a saved copy back discards
// everything the fork did, diagnostics included.
type cursor struct {
	index int

	// pending holds tokens folded into trivia that have not yet been
	// attached to a token. pendingDiags are relative to the start of
	// pending, which becomes the full start of the next taken token.
	pending      []Trivia
	pendingDiags []PartialDiagnostic

	// logLen is the number of entries of the parser's diagnostic log that
	// belong to this cursor's history.
	logLen int
}

type logEntry struct {
	anchor  Green
	partial PartialDiagnostic
}

// peek returns the current raw token. End of file is sticky.
func (p *parser) peek() *Token {
	return p.tokens[p.cur.index]
}

func (p *parser) peekN(n int) *Token {
	i := p.cur.index + n
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	return p.tokens[i]
}

func (p *parser) peekKind() TokenKind {
	return p.peek().Kind
}

// check reports whether the current token has one of kinds.
func (p *parser) check(kinds ...TokenKind) bool {
	k := p.peekKind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// advance consumes the current token. Pending folded trivia is placed in
// front of it, and the lexical diagnostics of the raw token move along.
func (p *parser) advance() *Token {
	raw := p.peek()
	if raw.Kind != TokenEOF {
		p.cur.index++
	}

	tok := raw
	shift := 0
	if len(p.cur.pending) > 0 {
		tok = raw.withLeading(p.cur.pending)
		shift = triviaWidth(p.cur.pending)
	}
	for _, d := range p.lexDiags[raw] {
		p.report(tok, d.Reanchor(-shift))
	}
	for _, d := range p.cur.pendingDiags {
		p.report(tok, d)
	}
	p.cur.pending = nil
	p.cur.pendingDiags = nil
	return tok
}

// match consumes the current token if it has the given kind.
func (p *parser) match(kind TokenKind) *Token {
	if p.check(kind) {
		return p.advance()
	}
	return nil
}

// expect consumes a token of the given kind or substitutes a placeholder
// and reports what was expected.
func (p *parser) expect(kind TokenKind) *Token {
	if p.check(kind) {
		return p.advance()
	}
	return p.missing(kind)
}

// missing returns a placeholder for an absent token of one of kinds.
func (p *parser) missing(kinds ...TokenKind) *Token {
	tok := NewMissingToken()
	p.report(tok, PartialDiagnostic{
		Template: diagnostic.ExpectedKinds,
		Args:     []any{describeKinds(kinds)},
	})
	return tok
}

// report appends to the diagnostic log. Entries past the cursor's logLen
// belong to an abandoned fork and are overwritten.
func (p *parser) report(anchor Green, d PartialDiagnostic) {
	p.log = append(p.log[:p.cur.logLen], logEntry{anchor: anchor, partial: d})
	p.cur.logLen++
}

func (p *parser) reportOn(g Green, tmpl diagnostic.Template, args ...any) {
	p.report(g, coveringText(g, tmpl, args...))
}

// fold moves the current token into pending trivia.
func (p *parser) fold(kind TriviaKind) {
	raw := p.peek()
	p.cur.index++
	for _, d := range p.lexDiags[raw] {
		p.report(raw, d)
	}
	p.cur.pending = append(p.cur.pending[:len(p.cur.pending):len(p.cur.pending)], TokenTrivia(kind, raw))
}

func (p *parser) pendingWidth() int {
	return triviaWidth(p.cur.pending)
}

// skipUntil folds every token up to the first one accepted by stop (or end
// of file) into unexpected-token trivia and reports the span once.
func (p *parser) skipUntil(stop func(TokenKind) bool) {
	if p.check(TokenEOF) || stop(p.peekKind()) {
		return
	}
	first := p.peek()
	start := p.pendingWidth() + first.LeadingWidth()
	for !p.check(TokenEOF) && !stop(p.peekKind()) {
		p.poll()
		p.fold(TriviaUnexpectedToken)
	}
	p.addPending(PartialDiagnostic{
		Template: diagnostic.UnexpectedToken,
		Args:     []any{describeToken(first)},
		Offset:   -start,
		Width:    p.pendingWidth() - start,
	})
}

// skipToken folds exactly one token as skipped trivia.
func (p *parser) skipToken() {
	tok := p.peek()
	start := p.pendingWidth() + tok.LeadingWidth()
	p.fold(TriviaSkippedToken)
	p.addPending(PartialDiagnostic{
		Template: diagnostic.UnexpectedToken,
		Args:     []any{describeToken(tok)},
		Offset:   -start,
		Width:    tok.TextWidth(),
	})
}

func (p *parser) addPending(d PartialDiagnostic) {
	p.cur.pendingDiags = append(p.cur.pendingDiags[:len(p.cur.pendingDiags):len(p.cur.pendingDiags)], d)
}

// mustProgress returns a guard to call at the end of a list iteration. If
// the iteration consumed nothing, the guard skips one token so the loop
// cannot spin.
func (p *parser) mustProgress() func() {
	start := p.cur.index
	return func() {
		if p.cur.index == start && !p.check(TokenEOF) {
			p.skipToken()
		}
	}
}

func (p *parser) poll() {
	select {
	case <-p.done:
		panic(bailout{})
	default:
	}
}
