package syntax

import (
	"fmt"
	"strings"
)

// Token is a green leaf. Tokens own only leading trivia; whatever follows a
// token belongs to the next one, up to and including end of file.
type Token struct {
	Kind    TokenKind
	Text    string
	Leading []Trivia

	width int
}

// NewToken builds a token. Kinds with a fixed spelling must be given that
// spelling.
func NewToken(kind TokenKind, text string, leading ...Trivia) *Token {
	if kind.HasFixedText() && text != kind.Text() {
		panic(fmt.Sprintf("syntax: token %s spelled %q, want %q", kind, text, kind.Text()))
	}
	return &Token{
		Kind:    kind,
		Text:    text,
		Leading: leading,
		width:   triviaWidth(leading) + len(text),
	}
}

// NewMissingToken builds the zero-width placeholder for an absent token.
func NewMissingToken() *Token {
	return &Token{Kind: TokenError}
}

func (t *Token) isGreen() {}

// Width is the leading trivia width plus the text width.
func (t *Token) Width() int { return t.width }

// TextWidth is the width of the token text alone.
func (t *Token) TextWidth() int { return len(t.Text) }

func (t *Token) LeadingWidth() int { return t.width - len(t.Text) }

// IsMissing reports whether t is a placeholder for an absent token.
func (t *Token) IsMissing() bool {
	return t.Kind == TokenError && t.Text == ""
}

// IsInvisible reports whether t has no text of its own: end of file and
// missing-token placeholders.
func (t *Token) IsInvisible() bool {
	return t.Kind == TokenEOF || t.IsMissing()
}

// FullText returns the leading trivia followed by the token text.
func (t *Token) FullText() string {
	var sb strings.Builder
	sb.Grow(t.width)
	writeToken(&sb, t)
	return sb.String()
}

// withLeading returns a copy of t with prefix placed in front of its
// existing leading trivia.
func (t *Token) withLeading(prefix []Trivia) *Token {
	if len(prefix) == 0 {
		return t
	}
	leading := make([]Trivia, 0, len(prefix)+len(t.Leading))
	leading = append(leading, prefix...)
	leading = append(leading, t.Leading...)
	return &Token{
		Kind:    t.Kind,
		Text:    t.Text,
		Leading: leading,
		width:   t.width + triviaWidth(prefix),
	}
}

func (t *Token) String() string {
	if t.IsMissing() {
		return "<missing>"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

func writeToken(sb *strings.Builder, t *Token) {
	for _, tr := range t.Leading {
		if tr.Token != nil {
			writeToken(sb, tr.Token)
		} else {
			sb.WriteString(tr.Text)
		}
	}
	sb.WriteString(t.Text)
}

func describeToken(t *Token) string {
	switch t.Kind {
	case TokenName:
		return "name '" + t.Text + "'"
	case TokenNumber:
		return "number " + t.Text
	case TokenStringText:
		return "string text"
	}
	return t.Kind.Describe()
}

func describeKinds(kinds []TokenKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.Describe()
	}
	switch len(parts) {
	case 0:
		return "token"
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
