package syntax

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/source"
)

// TokenList is the result of lexing one source.
type TokenList struct {
	source *source.Source
	tokens []*Token
	diags  diagnosticTable
}

// Tokens returns the tokens in document order. The last token is always
// TokenEOF.
func (l *TokenList) Tokens() []*Token { return l.tokens }

func (l *TokenList) Source() *source.Source { return l.source }

// Partials returns the lexical diagnostics anchored to tok.
func (l *TokenList) Partials(tok *Token) []PartialDiagnostic {
	return l.diags[tok]
}

// Diagnostics resolves every lexical diagnostic against the token
// positions.
func (l *TokenList) Diagnostics() []diagnostic.Diagnostic {
	if len(l.diags) == 0 {
		return nil
	}
	var out []diagnostic.Diagnostic
	pos := 0
	for _, tok := range l.tokens {
		for _, p := range l.diags[tok] {
			out = append(out, p.Resolve(pos, l.source.Name()))
		}
		pos += tok.Width()
	}
	diagnostic.Sort(out)
	return out
}

// Lex splits src into tokens. Lexing never fails on malformed input; the
// only error is the cancellation of ctx.
func Lex(ctx context.Context, src *source.Source) (list *TokenList, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			list, err = nil, ctx.Err()
		}
	}()

	l := &lexer{
		done:  ctx.Done(),
		src:   src.Text(),
		diags: diagnosticTable{},
	}
	l.run(false)
	l.emit(TokenEOF, len(l.src))
	return &TokenList{source: src, tokens: l.tokens, diags: l.diags}, nil
}

// bailout unwinds the lexer or parser when the context is cancelled.
type bailout struct{}

// pendingDiagnostic is a lexical diagnostic waiting for the next token.
type pendingDiagnostic struct {
	template diagnostic.Template
	args     []any
	start    int
	width    int
}

type lexer struct {
	done <-chan struct{}
	src  string
	pos  int

	// fullStart is where the next token's leading trivia begins.
	fullStart int
	trivia    []Trivia
	pending   []pendingDiagnostic

	tokens []*Token
	diags  diagnosticTable
}

func (l *lexer) poll() {
	select {
	case <-l.done:
		panic(bailout{})
	default:
	}
}

// emit constructs a token from the pending trivia and src[l.pos:end], then
// attaches every buffered diagnostic to it.
func (l *lexer) emit(kind TokenKind, end int) {
	tok := NewToken(kind, l.src[l.pos:end], l.trivia...)
	for _, d := range l.pending {
		l.diags.add(tok, PartialDiagnostic{
			Template: d.template,
			Args:     d.args,
			Offset:   l.fullStart - d.start,
			Width:    d.width,
		})
	}
	l.tokens = append(l.tokens, tok)
	l.trivia = nil
	l.pending = nil
	l.pos = end
	l.fullStart = end
}

func (l *lexer) addTrivia(kind TriviaKind, end int) {
	l.trivia = append(l.trivia, TextTrivia(kind, l.src[l.pos:end]))
	l.pos = end
}

func (l *lexer) report(tmpl diagnostic.Template, start, end int, args ...any) {
	l.pending = append(l.pending, pendingDiagnostic{
		template: tmpl,
		args:     args,
		start:    start,
		width:    end - start,
	})
}

// run is the top-level scan loop. Inside an interpolation it returns after
// emitting the '}' that closes it; otherwise it runs to end of input.
func (l *lexer) run(inInterpolation bool) {
	depth := 0
	for l.pos < len(l.src) {
		l.poll()

		c := l.src[l.pos]
		switch {
		case isSpace(c):
			end := l.pos
			for end < len(l.src) && isSpace(l.src[end]) {
				end++
			}
			l.addTrivia(TriviaWhitespace, end)
		case c == '/' && l.peekByte(1) == '/':
			end := l.pos
			for end < len(l.src) && l.src[end] != '\n' {
				end++
			}
			l.addTrivia(TriviaLineComment, end)
		case c == '"':
			l.lexString()
		case c == '{':
			if inInterpolation {
				depth++
			}
			l.emit(TokenLBrace, l.pos+1)
		case c == '}':
			if inInterpolation {
				if depth == 0 {
					l.emit(TokenInterpolationEnd, l.pos+1)
					return
				}
				depth--
			}
			l.emit(TokenRBrace, l.pos+1)
		default:
			if kind, n := l.symbol(); n > 0 {
				l.emit(kind, l.pos+n)
				continue
			}
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			switch {
			case isNameStart(r):
				l.lexName()
			case isDigit(c):
				l.lexNumber()
			default:
				l.report(diagnostic.UnexpectedCharacter, l.pos, l.pos+size, string(r))
				l.addTrivia(TriviaUnexpectedCharacter, l.pos+size)
			}
		}
	}
}

func (l *lexer) peekByte(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

var twoCharSymbols = map[string]TokenKind{
	"=>": TokenArrow,
	"+=": TokenPlusAssign,
	"-=": TokenMinusAssign,
	"*=": TokenStarAssign,
	"/=": TokenSlashAssign,
	"%=": TokenPercentAssign,
	"||": TokenOrOr,
	"&&": TokenAndAnd,
	"==": TokenEq,
	"!=": TokenNotEq,
	"<=": TokenLtEq,
	">=": TokenGtEq,
}

var oneCharSymbols = map[byte]TokenKind{
	'(': TokenLParen,
	')': TokenRParen,
	',': TokenComma,
	';': TokenSemicolon,
	'.': TokenDot,
	'=': TokenAssign,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'!': TokenBang,
	'<': TokenLt,
	'>': TokenGt,
}

// symbol matches the longest symbol at the cursor.
func (l *lexer) symbol() (TokenKind, int) {
	if l.pos+2 <= len(l.src) {
		if kind, ok := twoCharSymbols[l.src[l.pos:l.pos+2]]; ok {
			return kind, 2
		}
	}
	if kind, ok := oneCharSymbols[l.src[l.pos]]; ok {
		return kind, 1
	}
	return TokenError, 0
}

func (l *lexer) lexName() {
	end := l.pos
	for end < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[end:])
		if !isNamePart(r) {
			break
		}
		end += size
	}
	l.emit(LookupKeyword(l.src[l.pos:end]), end)
}

// lexNumber reads an integer with at most one fractional part. The '.'
// only belongs to the number when a digit follows it.
func (l *lexer) lexNumber() {
	end := l.pos
	for end < len(l.src) && isDigit(l.src[end]) {
		end++
	}
	if end+1 < len(l.src) && l.src[end] == '.' && isDigit(l.src[end+1]) {
		end++
		for end < len(l.src) && isDigit(l.src[end]) {
			end++
		}
	}
	l.emit(TokenNumber, end)
}

// lexString lexes a string literal starting at the opening quote. An
// interpolation re-enters run, which returns at the matching '}'.
func (l *lexer) lexString() {
	start := l.pos
	l.emit(TokenStringStart, l.pos+1)

	for {
		l.poll()

		textStart := l.pos
		for l.pos < len(l.src) {
			c := l.src[l.pos]
			if c == '"' || c == '{' {
				break
			}
			if c == '\\' {
				l.lexEscape()
				continue
			}
			l.pos++
		}
		if l.pos > textStart {
			end := l.pos
			l.pos = textStart
			l.emit(TokenStringText, end)
		}

		if l.pos >= len(l.src) {
			l.report(diagnostic.UnterminatedString, start, len(l.src))
			return
		}
		if l.src[l.pos] == '"' {
			l.emit(TokenStringEnd, l.pos+1)
			return
		}
		l.emit(TokenInterpolationStart, l.pos+1)
		l.run(true)
	}
}

func (l *lexer) lexEscape() {
	if l.pos+1 >= len(l.src) {
		l.pos++
		return
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos+1:])
	switch r {
	case 'n', 't', 'r', '0', '\\', '"', '{', '}':
	default:
		l.report(diagnostic.UnknownEscapeSequence, l.pos, l.pos+1+size, "\\"+string(r))
	}
	l.pos += 1 + size
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNamePart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
