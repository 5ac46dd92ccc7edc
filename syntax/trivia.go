package syntax

import "fmt"

type TriviaKind int

const (
	TriviaWhitespace TriviaKind = iota
	TriviaLineComment
	// TriviaUnexpectedToken holds a token that could not appear where it
	// was found.
	TriviaUnexpectedToken
	// TriviaSkippedToken holds a token discarded by the progress guard.
	TriviaSkippedToken
	TriviaUnexpectedCharacter
)

var triviaKindNames = map[TriviaKind]string{
	TriviaWhitespace:          "Whitespace",
	TriviaLineComment:         "LineComment",
	TriviaUnexpectedToken:     "UnexpectedToken",
	TriviaSkippedToken:        "SkippedToken",
	TriviaUnexpectedCharacter: "UnexpectedCharacter",
}

func (k TriviaKind) String() string {
	if name, ok := triviaKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TriviaKind(%d)", int(k))
}

// IsToken reports whether trivia of kind k wraps a whole token.
func (k TriviaKind) IsToken() bool {
	return k == TriviaUnexpectedToken || k == TriviaSkippedToken
}

// Trivia is non-grammatical text attached in front of a token. Text-based
// trivia carry Text; token trivia carry Token, whose own leading trivia is
// part of the width.
type Trivia struct {
	Kind  TriviaKind
	Text  string
	Token *Token
}

func TextTrivia(kind TriviaKind, text string) Trivia {
	return Trivia{Kind: kind, Text: text}
}

func TokenTrivia(kind TriviaKind, tok *Token) Trivia {
	return Trivia{Kind: kind, Token: tok}
}

func (t Trivia) Width() int {
	if t.Token != nil {
		return t.Token.Width()
	}
	return len(t.Text)
}

// FullText returns the exact source text the trivia covers.
func (t Trivia) FullText() string {
	if t.Token != nil {
		return t.Token.FullText()
	}
	return t.Text
}

func triviaWidth(trivia []Trivia) int {
	w := 0
	for _, t := range trivia {
		w += t.Width()
	}
	return w
}
