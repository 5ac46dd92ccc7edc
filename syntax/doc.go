// Package syntax turns Noa source text into a lossless, error-tolerant
// syntax tree.
//
// # Overview
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│    Lexer    │────▶│   Parser    │
//	│   (text)    │     │  (tokens)   │     │   (green)   │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │  Partial    │     │  SyntaxNode │
//	                    │ diagnostics │     │    (red)    │
//	                    └─────────────┘     └─────────────┘
//
// # Green and red trees
//
// The parser builds a green tree: immutable nodes that know their kind,
// their children and their width, and nothing about where they occur.
// Tokens are the leaves. Every token owns the trivia (whitespace, comments,
// tokens discarded during recovery) in front of it, so concatenating the
// full text of all tokens, end of file included, reproduces the source
// byte for byte:
//
//	tree, _ := syntax.Parse(ctx, source.New("main.noa", text))
//	tree.Text() == text // always
//
// Positions come from the red tree, a view built on demand:
//
//	root := tree.Syntax()
//	tok, _ := root.TokenAt(offset, syntax.OwningToken)
//	tok.Span() // absolute byte offsets
//
// A red node's start is its parent's start plus the widths of the slots
// before it. Red nodes cache their children behind a sync.Once and may be
// shared between goroutines.
//
// # Error tolerance
//
// Parse never fails on malformed input. Missing tokens are replaced by
// zero-width TokenError placeholders, and tokens that cannot appear where
// they are found become trivia of the next token. Every problem is reported
// as a diagnostic with a stable code (see package diagnostic).
//
// # Diagnostics
//
// Diagnostics are attached to green elements by identity and store their
// position relative to the element they are attached to (see
// PartialDiagnostic). Tree.Diagnostics resolves them once the whole tree
// exists.
//
// # Cancellation
//
// Lex, Parse and ParseExpression poll their context while scanning and
// parsing. A cancelled parse returns the context error and no tree.
package syntax
