package syntax

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/noa/source"
)

// let0 x4 =6 f8 (9 a10 ,11 b13 )14 ;15 EOF16
const navSource = "let x = f(a, b);"

func tokenAt(t *testing.T, root *SyntaxNode, offset int) *SyntaxToken {
	t.Helper()
	tok, _ := root.TokenAt(offset, OwningToken)
	require.NotNil(t, tok, "no token at %d", offset)
	return tok
}

func TestFirstAndLastToken(t *testing.T) {
	root := parse(t, navSource).Syntax()

	assert.Equal(t, "let", root.FirstToken(false).Text())
	assert.Equal(t, ";", root.LastToken(false).Text())
	assert.Equal(t, TokenEOF, root.LastToken(true).Kind())

	missing := parse(t, "let x = 1").Syntax()
	assert.Equal(t, "1", missing.LastToken(false).Text())
	assert.Equal(t, TokenEOF, missing.LastToken(true).Kind())

	let := LetDeclaration{Program{missing}.Statements().At(0)}
	assert.True(t, let.LastToken(true).IsMissing())
	assert.Equal(t, "1", let.LastToken(false).Text())
}

func TestPreviousAndNextToken(t *testing.T) {
	root := parse(t, navSource).Syntax()

	b := tokenAt(t, root, 13)
	require.Equal(t, "b", b.Text())
	assert.Equal(t, ",", b.PreviousToken(false).Text())
	assert.Equal(t, ")", b.NextToken(false).Text())

	lparen := tokenAt(t, root, 9)
	assert.Equal(t, "f", lparen.PreviousToken(false).Text())

	let := root.FirstToken(false)
	assert.Nil(t, let.PreviousToken(true))

	semi := root.LastToken(false)
	assert.Nil(t, semi.NextToken(false))
	assert.Equal(t, TokenEOF, semi.NextToken(true).Kind())

	var walked []string
	for tok := root.FirstToken(false); tok != nil; tok = tok.NextToken(false) {
		walked = append(walked, tok.Text())
	}
	assert.Equal(t, []string{"let", "x", "=", "f", "(", "a", ",", "b", ")", ";"}, walked)

	var backwards []string
	for tok := root.LastToken(false); tok != nil; tok = tok.PreviousToken(false) {
		backwards = append(backwards, tok.Text())
	}
	slices.Reverse(backwards)
	assert.Equal(t, walked, backwards)
}

func TestPreviousTokenSkipsInvisible(t *testing.T) {
	root := parse(t, "a()\nb();").Syntax()
	b := tokenAt(t, root, 4)
	require.Equal(t, "b", b.Text())

	assert.True(t, b.PreviousToken(true).IsMissing())
	assert.Equal(t, ")", b.PreviousToken(false).Text())
}

func TestAncestors(t *testing.T) {
	root := parse(t, navSource).Syntax()
	b := tokenAt(t, root, 13)

	var kinds []NodeKind
	for n := range b.Ancestors() {
		kinds = append(kinds, n.Kind())
	}
	assert.Equal(t, []NodeKind{
		NodeNameExpression,
		NodeSeparatedList,
		NodeArgumentList,
		NodeCallExpression,
		NodeLetDeclaration,
		NodeList,
		NodeProgram,
	}, kinds)

	call := b.FirstAncestor(NodeCallExpression)
	require.NotNil(t, call)
	assert.Equal(t, source.Span{Start: 8, End: 15}, call.Span())
	assert.Equal(t, NodeLetDeclaration, b.FirstAncestor(NodeLetDeclaration, NodeFuncDeclaration).Kind())
	assert.Nil(t, b.FirstAncestor(NodeFuncDeclaration))
	assert.Equal(t, NodeLetDeclaration, call.FirstAncestor(NodeLetDeclaration).Kind())
}

func TestTokenAt(t *testing.T) {
	root := parse(t, navSource).Syntax()

	tests := []struct {
		offset int
		text   string
		kind   TokenKind
	}{
		{0, "let", TokenLet},
		{2, "let", TokenLet},
		{3, "x", TokenName},
		{8, "f", TokenName},
		{12, "b", TokenName},
		{13, "b", TokenName},
		{15, ";", TokenSemicolon},
		{16, "", TokenEOF},
	}
	for _, tt := range tests {
		tok := tokenAt(t, root, tt.offset)
		assert.Equal(t, tt.text, tok.Text(), "offset %d", tt.offset)
		assert.Equal(t, tt.kind, tok.Kind(), "offset %d", tt.offset)
	}

	tok, tr := root.TokenAt(17, OwningToken)
	assert.Nil(t, tok)
	assert.Nil(t, tr)
	tok, _ = root.TokenAt(-1, OwningToken)
	assert.Nil(t, tok)
}

func TestTokenAtTriviaPolicy(t *testing.T) {
	root := parse(t, "x; // note\ny;").Syntax()
	offset := len("x; // n")

	tok, tr := root.TokenAt(offset, OwningToken)
	require.NotNil(t, tok)
	assert.Equal(t, "y", tok.Text())
	assert.Nil(t, tr)

	tok, tr = root.TokenAt(offset, TriviaUnit)
	require.NotNil(t, tok)
	require.NotNil(t, tr)
	assert.Equal(t, "y", tok.Text())
	assert.Equal(t, TriviaLineComment, tr.Kind)
	assert.Equal(t, source.Span{Start: 3, End: 10}, tr.Span())
	assert.Same(t, tok, tr.Owner)

	tok, tr = root.TokenAt(len("x; // note\n"), TriviaUnit)
	assert.Equal(t, "y", tok.Text())
	assert.Nil(t, tr)
}
