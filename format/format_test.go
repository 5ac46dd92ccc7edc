package format

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/source"
	"github.com/dhamidi/noa/syntax"
)

func parse(t *testing.T, text string) *syntax.Tree {
	t.Helper()
	tree, err := syntax.Parse(context.Background(), source.New("test.noa", text))
	require.NoError(t, err)
	return tree
}

func TestTreeEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(parse(t, "let x = 1;")))

	expected := `Program [0,10)
  List [0,10)
    LetDeclaration [0,10)
      Let [0,3) "let"
      Name [4,5) "x"
      Assign [6,7) "="
      LiteralExpression [8,9)
        Number [8,9) "1"
      Semicolon [9,10) ";"
  EOF [10,10)
`
	assert.Equal(t, expected, buf.String())
}

func TestTreeEncoderTrivia(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTreeEncoder(&buf, WithTrivia())
	require.NoError(t, enc.Encode(parse(t, "a; // c\nb;")))

	expected := `Program [0,10)
  List [0,10)
    ExpressionStatement [0,2)
      NameExpression [0,1)
        Name [0,1) "a"
      Semicolon [1,2) ";"
    ExpressionStatement [8,10)
      NameExpression [8,9)
        ~ Whitespace [2,3) " "
        ~ LineComment [3,7) "// c"
        ~ Whitespace [7,8) "\n"
        Name [8,9) "b"
      Semicolon [9,10) ";"
  EOF [10,10)
`
	assert.Equal(t, expected, buf.String())
}

func TestTreeEncoderMissingToken(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(parse(t, "a()\nb();")))
	assert.Contains(t, buf.String(), "      Missing [3,3)\n")
}

func TestEncoderWithoutTree(t *testing.T) {
	_, err := NewTreeEncoder(&bytes.Buffer{}).MarshalText()
	assert.Error(t, err)
	_, err = NewJSONEncoder(&bytes.Buffer{}).MarshalText()
	assert.Error(t, err)
	_, err = NewTokenEncoder(&bytes.Buffer{}).MarshalText()
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		name    string
		want    any
		wantErr bool
	}{
		{"text", &TreeEncoder{}, false},
		{"", &TreeEncoder{}, false},
		{"json", &JSONEncoder{}, false},
		{"xml", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := New(tt.name, &buf)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, enc)
		})
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf, WithTrivia()).Encode(parse(t, "x\n  + 1;")))

	var doc jsonDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "test.noa", doc.Source)
	assert.Equal(t, "Program", doc.Tree.Kind)
	require.Len(t, doc.Tree.Children, 2)

	list := doc.Tree.Children[0]
	require.Len(t, list.Children, 1)
	stmt := list.Children[0]
	assert.Equal(t, "ExpressionStatement", stmt.Kind)
	binary := stmt.Children[0]
	require.Equal(t, "BinaryExpression", binary.Kind)
	require.Len(t, binary.Children, 3)

	plus := binary.Children[1]
	assert.True(t, plus.Token)
	assert.Equal(t, "Plus", plus.Kind)
	assert.Equal(t, "+", plus.Text)
	assert.Equal(t, jsonPosition{Offset: 4, Line: 2, Column: 3}, plus.Span.Start)
	require.Len(t, plus.Trivia, 1)
	assert.Equal(t, "Whitespace", plus.Trivia[0].Kind)
	assert.Equal(t, "\n  ", plus.Trivia[0].Text)

	eof := doc.Tree.Children[1]
	assert.Equal(t, "EOF", eof.Kind)

	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, string(diagnostic.InvalidExpressionStatement.Code), doc.Diagnostics[0].Code)
	assert.Equal(t, "warning", doc.Diagnostics[0].Severity)
}

func TestJSONEncoderKeepsAbsentSlots(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(parse(t, "let x = 1;")))

	var doc jsonDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	let := doc.Tree.Children[0].Children[0]
	require.Equal(t, "LetDeclaration", let.Kind)
	require.Len(t, let.Children, 6)
	assert.Nil(t, let.Children[1], "mut slot")
	assert.Equal(t, "x", let.Children[2].Text)
}

func TestTokenEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTokenEncoder(&buf).Encode(parse(t, "a()\nb();")))

	expected := `Name [0,1) "a"
LParen [1,2) "("
RParen [2,3) ")"
Missing [3,3)
Name [4,5) "b"
LParen [5,6) "("
RParen [6,7) ")"
Semicolon [7,8) ";"
EOF [8,8)
`
	assert.Equal(t, expected, buf.String())
}

func TestTokenEncoderRaw(t *testing.T) {
	list, err := syntax.Lex(context.Background(), source.New("t.noa", "x = // c\n1"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTokenEncoder(&buf, WithTrivia()).EncodeTokens(list))

	expected := `Name [0,1) "x"
  ~ Whitespace [1,2) " "
Assign [2,3) "="
  ~ Whitespace [3,4) " "
  ~ LineComment [4,8) "// c"
  ~ Whitespace [8,9) "\n"
Number [9,10) "1"
EOF [10,10)
`
	assert.Equal(t, expected, buf.String())
}

func TestDiagnosticRenderer(t *testing.T) {
	tree := parse(t, "a()\nb();")

	var buf bytes.Buffer
	r := NewDiagnosticRenderer(&buf, nil)
	require.NoError(t, r.Render(tree.Source(), tree.Diagnostics()))

	expected := "test.noa:1:4: error NOA-SYN-002: expected ';'\n" +
		"   1 | a()\n" +
		"     |    ^\n"
	assert.Equal(t, expected, buf.String())

	errs, warns := r.Counts()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 0, warns)

	buf.Reset()
	require.NoError(t, r.WriteSummary(1))
	assert.Equal(t, "1 error, 0 warnings in 1 file\n", buf.String())
}

func TestDiagnosticRendererUnderline(t *testing.T) {
	src := source.New("u.noa", "\tlet é = 1;")
	d := diagnostic.Diagnostic{
		Template: diagnostic.UnexpectedCharacter,
		Message:  "unexpected character 'é'",
		Location: source.Location{SourceName: "u.noa", Span: source.Span{Start: 5, End: 7}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewDiagnosticRenderer(&buf, nil).Render(src, []diagnostic.Diagnostic{d}))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "u.noa:1:6: error NOA-LEX-001: unexpected character 'é'", lines[0])
	assert.Equal(t, "     | \t    ^", lines[2])
}

func TestDiagnosticJSONRenderer(t *testing.T) {
	tree := parse(t, "a()\nb()")

	var buf bytes.Buffer
	r := NewDiagnosticJSONRenderer(&buf)
	require.NoError(t, r.Render(tree.Source(), tree.Diagnostics()))
	require.NoError(t, r.WriteSummary(1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(tree.Diagnostics()))
	var rec jsonDiagnostic
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "NOA-SYN-002", rec.Code)
	assert.Equal(t, "ExpectedKinds", rec.Name)
	assert.Equal(t, "test.noa", rec.File)
	assert.Equal(t, jsonPosition{Offset: 3, Line: 1, Column: 4}, rec.Span.Start)
}

func TestPalette(t *testing.T) {
	plain := NewPalette(false)
	assert.Equal(t, "x", plain.Error.Sprint("x"))

	colored := NewPalette(true)
	assert.NotEqual(t, "x", colored.Error.Sprint("x"))
	assert.Contains(t, colored.Error.Sprint("x"), "x")
	assert.Same(t, colored.Warning, colored.Severity(diagnostic.SeverityWarning))
}

func TestColorMode(t *testing.T) {
	for _, s := range []string{"auto", "always", "never", ""} {
		_, err := ParseColorMode(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)

	var buf bytes.Buffer
	assert.True(t, ColorAlways.Enabled(&buf))
	assert.False(t, ColorNever.Enabled(&buf))
	assert.False(t, ColorAuto.Enabled(&buf))
}
