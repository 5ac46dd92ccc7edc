package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/source"
	"github.com/dhamidi/noa/syntax"
)

// JSONEncoder writes the tree and its diagnostics as one JSON document.
// Children keep their slot positions: an absent slot is null.
type JSONEncoder struct {
	w    io.Writer
	tree *syntax.Tree
	opts options
}

func NewJSONEncoder(w io.Writer, opts ...Option) *JSONEncoder {
	return &JSONEncoder{w: w, opts: buildOptions(opts)}
}

func (e *JSONEncoder) Encode(tree *syntax.Tree) error {
	e.tree = tree
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.tree == nil {
		return nil, errNoTree
	}
	src := e.tree.Source()
	doc := jsonDocument{
		Source:      src.Name(),
		Tree:        e.nodeToJSON(src, e.tree.Syntax()),
		Diagnostics: diagnosticsToJSON(src, e.tree.Diagnostics()),
	}
	return json.MarshalIndent(doc, "", "  ")
}

type jsonDocument struct {
	Source      string           `json:"source"`
	Tree        *jsonNode        `json:"tree"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonNode struct {
	Kind     string       `json:"kind"`
	Span     jsonSpan     `json:"span"`
	Token    bool         `json:"token,omitempty"`
	Text     string       `json:"text,omitempty"`
	Missing  bool         `json:"missing,omitempty"`
	Trivia   []jsonTrivia `json:"trivia,omitempty"`
	Children []*jsonNode  `json:"children,omitempty"`
}

type jsonTrivia struct {
	Kind string   `json:"kind"`
	Span jsonSpan `json:"span"`
	Text string   `json:"text"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonDiagnostic struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file"`
	Span     jsonSpan `json:"span"`
}

func spanToJSON(src *source.Source, span source.Span) jsonSpan {
	start, end := src.Position(span.Start), src.Position(span.End)
	return jsonSpan{
		Start: jsonPosition{Offset: start.Offset, Line: start.Line, Column: start.Column},
		End:   jsonPosition{Offset: end.Offset, Line: end.Line, Column: end.Column},
	}
}

func (e *JSONEncoder) nodeToJSON(src *source.Source, n *syntax.SyntaxNode) *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind().String(),
		Span: spanToJSON(src, n.Span()),
	}

	children := n.Children()
	if len(children) > 0 {
		jn.Children = make([]*jsonNode, len(children))
		for i, child := range children {
			switch c := child.(type) {
			case *syntax.SyntaxNode:
				jn.Children[i] = e.nodeToJSON(src, c)
			case *syntax.SyntaxToken:
				jn.Children[i] = e.tokenToJSON(src, c)
			}
		}
	}
	return jn
}

func (e *JSONEncoder) tokenToJSON(src *source.Source, tok *syntax.SyntaxToken) *jsonNode {
	jn := &jsonNode{
		Kind:    tok.Kind().String(),
		Span:    spanToJSON(src, tok.Span()),
		Token:   true,
		Text:    tok.Text(),
		Missing: tok.IsMissing(),
	}
	if e.opts.trivia {
		for _, tr := range tok.LeadingTrivia() {
			jn.Trivia = append(jn.Trivia, jsonTrivia{
				Kind: tr.Kind.String(),
				Span: spanToJSON(src, tr.Span()),
				Text: tr.FullText(),
			})
		}
	}
	return jn
}

func diagnosticsToJSON(src *source.Source, diags []diagnostic.Diagnostic) []jsonDiagnostic {
	out := make([]jsonDiagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, jsonDiagnostic{
			Code:     string(d.Code()),
			Name:     d.Template.Name,
			Severity: d.Severity().String(),
			Message:  d.Message,
			File:     d.Location.SourceName,
			Span:     spanToJSON(src, d.Location.Span),
		})
	}
	return out
}
