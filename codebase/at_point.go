package codebase

import (
	"fmt"
	"strings"

	"github.com/dhamidi/noa/source"
	"github.com/dhamidi/noa/syntax"
)

type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
)

// Symbol is a name introduced by a let declaration, a function
// declaration or a parameter list.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Detail   string
	Span     source.Span
	NameSpan source.Span
	Children []Symbol
}

// Symbols returns the declarations of f in source order. A function's
// children are the declarations at the top level of its body.
func Symbols(f *File) []Symbol {
	root := f.Tree.Syntax()
	if root.Kind() != syntax.NodeProgram {
		return nil
	}
	return declarations(syntax.Program{SyntaxNode: root}.Statements(), -1)
}

// declarations collects the symbols declared by stmts. Let declarations
// count only when they end at or before limit; a negative limit accepts
// all of them.
func declarations(stmts syntax.List[*syntax.SyntaxNode], limit int) []Symbol {
	var out []Symbol
	for stmt := range stmts.All() {
		if limit >= 0 && stmt.Kind() == syntax.NodeLetDeclaration && stmt.End() > limit {
			continue
		}
		if sym, ok := symbolOf(stmt); ok {
			out = append(out, sym)
		}
	}
	return out
}

func symbolOf(n *syntax.SyntaxNode) (Symbol, bool) {
	switch n.Kind() {
	case syntax.NodeLetDeclaration:
		let := syntax.LetDeclaration{SyntaxNode: n}
		name := let.Name()
		if name == nil || name.IsMissing() {
			return Symbol{}, false
		}
		detail := "let " + name.Text()
		if let.IsMutable() {
			detail = "let mut " + name.Text()
		}
		return Symbol{
			Name:     name.Text(),
			Kind:     SymbolVariable,
			Detail:   detail,
			Span:     n.Span(),
			NameSpan: name.Span(),
		}, true

	case syntax.NodeFuncDeclaration:
		fn := syntax.FuncDeclaration{SyntaxNode: n}
		name := fn.Name()
		if name == nil || name.IsMissing() {
			return Symbol{}, false
		}
		return Symbol{
			Name:     name.Text(),
			Kind:     SymbolFunction,
			Detail:   fmt.Sprintf("func %s(%s)", name.Text(), strings.Join(parameterNames(fn.Parameters()), ", ")),
			Span:     n.Span(),
			NameSpan: name.Span(),
			Children: declarations(fn.Body().Statements(), -1),
		}, true
	}
	return Symbol{}, false
}

func parameterNames(params syntax.ParameterList) []string {
	var names []string
	for tok := range params.Names().All() {
		if tok != nil && !tok.IsMissing() {
			names = append(names, tok.Text())
		}
	}
	return names
}

func parameterSymbols(params syntax.ParameterList) []Symbol {
	var out []Symbol
	for tok := range params.Names().All() {
		if tok == nil || tok.IsMissing() {
			continue
		}
		out = append(out, Symbol{
			Name:     tok.Text(),
			Kind:     SymbolParameter,
			Detail:   "parameter " + tok.Text(),
			Span:     tok.Span(),
			NameSpan: tok.Span(),
		})
	}
	return out
}

// VisibleAt returns the symbols in scope at offset, innermost first. An
// inner declaration hides outer ones of the same name. Functions are
// visible throughout their enclosing block; variables only after their
// declaration ends.
func VisibleAt(f *File, offset int) []Symbol {
	root := f.Tree.Syntax()
	tok, _ := root.TokenAt(offset, syntax.OwningToken)
	if tok == nil {
		tok = root.LastToken(true)
	}

	var out []Symbol
	seen := make(map[string]bool)
	add := func(syms []Symbol) {
		for _, s := range syms {
			if !seen[s.Name] {
				seen[s.Name] = true
				out = append(out, s)
			}
		}
	}

	for n := range tok.Ancestors() {
		switch n.Kind() {
		case syntax.NodeBlock:
			add(declarations(syntax.Block{SyntaxNode: n}.Statements(), offset))
		case syntax.NodeProgram:
			add(declarations(syntax.Program{SyntaxNode: n}.Statements(), offset))
		case syntax.NodeFuncDeclaration:
			add(parameterSymbols(syntax.FuncDeclaration{SyntaxNode: n}.Parameters()))
		case syntax.NodeLambdaExpression:
			add(parameterSymbols(syntax.LambdaExpression{SyntaxNode: n}.Parameters()))
		}
	}
	return out
}

// Hover is the information shown for the token under the cursor.
type Hover struct {
	Text string
	Span source.Span
}

// HoverAt describes the token at offset: its kind, the declaration a name
// refers to, the nodes enclosing it and any diagnostics touching it.
func HoverAt(f *File, offset int) (Hover, bool) {
	tok, _ := f.Tree.Syntax().TokenAt(offset, syntax.OwningToken)
	if tok == nil || tok.IsInvisible() {
		return Hover{}, false
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", tok.Kind(), tok.Text())

	if tok.Kind() == syntax.TokenName {
		if decl, ok := declarationOf(f, tok); ok {
			pos := f.Source.Position(decl.NameSpan.Start)
			fmt.Fprintf(&sb, "\n\n```noa\n%s\n```\ndeclared on line %d", decl.Detail, pos.Line)
		}
	}

	var chain []string
	for n := range tok.Ancestors() {
		chain = append(chain, n.Kind().String())
	}
	if len(chain) > 0 {
		fmt.Fprintf(&sb, "\n\n%s", strings.Join(chain, " < "))
	}

	span := tok.Span()
	for _, d := range f.Diagnostics {
		ds := d.Location.Span
		if (ds.Start < span.End && span.Start < ds.End) || (ds.IsEmpty() && span.Contains(ds.Start)) {
			fmt.Fprintf(&sb, "\n\n%s %s: %s", d.Severity(), d.Code(), d.Message)
		}
	}
	return Hover{Text: sb.String(), Span: span}, true
}

// declarationOf finds the symbol a name token refers to. A name that is
// itself being declared resolves to its own declaration.
func declarationOf(f *File, tok *syntax.SyntaxToken) (Symbol, bool) {
	if parent := tok.Parent(); parent != nil {
		switch parent.Kind() {
		case syntax.NodeLetDeclaration, syntax.NodeFuncDeclaration:
			return symbolOf(parent)
		}
	}
	for _, sym := range VisibleAt(f, tok.Span().Start) {
		if sym.Name == tok.Text() {
			return sym, true
		}
	}
	return Symbol{}, false
}

type CompletionKind int

const (
	CompletionKindKeyword CompletionKind = iota
	CompletionKindVariable
	CompletionKindFunction
)

type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

// CompletionsAt proposes the names in scope and the keywords that start
// with the partial name ending at offset.
func CompletionsAt(f *File, offset int) []CompletionItem {
	prefix := partialName(f, offset)

	var items []CompletionItem
	for _, sym := range VisibleAt(f, offset) {
		if !strings.HasPrefix(sym.Name, prefix) {
			continue
		}
		kind := CompletionKindVariable
		if sym.Kind == SymbolFunction {
			kind = CompletionKindFunction
		}
		items = append(items, CompletionItem{Label: sym.Name, Kind: kind, Detail: sym.Detail})
	}
	for k := syntax.TokenLet; k <= syntax.TokenNil; k++ {
		if strings.HasPrefix(k.Text(), prefix) {
			items = append(items, CompletionItem{Label: k.Text(), Kind: CompletionKindKeyword})
		}
	}
	return items
}

// partialName returns the part of a name or keyword token that lies
// before offset, or "".
func partialName(f *File, offset int) string {
	if offset <= 0 {
		return ""
	}
	tok, _ := f.Tree.Syntax().TokenAt(offset-1, syntax.OwningToken)
	if tok == nil || !(tok.Kind() == syntax.TokenName || tok.Kind().IsKeyword()) {
		return ""
	}
	span := tok.Span()
	if offset <= span.Start || offset > span.End {
		return ""
	}
	return tok.Text()[:offset-span.Start]
}
