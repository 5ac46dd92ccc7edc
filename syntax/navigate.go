package syntax

import "iter"

func visible(t *SyntaxToken, includeInvisible bool) bool {
	return includeInvisible || !t.IsInvisible()
}

func firstTokenOf(e SyntaxElement, includeInvisible bool) *SyntaxToken {
	switch v := e.(type) {
	case *SyntaxToken:
		if visible(v, includeInvisible) {
			return v
		}
	case *SyntaxNode:
		return v.FirstToken(includeInvisible)
	}
	return nil
}

func lastTokenOf(e SyntaxElement, includeInvisible bool) *SyntaxToken {
	switch v := e.(type) {
	case *SyntaxToken:
		if visible(v, includeInvisible) {
			return v
		}
	case *SyntaxNode:
		return v.LastToken(includeInvisible)
	}
	return nil
}

// FirstToken returns the first token under n. Invisible tokens (end of
// file and missing-token placeholders) are skipped unless includeInvisible.
func (n *SyntaxNode) FirstToken(includeInvisible bool) *SyntaxToken {
	for _, child := range n.Children() {
		if child == nil {
			continue
		}
		if t := firstTokenOf(child, includeInvisible); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last token under n.
func (n *SyntaxNode) LastToken(includeInvisible bool) *SyntaxToken {
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i] == nil {
			continue
		}
		if t := lastTokenOf(children[i], includeInvisible); t != nil {
			return t
		}
	}
	return nil
}

// previousToken scans the siblings before e, then climbs to the parent
// and repeats.
func previousToken(e SyntaxElement, includeInvisible bool) *SyntaxToken {
	for parent := e.Parent(); parent != nil; e, parent = parent, parent.Parent() {
		children := parent.Children()
		for i := e.Index() - 1; i >= 0; i-- {
			if children[i] == nil {
				continue
			}
			if t := lastTokenOf(children[i], includeInvisible); t != nil {
				return t
			}
		}
	}
	return nil
}

func nextToken(e SyntaxElement, includeInvisible bool) *SyntaxToken {
	for parent := e.Parent(); parent != nil; e, parent = parent, parent.Parent() {
		children := parent.Children()
		for i := e.Index() + 1; i < len(children); i++ {
			if children[i] == nil {
				continue
			}
			if t := firstTokenOf(children[i], includeInvisible); t != nil {
				return t
			}
		}
	}
	return nil
}

// PreviousToken returns the token immediately before t in document order.
func (t *SyntaxToken) PreviousToken(includeInvisible bool) *SyntaxToken {
	return previousToken(t, includeInvisible)
}

// NextToken returns the token immediately after t in document order.
func (t *SyntaxToken) NextToken(includeInvisible bool) *SyntaxToken {
	return nextToken(t, includeInvisible)
}

// PreviousToken returns the token immediately before n's first token.
func (n *SyntaxNode) PreviousToken(includeInvisible bool) *SyntaxToken {
	return previousToken(n, includeInvisible)
}

func (n *SyntaxNode) NextToken(includeInvisible bool) *SyntaxToken {
	return nextToken(n, includeInvisible)
}

func ancestors(parent *SyntaxNode) iter.Seq[*SyntaxNode] {
	return func(yield func(*SyntaxNode) bool) {
		for p := parent; p != nil; p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// Ancestors yields the parent chain of n, nearest first.
func (n *SyntaxNode) Ancestors() iter.Seq[*SyntaxNode] { return ancestors(n.parent) }

func (t *SyntaxToken) Ancestors() iter.Seq[*SyntaxNode] { return ancestors(t.parent) }

func firstAncestor(parent *SyntaxNode, kinds []NodeKind) *SyntaxNode {
	for p := range ancestors(parent) {
		if len(kinds) == 0 {
			return p
		}
		for _, k := range kinds {
			if p.Kind() == k {
				return p
			}
		}
	}
	return nil
}

// FirstAncestor returns the nearest ancestor of one of kinds.
func (n *SyntaxNode) FirstAncestor(kinds ...NodeKind) *SyntaxNode {
	return firstAncestor(n.parent, kinds)
}

func (t *SyntaxToken) FirstAncestor(kinds ...NodeKind) *SyntaxNode {
	return firstAncestor(t.parent, kinds)
}

// TriviaPolicy decides what TokenAt reports for an offset inside leading
// trivia.
type TriviaPolicy int

const (
	// OwningToken resolves to the token that owns the trivia.
	OwningToken TriviaPolicy = iota
	// TriviaUnit also returns the trivia unit containing the offset.
	TriviaUnit
)

// TokenAt finds the token whose full span contains offset by descending
// through the children that contain it. The end of the text resolves to
// end of file. With TriviaUnit, an offset inside leading trivia also
// yields that trivia.
func (n *SyntaxNode) TokenAt(offset int, policy TriviaPolicy) (*SyntaxToken, *SyntaxTrivia) {
	if offset < n.FullStart() || offset > n.End() {
		return nil, nil
	}

	var tok *SyntaxToken
	if offset == n.End() {
		tok = n.LastToken(true)
	} else {
		node := n
	descend:
		for {
			for _, child := range node.Children() {
				if child == nil || !child.FullSpan().Contains(offset) {
					continue
				}
				switch v := child.(type) {
				case *SyntaxToken:
					tok = v
					break descend
				case *SyntaxNode:
					node = v
					continue descend
				}
			}
			return nil, nil
		}
	}
	if tok == nil || policy == OwningToken {
		return tok, nil
	}
	for _, tr := range tok.LeadingTrivia() {
		if tr.Span().Contains(offset) {
			return tok, &tr
		}
	}
	return tok, nil
}
