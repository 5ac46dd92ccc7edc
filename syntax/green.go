package syntax

import (
	"fmt"
	"strings"
)

// Green is an element of the structural tree: a *Node or a *Token. Green
// elements carry no position and are never modified after construction.
type Green interface {
	Width() int
	isGreen()
}

// Node is an interior green element with a fixed, kind-specific slot array.
// Optional slots hold nil.
type Node struct {
	Kind  NodeKind
	slots []Green
	width int
}

// NewNode builds a node from already built children. Non-list kinds must
// be given exactly their slot count.
func NewNode(kind NodeKind, slots ...Green) *Node {
	if want := kind.SlotCount(); want >= 0 && len(slots) != want {
		panic(fmt.Sprintf("syntax: %s needs %d slots, got %d", kind, want, len(slots)))
	}
	n := &Node{Kind: kind, slots: make([]Green, len(slots))}
	for i, s := range slots {
		if isAbsent(s) {
			continue
		}
		n.slots[i] = s
		n.width += s.Width()
	}
	return n
}

func (n *Node) isGreen() {}

func (n *Node) Width() int { return n.width }

func (n *Node) SlotCount() int { return len(n.slots) }

// Slot returns the child in slot i, or nil when the slot is empty.
func (n *Node) Slot(i int) Green {
	if i < 0 || i >= len(n.slots) {
		return nil
	}
	return n.slots[i]
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%d)", n.Kind, n.width)
}

func isAbsent(g Green) bool {
	switch v := g.(type) {
	case nil:
		return true
	case *Node:
		return v == nil
	case *Token:
		return v == nil
	}
	return false
}

// FullText reconstructs the exact source text covered by g.
func FullText(g Green) string {
	var sb strings.Builder
	sb.Grow(g.Width())
	writeGreen(&sb, g)
	return sb.String()
}

func writeGreen(sb *strings.Builder, g Green) {
	switch v := g.(type) {
	case *Token:
		writeToken(sb, v)
	case *Node:
		for _, s := range v.slots {
			if s != nil {
				writeGreen(sb, s)
			}
		}
	}
}

// FirstToken returns the first token under g, including invisible ones.
func FirstToken(g Green) *Token {
	switch v := g.(type) {
	case *Token:
		return v
	case *Node:
		for _, s := range v.slots {
			if s == nil {
				continue
			}
			if t := FirstToken(s); t != nil {
				return t
			}
		}
	}
	return nil
}

// LastToken returns the last token under g, including invisible ones.
func LastToken(g Green) *Token {
	switch v := g.(type) {
	case *Token:
		return v
	case *Node:
		for i := len(v.slots) - 1; i >= 0; i-- {
			if v.slots[i] == nil {
				continue
			}
			if t := LastToken(v.slots[i]); t != nil {
				return t
			}
		}
	}
	return nil
}

// LeadingTriviaWidth is the width of the leading trivia of the first token
// under g.
func LeadingTriviaWidth(g Green) int {
	if t := FirstToken(g); t != nil {
		return t.LeadingWidth()
	}
	return 0
}

// walkGreen visits g and everything below it in document order, including
// tokens held as trivia, with the absolute full start of each element.
func walkGreen(g Green, start int, visit func(g Green, start int)) {
	visit(g, start)
	switch v := g.(type) {
	case *Token:
		pos := start
		for _, tr := range v.Leading {
			if tr.Token != nil {
				walkGreen(tr.Token, pos, visit)
			}
			pos += tr.Width()
		}
	case *Node:
		pos := start
		for _, s := range v.slots {
			if s == nil {
				continue
			}
			walkGreen(s, pos, visit)
			pos += s.Width()
		}
	}
}
