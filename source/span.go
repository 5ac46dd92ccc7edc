package source

import "fmt"

// Span is a half-open range of byte offsets.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span from a start offset and a width.
func NewSpan(start, width int) Span {
	return Span{Start: start, End: start + width}
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) IsEmpty() bool { return s.Start == s.End }

// Contains reports whether offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Covers reports whether other lies entirely within the span.
func (s Span) Covers(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Location identifies a span inside a named source.
type Location struct {
	SourceName string
	Span       Span
}

func (l Location) String() string {
	return fmt.Sprintf("%s%s", l.SourceName, l.Span)
}

// Position is a resolved line/column view of an offset.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
