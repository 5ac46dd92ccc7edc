// Package source holds compilation units and the byte-offset locations that
// point into them.
package source

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// Source is an immutable compilation unit. Name flows into every location
// derived from the text.
type Source struct {
	name string
	text string

	linesOnce sync.Once
	lines     []int // byte offset of the first character of each line
}

// New creates a Source. The text is never modified afterwards.
func New(name, text string) *Source {
	return &Source{name: name, text: text}
}

// Load reads path from fs into a Source named after path.
func Load(fs afero.Fs, path string) (*Source, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(path, string(data)), nil
}

func (s *Source) Name() string { return s.name }
func (s *Source) Text() string { return s.text }
func (s *Source) Len() int     { return len(s.text) }

// Slice returns the text covered by span, clamped to the source bounds.
func (s *Source) Slice(span Span) string {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(s.text) {
		end = len(s.text)
	}
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

func (s *Source) lineStarts() []int {
	s.linesOnce.Do(func() {
		s.lines = []int{0}
		for i := 0; i < len(s.text); i++ {
			if s.text[i] == '\n' {
				s.lines = append(s.lines, i+1)
			}
		}
	})
	return s.lines
}

// LineCount returns the number of lines; an empty source has one line.
func (s *Source) LineCount() int {
	return len(s.lineStarts())
}

// Position converts a byte offset into a 1-based line and column. Columns
// count bytes, like the offsets themselves.
func (s *Source) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}
	lines := s.lineStarts()
	line := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1
	return Position{
		File:   s.name,
		Offset: offset,
		Line:   line + 1,
		Column: offset - lines[line] + 1,
	}
}

// Line returns the text of the 1-based line without its terminator.
func (s *Source) Line(line int) string {
	lines := s.lineStarts()
	if line < 1 || line > len(lines) {
		return ""
	}
	start := lines[line-1]
	end := len(s.text)
	if line < len(lines) {
		end = lines[line] - 1
	}
	if end > start && s.text[end-1] == '\r' {
		end--
	}
	return s.text[start:end]
}

// Offset converts a 1-based line and byte column back into an offset,
// clamping to the end of the line.
func (s *Source) Offset(line, column int) int {
	lines := s.lineStarts()
	if line < 1 {
		return 0
	}
	if line > len(lines) {
		return len(s.text)
	}
	start := lines[line-1]
	end := len(s.text)
	if line < len(lines) {
		end = lines[line] - 1
	}
	offset := start + column - 1
	if offset < start {
		return start
	}
	if offset > end {
		return end
	}
	return offset
}

// UTF16Column returns the 0-based UTF-16 code unit column of offset within
// its line, the unit editors speak.
func (s *Source) UTF16Column(offset int) int {
	pos := s.Position(offset)
	lineStart := pos.Offset - (pos.Column - 1)
	col := 0
	for _, r := range s.text[lineStart:pos.Offset] {
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return col
}

// OffsetFromUTF16 converts a 0-based line and UTF-16 column into a byte offset.
func (s *Source) OffsetFromUTF16(line, character int) int {
	lines := s.lineStarts()
	if line < 0 {
		return 0
	}
	if line >= len(lines) {
		return len(s.text)
	}
	offset := lines[line]
	units := 0
	for offset < len(s.text) && units < character {
		r, size := utf8.DecodeRuneInString(s.text[offset:])
		if r == '\n' {
			break
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		offset += size
	}
	return offset
}
