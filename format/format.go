// Package format renders parse results for people and tools: an indented
// tree dump, a JSON document, a token listing, and compiler-style
// diagnostics.
package format

import (
	"encoding"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/noa/syntax"
)

// Encoder writes a parse result in one output format. MarshalText renders
// the tree given to the last Encode call.
type Encoder interface {
	encoding.TextMarshaler
	Encode(tree *syntax.Tree) error
}

// Names of the output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("unknown output format")

var (
	_ Encoder = (*TreeEncoder)(nil)
	_ Encoder = (*JSONEncoder)(nil)
	_ Encoder = (*TokenEncoder)(nil)
)

type options struct {
	trivia  bool
	palette *Palette
}

type Option func(*options)

// WithTrivia includes leading trivia in the output.
func WithTrivia() Option {
	return func(o *options) {
		o.trivia = true
	}
}

// WithPalette colors text output. Encoders default to a colorless palette.
func WithPalette(p *Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

func buildOptions(opts []Option) options {
	o := options{palette: NewPalette(false)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the tree encoder for the named format.
func New(name string, w io.Writer, opts ...Option) (Encoder, error) {
	switch name {
	case FormatText, "":
		return NewTreeEncoder(w, opts...), nil
	case FormatJSON:
		return NewJSONEncoder(w, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
