package diagnostic

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/noa/source"
)

func at(name string, start, end int) source.Location {
	return source.Location{SourceName: name, Span: source.Span{Start: start, End: end}}
}

func TestSortOrdersByNameStartLength(t *testing.T) {
	t.Parallel()

	diags := []Diagnostic{
		{Template: ExpectedKinds, Location: at("b.noa", 0, 1)},
		{Template: ExpectedKinds, Location: at("a.noa", 5, 9)},
		{Template: UnexpectedToken, Location: at("a.noa", 5, 6)},
		{Template: TuplesUnsupported, Location: at("a.noa", 2, 3)},
	}
	Sort(diags)

	got := make([]source.Location, len(diags))
	for i, d := range diags {
		got[i] = d.Location
	}
	assert.Equal(t, []source.Location{
		at("a.noa", 2, 3),
		at("a.noa", 5, 6),
		at("a.noa", 5, 9),
		at("b.noa", 0, 1),
	}, got)
}

func TestCodesAreStable(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^NOA-(LEX|SYN)-\d{3}$`)
	seen := map[Code]bool{}
	for _, tmpl := range Templates {
		assert.Regexp(t, pattern, string(tmpl.Code), tmpl.Name)
		assert.False(t, seen[tmpl.Code], "duplicate code %s", tmpl.Code)
		seen[tmpl.Code] = true
	}

	tests := []struct {
		code     Code
		name     string
		category string
	}{
		{"NOA-LEX-002", "UnterminatedString", "LEX"},
		{"NOA-SYN-002", "ExpectedKinds", "SYN"},
		{"NOA-SYN-004", "ElseOmitted", "SYN"},
		{"NOA-SYN-005", "TuplesUnsupported", "SYN"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			tmpl, ok := Lookup(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.name, tmpl.Name)
			assert.Equal(t, tt.category, tt.code.Category())
		})
	}
}

func TestTemplateMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "expected ';'", ExpectedKinds.Message("';'"))
	assert.Equal(t, "tuples are not supported", TuplesUnsupported.Message())
	assert.Equal(t, `unexpected character "$"`, UnexpectedCharacter.Message("$"))
}

func TestHasErrorsAndFilter(t *testing.T) {
	t.Parallel()

	warn := Diagnostic{Template: InvalidExpressionStatement}
	err := Diagnostic{Template: ExpectedKinds}

	assert.False(t, HasErrors([]Diagnostic{warn}))
	assert.True(t, HasErrors([]Diagnostic{warn, err}))

	filtered := Filter([]Diagnostic{warn, err}, []string{"NOA-SYN-002"})
	require.Len(t, filtered, 1)
	assert.Equal(t, Code("NOA-SYN-007"), filtered[0].Code())
}
