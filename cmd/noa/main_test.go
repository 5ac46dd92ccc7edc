package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestApp(t *testing.T, files map[string]string, env map[string]string) *testApp {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	var stdout, stderr bytes.Buffer
	a := newApp(fs, strings.NewReader(""), &stdout, &stderr)
	a.workDir = "/ws"
	a.lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return &testApp{app: a, stdout: &stdout, stderr: &stderr}
}

func TestParseText(t *testing.T) {
	a := newTestApp(t, map[string]string{"/ws/a.noa": "let x = 1;"}, nil)

	assert.Equal(t, exitOK, a.run([]string{"parse", "/ws/a.noa"}))
	assert.Contains(t, a.stdout.String(), "LetDeclaration [0,10)")
	assert.Empty(t, a.stderr.String())
}

func TestParseReportsErrors(t *testing.T) {
	a := newTestApp(t, map[string]string{"/ws/b.noa": "a()"}, nil)

	assert.Equal(t, exitDiagnostics, a.run([]string{"parse", "/ws/b.noa"}))
	assert.Contains(t, a.stdout.String(), "Missing [3,3)")
	assert.True(t, strings.HasPrefix(a.stderr.String(), "/ws/b.noa:1:4: error NOA-SYN-002: expected ';'\n"))
}

func TestParseExpressionFromStdinAsJSON(t *testing.T) {
	a := newTestApp(t, nil, nil)
	a.stdin = strings.NewReader("1 + 2")

	require.Equal(t, exitOK, a.run([]string{"parse", "--format", "json", "--expression", "-"}))

	var doc struct {
		Source string `json:"source"`
		Tree   struct {
			Kind string `json:"kind"`
		} `json:"tree"`
		Diagnostics []any `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(a.stdout.Bytes(), &doc))
	assert.Equal(t, "<stdin>", doc.Source)
	assert.Equal(t, "ExpressionRoot", doc.Tree.Kind)
	assert.Empty(t, doc.Diagnostics)
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"missing file", []string{"parse", "/ws/none.noa"}, "noa: "},
		{"unknown format", []string{"parse", "--format", "xml", "/ws/a.noa"}, "unknown"},
		{"bad color", []string{"--color", "purple", "parse", "/ws/a.noa"}, "noa: invalid flags"},
		{"no arguments", []string{"parse"}, "noa: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, map[string]string{"/ws/a.noa": "let x = 1;"}, nil)
			assert.Equal(t, exitFailure, a.run(tt.args))
			assert.Contains(t, a.stderr.String(), tt.expected)
		})
	}
}

func TestTokensRaw(t *testing.T) {
	a := newTestApp(t, map[string]string{"/ws/t.noa": "x = // c\n1"}, nil)

	assert.Equal(t, exitOK, a.run([]string{"tokens", "--raw", "/ws/t.noa"}))
	expected := `Name [0,1) "x"
Assign [2,3) "="
Number [9,10) "1"
EOF [10,10)
`
	assert.Equal(t, expected, a.stdout.String())
}

func TestCheck(t *testing.T) {
	files := map[string]string{
		"/ws/a.noa":      "let a = 1;",
		"/ws/b.noa":      "a()",
		"/ws/.git/c.noa": "a()",
		"/ws/notes.txt":  "a()",
		"/other/d.noa":   "a()",
	}
	a := newTestApp(t, files, nil)

	assert.Equal(t, exitDiagnostics, a.run([]string{"check", "/ws"}))
	expected := "/ws/b.noa:1:4: error NOA-SYN-002: expected ';'\n" +
		"   1 | a()\n" +
		"     |    ^\n" +
		"1 error, 0 warnings in 2 files\n"
	assert.Equal(t, expected, a.stdout.String())
}

func TestCheckHonorsConfigFile(t *testing.T) {
	files := map[string]string{
		"/ws/.noa.yaml": "ignore:\n  - NOA-SYN-002\n",
		"/ws/a.noa":     "let a = 1;",
		"/ws/b.noa":     "a()",
	}
	a := newTestApp(t, files, nil)

	assert.Equal(t, exitOK, a.run([]string{"check", "/ws/a.noa", "/ws"}))
	assert.Equal(t, "0 errors, 0 warnings in 2 files\n", a.stdout.String())
}

func TestCheckJSONFromEnvironment(t *testing.T) {
	a := newTestApp(t, map[string]string{"/ws/b.noa": "a()"},
		map[string]string{"NOA_OUTPUT_FORMAT": "json"})

	assert.Equal(t, exitDiagnostics, a.run([]string{"check", "/ws"}))

	lines := strings.Split(strings.TrimSpace(a.stdout.String()), "\n")
	require.Len(t, lines, 1)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "NOA-SYN-002", record["code"])
	assert.Equal(t, "/ws/b.noa", record["file"])
	assert.Equal(t, "error", record["severity"])
}

func TestCheckWatchRejectsSeveralPaths(t *testing.T) {
	a := newTestApp(t, nil, nil)
	assert.Equal(t, exitFailure, a.run([]string{"check", "--watch", "/a", "/b"}))
	assert.Contains(t, a.stderr.String(), "--watch takes at most one directory")
}
