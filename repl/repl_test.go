package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, input string, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Start(strings.NewReader(input), &out, opts))
	return out.String()
}

func TestExpression(t *testing.T) {
	out := run(t, "1 + 2 * 3\n", Options{})
	assert.Equal(t, ">> (1 + (2 * 3))\n>> \n", out)
}

func TestCustomPrompt(t *testing.T) {
	out := run(t, "x\n", Options{Prompt: "finola> "})
	assert.Equal(t, "finola> x\nfinola> \n", out)
}

func TestBlankLinesAreSkipped(t *testing.T) {
	out := run(t, "\n   \nn ^ 2\n", Options{})
	assert.Equal(t, ">> >> >> (n ^ 2)\n>> \n", out)
}

func TestContinuation(t *testing.T) {
	out := run(t, "1 +\n2\n", Options{})
	assert.Equal(t, ">> .. (1 + 2)\n>> \n", out)
}

func TestModuleAcrossLines(t *testing.T) {
	input := "module {\n  func add(a: int, b: int) {\n    a + b\n  }\n}\n"
	out := run(t, input, Options{Continuation: "... "})

	assert.Equal(t, 4, strings.Count(out, "... "))
	assert.Contains(t, out, "module {\n  func add(a: int, b: int) {\n    (a + b)\n  }\n}\n")
}

func TestSyntaxErrorResetsInput(t *testing.T) {
	out := run(t, "1 2\n3\n", Options{})

	assert.Contains(t, out, "error[E0102]")
	assert.Contains(t, out, "<repl>:1:3")
	assert.True(t, strings.HasSuffix(out, ">> 3\n>> \n"), out)
}

func TestLexErrorIsReported(t *testing.T) {
	out := run(t, "1 @ 2\n", Options{})
	assert.Contains(t, out, "error[E0100]")
	assert.Contains(t, out, "unrecognized character '@'")
}

func TestIncompleteInputAtEndIsReported(t *testing.T) {
	out := run(t, "(1 +\n", Options{})
	assert.Contains(t, out, "error[E0103]: expected expression, found end of input")
}

func TestQuit(t *testing.T) {
	out := run(t, ":quit\n1 + 2\n", Options{})
	assert.Equal(t, ">> ", out)
}

func TestTokensCommand(t *testing.T) {
	out := run(t, ":tokens a >= 1\n", Options{})
	assert.Contains(t, out, "IDENTIFIER \"a\" @0:0\nGE \">=\" @0:2\nNUMBER \"1\" @0:5\nEOF @0:6\n")
}

func TestTokensCommandReportsLexError(t *testing.T) {
	out := run(t, ":tokens a # b\n", Options{})
	assert.Contains(t, out, "IDENTIFIER \"a\" @0:0\n")
	assert.Contains(t, out, "error[E0100]")
}

func TestJSONFormat(t *testing.T) {
	out := run(t, "-x\n", Options{Format: "json"})
	assert.Contains(t, out, `"kind": "UNARY"`)
}

func TestUnknownFormat(t *testing.T) {
	err := Start(strings.NewReader(""), &bytes.Buffer{}, Options{Format: "xml"})
	assert.EqualError(t, err, `unknown output format "xml"`)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestReadErrorIsReturned(t *testing.T) {
	err := Start(failingReader{}, &bytes.Buffer{}, Options{})
	assert.EqualError(t, err, "broken pipe")
}
