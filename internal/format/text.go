package format

import (
	"fmt"
	"io"
	"strings"

	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/token"
)

// TextEncoder prints trees in their source form and tokens one per line.
type TextEncoder struct {
	w io.Writer
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) EncodeNode(node ast.Node) error {
	_, err := fmt.Fprintln(e.w, node.String())
	return err
}

func (e *TextEncoder) EncodeTokens(tokens []token.Token) error {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
		sb.WriteString("\n")
	}
	_, err := io.WriteString(e.w, sb.String())
	return err
}

// EncodeDiagnostic writes a one-line summary with a 1-based location. Use
// errors.ErrorReporter for the annotated source snippet.
func (e *TextEncoder) EncodeDiagnostic(diag ferrors.CompilerError) error {
	_, err := fmt.Fprintf(e.w, "%d:%d: %s\n", diag.Position.Line+1, diag.Position.Column+1, diag.Error())
	return err
}
