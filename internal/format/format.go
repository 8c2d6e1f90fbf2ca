package format

import (
	"fmt"
	"io"

	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/token"
)

// Encoder writes trees, token streams and diagnostics in one output format.
type Encoder interface {
	EncodeNode(node ast.Node) error
	EncodeTokens(tokens []token.Token) error
	EncodeDiagnostic(diag ferrors.CompilerError) error
}

// Names lists the formats accepted by New.
var Names = []string{"text", "json", "yaml"}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "", "text":
		return NewTextEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", name)
	}
}
