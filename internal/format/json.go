package format

import (
	"encoding/json"
	"io"

	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/token"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) EncodeNode(node ast.Node) error {
	return e.write(nodeToData(node))
}

func (e *JSONEncoder) EncodeTokens(tokens []token.Token) error {
	return e.write(tokensToData(tokens))
}

func (e *JSONEncoder) EncodeDiagnostic(diag ferrors.CompilerError) error {
	return e.write(diagnosticToData(diag))
}

func (e *JSONEncoder) write(v any) error {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}
