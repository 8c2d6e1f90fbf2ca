package format

import (
	"io"

	"gopkg.in/yaml.v3"

	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/token"
)

type YAMLEncoder struct {
	w io.Writer
}

func NewYAMLEncoder(w io.Writer) *YAMLEncoder {
	return &YAMLEncoder{w: w}
}

func (e *YAMLEncoder) EncodeNode(node ast.Node) error {
	return e.write(nodeToData(node))
}

func (e *YAMLEncoder) EncodeTokens(tokens []token.Token) error {
	return e.write(tokensToData(tokens))
}

func (e *YAMLEncoder) EncodeDiagnostic(diag ferrors.CompilerError) error {
	return e.write(diagnosticToData(diag))
}

func (e *YAMLEncoder) write(v any) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
