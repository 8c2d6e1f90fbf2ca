package format

import (
	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/token"
)

type nodeData struct {
	Kind        string       `json:"kind" yaml:"kind"`
	Position    positionData `json:"position" yaml:"position"`
	Operator    string       `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value       string       `json:"value,omitempty" yaml:"value,omitempty"`
	Name        string       `json:"name,omitempty" yaml:"name,omitempty"`
	Type        string       `json:"type,omitempty" yaml:"type,omitempty"`
	Declaration string       `json:"declaration,omitempty" yaml:"declaration,omitempty"` // set on module entries
	Children    []*nodeData  `json:"children,omitempty" yaml:"children,omitempty"`
}

type positionData struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

type tokenData struct {
	Kind     string       `json:"kind" yaml:"kind"`
	Lexeme   string       `json:"lexeme" yaml:"lexeme"`
	Position positionData `json:"position" yaml:"position"`
}

type diagnosticData struct {
	Level    string       `json:"level" yaml:"level"`
	Code     string       `json:"code,omitempty" yaml:"code,omitempty"`
	Message  string       `json:"message" yaml:"message"`
	Position positionData `json:"position" yaml:"position"`
	Notes    []string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	Help     string       `json:"help,omitempty" yaml:"help,omitempty"`
}

func positionToData(pos token.Position) positionData {
	return positionData{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}

func nodeToData(node ast.Node) *nodeData {
	if node == nil {
		return nil
	}

	data := &nodeData{
		Kind:     node.NodeType().String(),
		Position: positionToData(node.NodePos()),
	}

	switch n := node.(type) {
	case *ast.Literal:
		data.Value = n.Value.Lexeme
	case *ast.Variable:
		data.Name = n.Name.Lexeme
	case *ast.Unary:
		data.Operator = n.Operator.Lexeme
	case *ast.Power:
		data.Operator = "^"
	case *ast.Binary:
		data.Operator = n.Operator.Lexeme
	case *ast.Logical:
		data.Operator = n.Operator.Lexeme
	case *ast.VariableDeclaration:
		data.Name = n.Name.Lexeme
		data.Type = n.Type.Lexeme
	case *ast.FunctionDeclaration:
		data.Name = n.Name.Lexeme
	case *ast.Module:
		for _, decl := range n.Declarations {
			child := nodeToData(decl.Node)
			if child == nil {
				continue
			}
			child.Declaration = decl.Kind.String()
			data.Children = append(data.Children, child)
		}
		return data
	}

	for _, child := range ast.Children(node) {
		data.Children = append(data.Children, nodeToData(child))
	}
	return data
}

func tokensToData(tokens []token.Token) []tokenData {
	data := make([]tokenData, len(tokens))
	for i, tok := range tokens {
		data[i] = tokenData{
			Kind:     tok.Type.String(),
			Lexeme:   tok.Lexeme,
			Position: positionToData(tok.Position),
		}
	}
	return data
}

func diagnosticToData(diag ferrors.CompilerError) diagnosticData {
	return diagnosticData{
		Level:    string(diag.Level),
		Code:     diag.Code,
		Message:  diag.Message,
		Position: positionToData(diag.Position),
		Notes:    diag.Notes,
		Help:     diag.HelpText,
	}
}
