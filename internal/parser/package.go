package parser

import "finola/internal/ast"

// ParseSource tokenizes and parses a complete module.
func ParseSource(text string) (*ast.Module, error) {
	p, err := NewFromString(text)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseExpr tokenizes and parses a single expression.
func ParseExpr(text string) (ast.Node, error) {
	p, err := NewFromString(text)
	if err != nil {
		return nil, err
	}
	return p.ParseExpression()
}
