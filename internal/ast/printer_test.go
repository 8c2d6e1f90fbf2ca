package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finola/token"
)

func tok(tt token.Type, lexeme string) token.Token {
	return token.Token{Type: tt, Lexeme: lexeme}
}

func num(lexeme string) *Literal {
	return &Literal{Value: tok(token.NUMBER, lexeme)}
}

func ident(name string) *Variable {
	return &Variable{Name: tok(token.IDENTIFIER, name)}
}

func TestExpressionStrings(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"literal", num("3.14"), "3.14"},
		{"boolean", &Literal{Value: tok(token.BOOLEAN, "true")}, "true"},
		{"variable", ident("n"), "n"},
		{"negation", &Unary{Operator: tok(token.MINUS, "-"), Operand: ident("x")}, "(-x)"},
		{"not", &Unary{Operator: tok(token.BANG, "!"), Operand: ident("ok")}, "(!ok)"},
		{"power", &Power{Base: ident("n"), Exponent: num("2")}, "(n ^ 2)"},
		{
			"nested binary",
			&Binary{
				Left:     num("1"),
				Operator: tok(token.PLUS, "+"),
				Right:    &Binary{Left: num("2"), Operator: tok(token.STAR, "*"), Right: num("3")},
			},
			"(1 + (2 * 3))",
		},
		{
			"logical",
			&Logical{Left: ident("a"), Operator: tok(token.AND, "and"), Right: ident("b")},
			"(a and b)",
		},
		{
			"comparison",
			&Logical{Left: ident("a"), Operator: tok(token.GE, ">="), Right: num("1")},
			"(a >= 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.node.String())
		})
	}
}

func TestBlockString(t *testing.T) {
	assert.Equal(t, "{}", (&Block{}).String())

	block := &Block{Expressions: []Node{
		ident("a"),
		&Block{Expressions: []Node{num("1")}},
	}}
	assert.Equal(t, "{\n  a\n  {\n    1\n  }\n}", block.String())
}

func TestVariableDeclarationString(t *testing.T) {
	let := &VariableDeclaration{
		Keyword: tok(token.LET, "let"),
		Name:    tok(token.IDENTIFIER, "x"),
		Type:    tok(token.INT, "int"),
		Value:   &Binary{Left: num("1"), Operator: tok(token.PLUS, "+"), Right: num("2")},
	}
	assert.False(t, let.IsParameter())
	assert.Equal(t, "let x: int = (1 + 2)", let.String())

	param := &VariableDeclaration{
		Name: tok(token.IDENTIFIER, "a"),
		Type: tok(token.DOUBLE, "double"),
	}
	assert.True(t, param.IsParameter())
	assert.Equal(t, "a: double", param.String())
}

func TestOperandsNeedingParentheses(t *testing.T) {
	sum := &Binary{
		Left:     &Block{Expressions: []Node{num("1")}},
		Operator: tok(token.PLUS, "+"),
		Right:    num("2"),
	}
	assert.Equal(t, "({\n  1\n} + 2)", sum.String())

	neg := &Unary{Operator: tok(token.MINUS, "-"), Operand: &Block{}}
	assert.Equal(t, "(-({}))", neg.String())
}

func TestModuleString(t *testing.T) {
	assert.Equal(t, "module {}", (&Module{}).String())

	fn := &FunctionDeclaration{
		Name: tok(token.IDENTIFIER, "add"),
		Parameters: []*VariableDeclaration{
			{Name: tok(token.IDENTIFIER, "a"), Type: tok(token.INT, "int")},
			{Name: tok(token.IDENTIFIER, "b"), Type: tok(token.INT, "int")},
		},
		Body: &Block{Expressions: []Node{
			&Binary{Left: ident("a"), Operator: tok(token.PLUS, "+"), Right: ident("b")},
		}},
	}
	module := &Module{Declarations: []Declaration{{Kind: FunctionDecl, Node: fn}}}

	expected := "module {\n  func add(a: int, b: int) {\n    (a + b)\n  }\n}"
	assert.Equal(t, expected, module.String())
	assert.Equal(t, []*FunctionDeclaration{fn}, module.Functions())
}

func TestNodeTypes(t *testing.T) {
	assert.Equal(t, "BINARY", (&Binary{}).NodeType().String())
	assert.Equal(t, "MODULE", (&Module{}).NodeType().String())
	assert.Equal(t, "NodeType(?)", NodeType(99).String())
	assert.Equal(t, "function", FunctionDecl.String())
}
