package ast

import (
	"fmt"
	"strings"
)

// The printed form is valid Finola: every composite expression is fully
// parenthesised, so printing a parsed tree and parsing the result again
// yields the same tree.

func (l *Literal) String() string {
	return l.Value.Lexeme
}

func (v *Variable) String() string {
	return v.Name.Lexeme
}

func (u *Unary) String() string {
	return fmt.Sprintf("(%s%s)", u.Operator.Lexeme, operand(u.Operand))
}

func (p *Power) String() string {
	return fmt.Sprintf("(%s ^ %s)", operand(p.Base), operand(p.Exponent))
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", operand(b.Left), b.Operator.Lexeme, operand(b.Right))
}

func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", operand(l.Left), l.Operator.Lexeme, operand(l.Right))
}

func (b *Block) String() string {
	if len(b.Expressions) == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, expr := range b.Expressions {
		sb.WriteString("  " + strings.ReplaceAll(expr.String(), "\n", "\n  ") + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (d *VariableDeclaration) String() string {
	if d.IsParameter() {
		return fmt.Sprintf("%s: %s", d.Name.Lexeme, d.Type.Lexeme)
	}
	return fmt.Sprintf("let %s: %s = %s", d.Name.Lexeme, d.Type.Lexeme, stringOrEmpty(d.Value))
}

func (f *FunctionDeclaration) String() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.String()
	}

	body := "{}"
	if f.Body != nil {
		body = f.Body.String()
	}
	return fmt.Sprintf("func %s(%s) %s", f.Name.Lexeme, strings.Join(params, ", "), body)
}

func (m *Module) String() string {
	if len(m.Declarations) == 0 {
		return "module {}"
	}

	var b strings.Builder
	b.WriteString("module {\n")
	for _, decl := range m.Declarations {
		b.WriteString("  " + strings.ReplaceAll(stringOrEmpty(decl.Node), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
	return b.String()
}

// operand renders n in a position where only a primary may appear.
// Blocks and declarations are wrapped in an extra pair of parentheses.
func operand(n Node) string {
	switch n.(type) {
	case *Block, *VariableDeclaration, *FunctionDeclaration:
		return "(" + n.String() + ")"
	case nil:
		return ""
	}
	return n.String()
}

func stringOrEmpty(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}
