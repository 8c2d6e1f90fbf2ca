package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"finola/internal/ast"
	"finola/token"
)

// ToAST converts the parse tree into the same AST the hand-written parser
// produces, with 0-based positions.
func (p *Program) ToAST() *ast.Module {
	c := converter{index: p.index}
	return c.module(p.Module)
}

type converter struct {
	index *positionIndex
}

func (c converter) pos(pos lexer.Position) token.Position {
	return c.index.at(pos)
}

func (c converter) tok(tt token.Type, lexeme string, pos lexer.Position) token.Token {
	return token.Token{Type: tt, Lexeme: lexeme, Position: c.pos(pos)}
}

var operatorTypes = map[string]token.Type{
	"or": token.OR, "and": token.AND,
	"==": token.EQEQ, "!=": token.NOTEQ,
	">": token.GT, ">=": token.GE, "<": token.LT, "<=": token.LE,
	"+": token.PLUS, "-": token.MINUS, "*": token.STAR, "/": token.SLASH,
	"!": token.BANG,
}

func (c converter) operator(op string, pos lexer.Position) token.Token {
	return c.tok(operatorTypes[op], op, pos)
}

func (c converter) module(m *Module) *ast.Module {
	module := &ast.Module{Keyword: c.pos(m.Pos)}
	for _, fn := range m.Functions {
		module.Declarations = append(module.Declarations, ast.Declaration{
			Kind: ast.FunctionDecl,
			Node: c.function(fn),
		})
	}
	return module
}

func (c converter) function(f *Function) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{
		Func: c.pos(f.Pos),
		Name: c.ident(f.Name),
		Body: c.block(f.Body),
	}
	for _, p := range f.Params {
		fn.Parameters = append(fn.Parameters, &ast.VariableDeclaration{
			Name: c.tok(token.IDENTIFIER, p.Name, p.Pos),
			Type: c.typeName(p.Type),
		})
	}
	return fn
}

func (c converter) ident(id *PosIdent) token.Token {
	return c.tok(token.IDENTIFIER, id.Value, id.Pos)
}

func (c converter) typeName(t *TypeName) token.Token {
	return c.tok(token.LookupIdent(t.Name), t.Name, t.Pos)
}

func (c converter) block(b *Block) *ast.Block {
	block := &ast.Block{
		Lbrace: c.pos(b.Pos),
		Rbrace: c.pos(b.Close.Pos),
	}
	for _, expr := range b.Expressions {
		block.Expressions = append(block.Expressions, c.expression(expr))
	}
	return block
}

func (c converter) expression(e *Expression) ast.Node {
	switch {
	case e.Let != nil:
		return &ast.VariableDeclaration{
			Keyword: c.tok(token.LET, "let", e.Let.Pos),
			Name:    c.ident(e.Let.Name),
			Type:    c.typeName(e.Let.Type),
			Value:   c.expression(e.Let.Value),
		}
	case e.Block != nil:
		return c.block(e.Block)
	case e.Function != nil:
		return c.function(e.Function)
	default:
		return c.logicOr(e.Or)
	}
}

func (c converter) logicOr(n *LogicOr) ast.Node {
	left := c.logicAnd(n.Left)
	for _, r := range n.Rest {
		left = &ast.Logical{Left: left, Operator: c.operator(r.Op, r.Pos), Right: c.logicAnd(r.Right)}
	}
	return left
}

func (c converter) logicAnd(n *LogicAnd) ast.Node {
	left := c.equality(n.Left)
	for _, r := range n.Rest {
		left = &ast.Logical{Left: left, Operator: c.operator(r.Op, r.Pos), Right: c.equality(r.Right)}
	}
	return left
}

func (c converter) equality(n *Equality) ast.Node {
	left := c.comparison(n.Left)
	for _, r := range n.Rest {
		left = &ast.Logical{Left: left, Operator: c.operator(r.Op, r.Pos), Right: c.comparison(r.Right)}
	}
	return left
}

func (c converter) comparison(n *Comparison) ast.Node {
	left := c.factor(n.Left)
	for _, r := range n.Rest {
		left = &ast.Logical{Left: left, Operator: c.operator(r.Op, r.Pos), Right: c.factor(r.Right)}
	}
	return left
}

func (c converter) factor(n *Factor) ast.Node {
	left := c.term(n.Left)
	for _, r := range n.Rest {
		left = &ast.Binary{Left: left, Operator: c.operator(r.Op, r.Pos), Right: c.term(r.Right)}
	}
	return left
}

func (c converter) term(n *Term) ast.Node {
	left := c.power(n.Left)
	for _, r := range n.Rest {
		left = &ast.Binary{Left: left, Operator: c.operator(r.Op, r.Pos), Right: c.power(r.Right)}
	}
	return left
}

func (c converter) power(n *Power) ast.Node {
	base := c.unary(n.Base)
	if n.Exponent == nil {
		return base
	}
	return &ast.Power{Base: base, Exponent: c.power(n.Exponent)}
}

func (c converter) unary(n *Unary) ast.Node {
	operand := c.primary(n.Operand)
	if n.Op == "" {
		return operand
	}
	return &ast.Unary{Operator: c.operator(n.Op, n.Pos), Operand: operand}
}

func (c converter) primary(n *Primary) ast.Node {
	switch {
	case n.Number != nil:
		return &ast.Literal{Value: c.tok(token.NUMBER, *n.Number, n.Pos)}
	case n.Bool != nil:
		return &ast.Literal{Value: c.tok(token.BOOLEAN, *n.Bool, n.Pos)}
	case n.Ident != nil:
		return &ast.Variable{Name: c.tok(token.IDENTIFIER, *n.Ident, n.Pos)}
	default:
		return c.expression(n.Group)
	}
}
