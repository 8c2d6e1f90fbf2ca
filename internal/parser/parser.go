package parser

import (
	"finola/internal/ast"
	"finola/internal/lexer"
	"finola/token"
)

// TokenSource yields tokens one at a time. After the first EOF it must keep
// returning EOF. *lexer.Lexer satisfies it.
type TokenSource interface {
	NextToken() (token.Token, error)
}

// Parser builds an AST from a TokenSource by recursive descent, one
// function per precedence level. It stops at the first error.
type Parser struct {
	src      TokenSource
	current  token.Token
	previous token.Token
}

// New primes the parser with the first token of src. A lexical error in the
// very first token is returned here.
func New(src TokenSource) (*Parser, error) {
	p := &Parser{src: src}
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	p.current = tok
	return p, nil
}

func NewFromString(text string) (*Parser, error) {
	return New(lexer.New(text))
}

// Parse parses a complete module followed by end of input.
func (p *Parser) Parse() (*ast.Module, error) {
	module, err := p.parseModule()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.EOF); err != nil {
		return nil, err
	}
	return module, nil
}

// ParseExpression parses a single expression followed by end of input.
func (p *Parser) ParseExpression() (ast.Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.EOF); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseModule() (*ast.Module, error) {
	keyword, err := p.consume(token.MODULE)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBRACE); err != nil {
		return nil, err
	}

	module := &ast.Module{Keyword: keyword.Position}
	for !p.match(token.RBRACE, token.EOF) {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		module.Declarations = append(module.Declarations, decl)
	}

	if _, err := p.consume(token.RBRACE); err != nil {
		return nil, err
	}
	return module, nil
}

func (p *Parser) parseDeclaration() (ast.Declaration, error) {
	fn, err := p.parseFunction()
	if err != nil {
		return ast.Declaration{}, err
	}
	return ast.Declaration{Kind: ast.FunctionDecl, Node: fn}, nil
}

func (p *Parser) parseFunction() (*ast.FunctionDeclaration, error) {
	funcTok, err := p.consume(token.FUNC)
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LPAREN); err != nil {
		return nil, err
	}

	var params []*ast.VariableDeclaration
	if !p.match(token.RPAREN) {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)

			if !p.match(token.COMMA) {
				break
			}
			if _, err := p.advance(); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		Func:       funcTok.Position,
		Name:       name,
		Parameters: params,
		Body:       body,
	}, nil
}

// parseParameter parses `name: type`.
func (p *Parser) parseParameter() (*ast.VariableDeclaration, error) {
	name, err := p.consume(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.consume(token.TypeKeywords...)
	if err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{Name: name, Type: typ}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.consume(token.LBRACE)
	if err != nil {
		return nil, err
	}

	block := &ast.Block{Lbrace: lbrace.Position}
	for !p.match(token.RBRACE, token.EOF) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		block.Expressions = append(block.Expressions, expr)
	}

	rbrace, err := p.consume(token.RBRACE)
	if err != nil {
		return nil, err
	}
	block.Rbrace = rbrace.Position
	return block, nil
}

func (p *Parser) parseExpression() (ast.Node, error) {
	switch p.peek().Type {
	case token.LET:
		return p.parseVariableDeclaration()
	case token.LBRACE:
		return p.parseBlock()
	case token.FUNC:
		return p.parseFunction()
	default:
		return p.parseLogicOr()
	}
}

// parseVariableDeclaration parses `let name: type = expression`.
func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	let, err := p.consume(token.LET)
	if err != nil {
		return nil, err
	}
	name, err := p.consume(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.consume(token.TypeKeywords...)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.EQ); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.VariableDeclaration{Keyword: let, Name: name, Type: typ, Value: value}, nil
}

func (p *Parser) parseLogicOr() (ast.Node, error) {
	return p.leftAssoc(p.parseLogicAnd, logical, token.OR)
}

func (p *Parser) parseLogicAnd() (ast.Node, error) {
	return p.leftAssoc(p.parseEquality, logical, token.AND)
}

func (p *Parser) parseEquality() (ast.Node, error) {
	return p.leftAssoc(p.parseComparison, logical, token.EQEQ, token.NOTEQ)
}

func (p *Parser) parseComparison() (ast.Node, error) {
	return p.leftAssoc(p.parseFactor, logical, token.GT, token.GE, token.LT, token.LE)
}

func (p *Parser) parseFactor() (ast.Node, error) {
	return p.leftAssoc(p.parseTerm, binary, token.PLUS, token.MINUS)
}

func (p *Parser) parseTerm() (ast.Node, error) {
	return p.leftAssoc(p.parsePower, binary, token.STAR, token.SLASH)
}

// parsePower folds to the right: a^b^c parses as a^(b^c).
func (p *Parser) parsePower() (ast.Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.match(token.CARET) {
		return base, nil
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}

	exponent, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return &ast.Power{Base: base, Exponent: exponent}, nil
}

// parseUnary accepts a single prefix operator. `- -x` is rejected; write
// `-(-x)` instead.
func (p *Parser) parseUnary() (ast.Node, error) {
	if !p.match(token.BANG, token.MINUS) {
		return p.parsePrimary()
	}

	op, err := p.advance()
	if err != nil {
		return nil, err
	}
	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Operator: op, Operand: operand}, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.peek().Type {
	case token.NUMBER, token.BOOLEAN:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Value: tok}, nil

	case token.IDENTIFIER:
		tok, err := p.advance()
		if err != nil {
			return nil, err
		}
		return &ast.Variable{Name: tok}, nil

	case token.LPAREN:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, newExpectedExpression(p.peek())
}

type buildFunc func(left ast.Node, op token.Token, right ast.Node) ast.Node

func binary(left ast.Node, op token.Token, right ast.Node) ast.Node {
	return &ast.Binary{Left: left, Operator: op, Right: right}
}

func logical(left ast.Node, op token.Token, right ast.Node) ast.Node {
	return &ast.Logical{Left: left, Operator: op, Right: right}
}

// leftAssoc parses `next (op next)*` for ops and folds the operands to the
// left.
func (p *Parser) leftAssoc(next func() (ast.Node, error), build buildFunc, ops ...token.Type) (ast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op, err := p.advance()
		if err != nil {
			return nil, err
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = build(left, op, right)
	}
	return left, nil
}
