package parser

import (
	"slices"

	"finola/token"
)

// advance pulls the next token from the source. The parser never moves past
// EOF.
func (p *Parser) advance() (token.Token, error) {
	p.previous = p.current
	if p.current.Type == token.EOF {
		return p.previous, nil
	}

	tok, err := p.src.NextToken()
	if err != nil {
		return p.previous, err
	}
	p.current = tok
	return p.previous, nil
}

func (p *Parser) peek() token.Token {
	return p.current
}

func (p *Parser) check(tt token.Type) bool {
	return p.current.Type == tt
}

// match reports whether the current token is one of kinds. It does not
// consume anything.
func (p *Parser) match(kinds ...token.Type) bool {
	return slices.Contains(kinds, p.current.Type)
}

// consume returns the current token if it is one of kinds and moves past it.
// A matched EOF is returned without advancing.
func (p *Parser) consume(kinds ...token.Type) (token.Token, error) {
	if p.match(kinds...) {
		if p.check(token.EOF) {
			return p.current, nil
		}
		return p.advance()
	}

	if p.check(token.EOF) {
		return token.Token{}, newUnexpectedEOF(kinds, p.current)
	}
	return token.Token{}, newUnexpectedToken(kinds, p.current)
}
