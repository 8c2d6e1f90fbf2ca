// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"slices"
)

type Type int

const (
	ILLEGAL Type = iota
	EOF

	// Identifiers + literals
	NUMBER     // 12, 3.14
	IDENTIFIER // add, foo_bar, x
	BOOLEAN    // true, false

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	CARET
	MOD
	BANG
	EQ
	EQEQ
	NOTEQ
	GT
	GE
	LT
	LE

	// Delimiters
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COLON
	COMMA
	DOT

	// Keywords
	LET
	FUNC
	MODULE
	EXPORT
	IMPORT
	RETURN
	OR
	AND

	// Type keywords
	INT
	LONG
	FLOAT
	DOUBLE
	BOOL
)

var names = [...]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	NUMBER:     "NUMBER",
	IDENTIFIER: "IDENTIFIER",
	BOOLEAN:    "BOOLEAN",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	CARET:      "CARET",
	MOD:        "MOD",
	BANG:       "BANG",
	EQ:         "EQ",
	EQEQ:       "EQEQ",
	NOTEQ:      "NOTEQ",
	GT:         "GT",
	GE:         "GE",
	LT:         "LT",
	LE:         "LE",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	COLON:      "COLON",
	COMMA:      "COMMA",
	DOT:        "DOT",
	LET:        "LET",
	FUNC:       "FUNC",
	MODULE:     "MODULE",
	EXPORT:     "EXPORT",
	IMPORT:     "IMPORT",
	RETURN:     "RETURN",
	OR:         "OR",
	AND:        "AND",
	INT:        "INT",
	LONG:       "LONG",
	FLOAT:      "FLOAT",
	DOUBLE:     "DOUBLE",
	BOOL:       "BOOL",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsTypeKeyword reports whether t names a builtin type (int, long, float, double, bool).
func (t Type) IsTypeKeyword() bool {
	return t >= INT && t <= BOOL
}

// IsKeyword reports whether t is produced from the keyword table.
func (t Type) IsKeyword() bool {
	return t == BOOLEAN || (t >= LET && t <= BOOL)
}

// TypeKeywords lists the kinds accepted where a type annotation is expected.
var TypeKeywords = []Type{INT, LONG, FLOAT, DOUBLE, BOOL}

var keywords = map[string]Type{
	"true":   BOOLEAN,
	"false":  BOOLEAN,
	"return": RETURN,
	"let":    LET,
	"func":   FUNC,
	"module": MODULE,
	"export": EXPORT,
	"import": IMPORT,
	"or":     OR,
	"and":    AND,
	"int":    INT,
	"long":   LONG,
	"float":  FLOAT,
	"double": DOUBLE,
	"bool":   BOOL,
}

// LookupIdent maps a scanned word to its keyword kind, or IDENTIFIER.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENTIFIER
}

// Keywords returns the keyword spellings, used for editor completion.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

type Position struct {
	Line   int // 0-based
	Column int // 0-based, reset on every newline
	Offset int // 0-based codepoint index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Type     Type
	Lexeme   string
	Position Position
}

func (t Token) String() string {
	if t.Type == EOF {
		return fmt.Sprintf("EOF @%s", t.Position)
	}
	return fmt.Sprintf("%s %q @%s", t.Type, t.Lexeme, t.Position)
}
