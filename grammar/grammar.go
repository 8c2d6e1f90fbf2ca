package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is a whole source file: exactly one module.
type Program struct {
	Pos    lexer.Position
	Module *Module `@@`

	index *positionIndex
}

type Module struct {
	Pos       lexer.Position
	Functions []*Function `"module" "{" @@*`
	Close     *Closer     `@@`
}

type Function struct {
	Pos    lexer.Position
	Name   *PosIdent `"func" @@ "("`
	Params []*Param  `( @@ ( "," @@ )* )? ")"`
	Body   *Block    `@@`
}

type PosIdent struct {
	Pos   lexer.Position
	Value string `@Ident`
}

type Param struct {
	Pos  lexer.Position
	Name string    `@Ident ":"`
	Type *TypeName `@@`
}

type TypeName struct {
	Pos  lexer.Position
	Name string `@("int" | "long" | "float" | "double" | "bool")`
}

type Block struct {
	Pos         lexer.Position
	Expressions []*Expression `"{" @@*`
	Close       *Closer       `@@`
}

// Closer records where a block or module ends.
type Closer struct {
	Pos   lexer.Position
	Brace string `@"}"`
}

type Expression struct {
	Pos      lexer.Position
	Let      *Let      `  @@`
	Block    *Block    `| @@`
	Function *Function `| @@`
	Or       *LogicOr  `| @@`
}

type Let struct {
	Pos   lexer.Position
	Name  *PosIdent   `"let" @@ ":"`
	Type  *TypeName   `@@ "="`
	Value *Expression `@@`
}

type LogicOr struct {
	Left *LogicAnd    `@@`
	Rest []*OrOperand `@@*`
}

type OrOperand struct {
	Pos   lexer.Position
	Op    string    `@"or"`
	Right *LogicAnd `@@`
}

type LogicAnd struct {
	Left *Equality     `@@`
	Rest []*AndOperand `@@*`
}

type AndOperand struct {
	Pos   lexer.Position
	Op    string    `@"and"`
	Right *Equality `@@`
}

type Equality struct {
	Left *Comparison        `@@`
	Rest []*EqualityOperand `@@*`
}

type EqualityOperand struct {
	Pos   lexer.Position
	Op    string      `@("==" | "!=")`
	Right *Comparison `@@`
}

type Comparison struct {
	Left *Factor              `@@`
	Rest []*ComparisonOperand `@@*`
}

type ComparisonOperand struct {
	Pos   lexer.Position
	Op    string  `@(">=" | "<=" | ">" | "<")`
	Right *Factor `@@`
}

type Factor struct {
	Left *Term            `@@`
	Rest []*FactorOperand `@@*`
}

type FactorOperand struct {
	Pos   lexer.Position
	Op    string `@("+" | "-")`
	Right *Term  `@@`
}

type Term struct {
	Left *Power         `@@`
	Rest []*TermOperand `@@*`
}

type TermOperand struct {
	Pos   lexer.Position
	Op    string `@("*" | "/")`
	Right *Power `@@`
}

// Power recurses on the right, so a^b^c groups as a^(b^c).
type Power struct {
	Base     *Unary `@@`
	Exponent *Power `( "^" @@ )?`
}

type Unary struct {
	Pos     lexer.Position
	Op      string   `@("!" | "-")?`
	Operand *Primary `@@`
}

type Primary struct {
	Pos    lexer.Position
	Number *string     `  @Number`
	Bool   *string     `| @("true" | "false")`
	Ident  *string     `| @Ident`
	Group  *Expression `| "(" @@ ")"`
}
