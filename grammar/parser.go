package grammar

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/token"
)

var (
	programParser    = buildParser[Program]()
	expressionParser = buildParser[Expression]()
)

func buildParser[G any]() *participle.Parser[G] {
	p, err := participle.Build[G](
		participle.Lexer(FinolaLexer),
		participle.Map(keywordMapper, "Ident"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}

	return p
}

// ParseString parses a module. Errors are participle.Error values carrying
// 1-based positions.
func ParseString(name, source string) (*Program, error) {
	program, err := programParser.ParseString(name, source)
	if err != nil {
		return nil, err
	}
	program.index = newPositionIndex(source)
	return program, nil
}

func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseString(path, string(source))
}

// ParseExpression parses a single expression and converts it to the AST.
func ParseExpression(name, source string) (ast.Node, error) {
	expr, err := expressionParser.ParseString(name, source)
	if err != nil {
		return nil, err
	}
	c := converter{index: newPositionIndex(source)}
	return c.expression(expr), nil
}

// EBNF returns the module grammar in participle's EBNF notation.
func EBNF() string {
	return programParser.String()
}

// AsCompilerError converts a participle error into the diagnostic form used
// by the rest of the toolchain. source is needed to translate positions.
func AsCompilerError(source string, err error) (ferrors.CompilerError, bool) {
	var perr participle.Error
	if !stderrors.As(err, &perr) {
		return ferrors.CompilerError{Level: ferrors.Error, Message: err.Error()}, false
	}

	pos := newPositionIndex(source).at(perr.Position())

	var lexErr *lexer.Error
	if stderrors.As(err, &lexErr) && perr.Position().Offset < len(source) {
		char := []rune(source[perr.Position().Offset:])[0]
		return ferrors.UnrecognizedCharacter(char, pos), true
	}

	var unexpected *participle.UnexpectedTokenError
	atEOF := perr.Position().Offset >= len(source)
	if (stderrors.As(err, &unexpected) && unexpected.Unexpected.EOF()) || atEOF {
		return ferrors.NewSyntaxError(ferrors.ErrorUnexpectedEOF, "unexpected end of input", pos).
			WithNote(perr.Message()).
			Build(), true
	}

	found := ""
	if unexpected != nil {
		found = unexpected.Unexpected.Value
	}
	return ferrors.NewSyntaxError(ferrors.ErrorUnexpectedToken, perr.Message(), pos).
		WithLength(len([]rune(found))).
		Build(), true
}

// positionIndex maps byte offsets to 0-based token positions using the
// same line terminators as the hand-written lexer.
type positionIndex struct {
	positions []token.Position
}

func newPositionIndex(source string) *positionIndex {
	idx := &positionIndex{positions: make([]token.Position, len(source)+1)}

	var cur token.Position
	for offset, r := range source {
		idx.positions[offset] = cur
		cur.Offset++
		if r == '\n' || r == '\u2028' || r == '\u2029' {
			cur.Line++
			cur.Column = 0
		} else {
			cur.Column++
		}
	}
	idx.positions[len(source)] = cur
	return idx
}

func (idx *positionIndex) at(pos lexer.Position) token.Position {
	if idx == nil || pos.Offset < 0 || pos.Offset >= len(idx.positions) {
		return token.Position{Line: max(0, pos.Line-1), Column: max(0, pos.Column-1), Offset: pos.Offset}
	}
	return idx.positions[pos.Offset]
}
