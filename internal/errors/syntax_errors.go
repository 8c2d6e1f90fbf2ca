package errors

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"finola/internal/lexer"
	"finola/internal/parser"
	"finola/token"
)

// ErrorBuilder provides a fluent interface for creating errors with suggestions
type ErrorBuilder struct {
	err CompilerError
}

// NewSyntaxError creates a new error builder
func NewSyntaxError(code, message string, pos token.Position) *ErrorBuilder {
	return &ErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *ErrorBuilder) WithLength(length int) *ErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *ErrorBuilder) WithSuggestion(message string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *ErrorBuilder) WithReplacement(message, replacement string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

func (b *ErrorBuilder) WithNote(note string) *ErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *ErrorBuilder) WithHelp(help string) *ErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *ErrorBuilder) Build() CompilerError {
	return b.err
}

// FromError converts a lexer or parser error into a CompilerError. The second
// result is false when err is neither; the returned CompilerError then only
// carries the message.
func FromError(err error) (CompilerError, bool) {
	var ce CompilerError
	if stderrors.As(err, &ce) {
		return ce, true
	}

	var lexErr *lexer.LexError
	if stderrors.As(err, &lexErr) {
		return UnrecognizedCharacter(lexErr.Char, lexErr.Position), true
	}

	var parseErr *parser.ParseError
	if stderrors.As(err, &parseErr) {
		switch parseErr.Kind {
		case parser.UnexpectedEOF:
			return UnexpectedEOF(parseErr.Expected, parseErr.Position), true
		case parser.ExpectedExpression:
			return ExpectedExpression(parseErr.Found), true
		default:
			return UnexpectedToken(parseErr.Expected, parseErr.Found), true
		}
	}

	return CompilerError{Level: Error, Message: err.Error()}, false
}

func UnrecognizedCharacter(char rune, pos token.Position) CompilerError {
	message := fmt.Sprintf("unrecognized character %q", char)
	builder := NewSyntaxError(ErrorUnrecognizedCharacter, message, pos)

	switch char {
	case ';':
		builder.WithSuggestion("remove the ';', expressions in a block need no separator")
	case '"', '\'':
		builder.WithNote("Finola has no string literals")
	case '&', '|':
		builder.WithSuggestion("use the keywords 'and' and 'or' for logical operators")
	default:
		builder.WithHelp("remove the character or replace it with a valid token")
	}
	return builder.Build()
}

func UnexpectedEOF(expected []token.Type, pos token.Position) CompilerError {
	builder := NewSyntaxError(ErrorUnexpectedEOF, "unexpected end of input", pos).
		WithHelp("the input ended before the construct was complete")

	if len(expected) > 0 {
		builder.WithNote("expected " + describeExpected(expected))
	}
	if slices.Contains(expected, token.RBRACE) {
		builder.WithSuggestion("add the missing '}'")
	} else if slices.Contains(expected, token.RPAREN) {
		builder.WithSuggestion("add the missing ')'")
	}
	return builder.Build()
}

func UnexpectedToken(expected []token.Type, found token.Token) CompilerError {
	message := fmt.Sprintf("expected %s, found '%s'", describeExpected(expected), found.Lexeme)
	builder := NewSyntaxError(ErrorUnexpectedToken, message, found.Position).
		WithLength(utf8.RuneCountInString(found.Lexeme))

	switch {
	case slices.Contains(expected, token.COLON) && found.Type.IsTypeKeyword():
		builder.WithReplacement("add ':' between the name and its type", ": "+found.Lexeme)
	case slices.Contains(expected, token.COLON) && found.Type == token.EQ:
		builder.WithSuggestion("declare the type before the value, e.g. 'let x: int = 1'")
	case slices.Contains(expected, token.IDENTIFIER) && found.Type == token.RPAREN:
		builder.WithSuggestion("remove the trailing ','")
	case found.Type == token.MOD:
		builder.WithNote("'%' is reserved and not yet an operator")
	case found.Type == token.IDENTIFIER:
		for _, name := range findSimilarNames(found.Lexeme, keywordSpellings(expected)) {
			builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", name))
		}
	}

	if slices.Equal(expected, token.TypeKeywords) {
		builder.WithNote("the available types are " + strings.Join(keywordSpellings(token.TypeKeywords), ", "))
	}
	return builder.Build()
}

func ExpectedExpression(found token.Token) CompilerError {
	message := "expected expression"
	length := utf8.RuneCountInString(found.Lexeme)
	if found.Type == token.EOF {
		message += ", found end of input"
	} else {
		message += fmt.Sprintf(", found '%s'", found.Lexeme)
	}

	builder := NewSyntaxError(ErrorExpectedExpression, message, found.Position).
		WithLength(length).
		WithNote("an expression starts with a number, 'true', 'false', a name, '(', '!', '-', '{', 'let' or 'func'")

	if found.Type == token.MINUS || found.Type == token.BANG {
		builder.WithSuggestion(fmt.Sprintf("wrap the operand in parentheses, e.g. '%s(%s...)'", found.Lexeme, found.Lexeme))
	}
	return builder.Build()
}

// describeExpected renders token kinds the way a user would type them.
func describeExpected(kinds []token.Type) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = spelling(k)
	}
	if len(names) == 1 {
		return names[0]
	}
	return "one of " + strings.Join(names, ", ")
}

var punctuation = map[token.Type]string{
	token.PLUS: "'+'", token.MINUS: "'-'", token.STAR: "'*'", token.SLASH: "'/'",
	token.CARET: "'^'", token.MOD: "'%'", token.BANG: "'!'", token.EQ: "'='",
	token.EQEQ: "'=='", token.NOTEQ: "'!='", token.GT: "'>'", token.GE: "'>='",
	token.LT: "'<'", token.LE: "'<='", token.LPAREN: "'('", token.RPAREN: "')'",
	token.LBRACE: "'{'", token.RBRACE: "'}'", token.LBRACKET: "'['",
	token.RBRACKET: "']'", token.COLON: "':'", token.COMMA: "','", token.DOT: "'.'",
	token.NUMBER: "number", token.IDENTIFIER: "identifier", token.BOOLEAN: "boolean",
	token.EOF: "end of input",
}

func spelling(k token.Type) string {
	if s, ok := punctuation[k]; ok {
		return s
	}
	if names := keywordSpellings([]token.Type{k}); len(names) == 1 {
		return "'" + names[0] + "'"
	}
	return k.String()
}

// keywordSpellings returns the source spelling of every keyword kind in kinds.
func keywordSpellings(kinds []token.Type) []string {
	var names []string
	for _, kind := range kinds {
		for _, word := range token.Keywords() {
			if kind != token.BOOLEAN && token.LookupIdent(word) == kind {
				names = append(names, word)
			}
		}
	}
	return names
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(ra)][len(rb)]
}
