package parser

import (
	"fmt"
	"slices"
	"strings"

	"finola/token"
)

type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	ExpectedExpression
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEOF:
		return "unexpected end of input"
	case ExpectedExpression:
		return "expected expression"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is returned for the first grammar violation in the input.
// Expected lists the token kinds that would have been accepted; it is empty
// for ExpectedExpression.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Expected []token.Type
	Found    token.Token
	Position token.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

// AtEOF reports whether the parser ran out of input. Feeding more text may
// turn such a failure into a successful parse.
func (e *ParseError) AtEOF() bool {
	return e.Found.Type == token.EOF
}

func newUnexpectedEOF(expected []token.Type, found token.Token) *ParseError {
	return &ParseError{
		Kind:     UnexpectedEOF,
		Message:  "unexpected end of input",
		Expected: slices.Clone(expected),
		Found:    found,
		Position: found.Position,
	}
}

func newUnexpectedToken(expected []token.Type, found token.Token) *ParseError {
	return &ParseError{
		Kind:     UnexpectedToken,
		Message:  fmt.Sprintf("expected %s but found %s (%q)", describeKinds(expected), found.Type, found.Lexeme),
		Expected: slices.Clone(expected),
		Found:    found,
		Position: found.Position,
	}
}

func newExpectedExpression(found token.Token) *ParseError {
	return &ParseError{
		Kind:     ExpectedExpression,
		Message:  "expected expression",
		Found:    found,
		Position: found.Position,
	}
}

func describeKinds(kinds []token.Type) string {
	if len(kinds) == 1 {
		return kinds[0].String()
	}

	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "one of [" + strings.Join(names, " | ") + "]"
}
