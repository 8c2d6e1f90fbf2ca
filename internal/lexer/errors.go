package lexer

import (
	"fmt"

	"finola/token"
)

// LexError reports a character that starts no token.
type LexError struct {
	Char     rune
	Position token.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unrecognized character %q at %s", e.Char, e.Position)
}
