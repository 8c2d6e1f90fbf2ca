package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"finola/token"
)

var FinolaLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Keyword tokens come from retyping Ident in keywordMapper; the
		// pattern itself never matches.
		{"Keyword", `[^\x00-\x{10FFFF}]`, nil},

		{"Ident", `[a-zA-Z_][a-zA-Z_0-9]*`, nil},

		// Integer and decimal literals share one kind
		{"Number", `[0-9]+(\.[0-9]*)?`, nil},

		{"Operator", `==|!=|>=|<=|[-+*/%^!=<>]`, nil},

		{"Punctuation", `[(){}\[\]:,.]`, nil},

		{"Whitespace", `[ \t\n\v\f\r\x{2028}\x{2029}]+`, nil},
	},
})

// keywordMapper turns identifiers that spell a keyword into Keyword tokens
// so that @Ident never captures a reserved word.
func keywordMapper(tok lexer.Token) (lexer.Token, error) {
	if token.LookupIdent(tok.Value) != token.IDENTIFIER {
		tok.Type = FinolaLexer.Symbols()["Keyword"]
	}
	return tok, nil
}
