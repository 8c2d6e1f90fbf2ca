package lexer

import "finola/token"

// sentinel terminates every source buffer. Scanning it yields EOF.
const sentinel = '\x00'

type cursor struct {
	offset int
	line   int
	column int
}

func (c cursor) position() token.Position {
	return token.Position{Line: c.line, Column: c.column, Offset: c.offset}
}

// Lexer turns source text into tokens, one NextToken call at a time.
// A Lexer is not safe for concurrent use; give every parse its own.
type Lexer struct {
	text []rune
	cur  cursor
}

func New(text string) *Lexer {
	l := &Lexer{}
	l.Init(text)
	return l
}

// Init resets the cursor and loads text, appending the sentinel unless the
// text already ends with one.
func (l *Lexer) Init(text string) {
	runes := []rune(text)
	if len(runes) == 0 || runes[len(runes)-1] != sentinel {
		runes = append(runes, sentinel)
	}
	l.text = runes
	l.cur = cursor{}
}

// NextToken returns the next token. Once the end of input is reached every
// further call returns another EOF token at the same position.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	start := l.cur
	c := l.currentChar()

	switch {
	case isAlpha(c):
		return l.scanIdentifier(start), nil
	case isDigit(c):
		return l.scanNumber(start), nil
	}

	switch c {
	case sentinel:
		return token.Token{Type: token.EOF, Position: start.position()}, nil
	case '+':
		return l.single(start, token.PLUS), nil
	case '-':
		return l.single(start, token.MINUS), nil
	case '*':
		return l.single(start, token.STAR), nil
	case '/':
		return l.single(start, token.SLASH), nil
	case '%':
		return l.single(start, token.MOD), nil
	case '^':
		return l.single(start, token.CARET), nil
	case '(':
		return l.single(start, token.LPAREN), nil
	case ')':
		return l.single(start, token.RPAREN), nil
	case '{':
		return l.single(start, token.LBRACE), nil
	case '}':
		return l.single(start, token.RBRACE), nil
	case '[':
		return l.single(start, token.LBRACKET), nil
	case ']':
		return l.single(start, token.RBRACKET), nil
	case ':':
		return l.single(start, token.COLON), nil
	case ',':
		return l.single(start, token.COMMA), nil
	case '.':
		return l.single(start, token.DOT), nil

	// Operators with an optional trailing '='
	case '=':
		return l.withEqual(start, token.EQ, token.EQEQ), nil
	case '!':
		return l.withEqual(start, token.BANG, token.NOTEQ), nil
	case '>':
		return l.withEqual(start, token.GT, token.GE), nil
	case '<':
		return l.withEqual(start, token.LT, token.LE), nil
	}

	return token.Token{}, &LexError{Char: c, Position: start.position()}
}

// AllTokens scans the remaining input eagerly. The result always ends with
// exactly one EOF token.
func (l *Lexer) AllTokens() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Tokenize is a convenience wrapper around New(text).AllTokens().
func Tokenize(text string) ([]token.Token, error) {
	return New(text).AllTokens()
}

func (l *Lexer) single(start cursor, tt token.Type) token.Token {
	l.advance()
	return l.makeToken(start, tt)
}

func (l *Lexer) withEqual(start cursor, plain, withEq token.Type) token.Token {
	if l.peekChar() == '=' {
		l.advance()
		l.advance()
		return l.makeToken(start, withEq)
	}
	l.advance()
	return l.makeToken(start, plain)
}

func (l *Lexer) scanIdentifier(start cursor) token.Token {
	for isAlphaNumeric(l.currentChar()) {
		l.advance()
	}
	tok := l.makeToken(start, token.IDENTIFIER)
	tok.Type = token.LookupIdent(tok.Lexeme)
	return tok
}

// scanNumber reads digits with at most one fractional part. Integer and
// decimal forms share the NUMBER kind.
func (l *Lexer) scanNumber(start cursor) token.Token {
	for isDigit(l.currentChar()) {
		l.advance()
	}
	if l.currentChar() == '.' {
		l.advance()
		for isDigit(l.currentChar()) {
			l.advance()
		}
	}
	return l.makeToken(start, token.NUMBER)
}

func (l *Lexer) makeToken(start cursor, tt token.Type) token.Token {
	return token.Token{
		Type:     tt,
		Lexeme:   string(l.text[start.offset:l.cur.offset]),
		Position: start.position(),
	}
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.currentChar()) {
		l.advance()
	}
}

// advance moves past the current character and returns the new current
// character. It never moves beyond the sentinel.
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return l.currentChar()
	}

	if isNewline(l.text[l.cur.offset]) {
		l.cur.line++
		l.cur.column = 0
	} else {
		l.cur.column++
	}
	l.cur.offset++
	return l.currentChar()
}

func (l *Lexer) currentChar() rune {
	if l.cur.offset < 0 || l.isAtEnd() {
		return sentinel
	}
	return l.text[l.cur.offset]
}

func (l *Lexer) peekChar() rune {
	if l.isAtEnd() {
		return sentinel
	}
	return l.text[l.cur.offset+1]
}

func (l *Lexer) isAtEnd() bool {
	return l.cur.offset >= len(l.text)-1
}

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\f', '\v', '\r':
		return true
	}
	return isNewline(c)
}

func isNewline(c rune) bool {
	return c == '\n' || c == '\u2028' || c == '\u2029'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c rune) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
