package lsp

import (
	"maps"
	"slices"
	"unicode/utf8"

	"finola/internal/ast"
	"finola/internal/lexer"
	"finola/token"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask over SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const declarationModifier = 1 << 0

type identifierRole struct {
	tokenType string
	modifiers int
}

// collectSemanticTokens classifies every token of text. Identifiers are
// resolved against module when it is available; a document that failed to
// parse still gets keyword, number and operator highlighting for the tokens
// before the first lexical error.
func collectSemanticTokens(text string, module *ast.Module) []SemanticToken {
	tokens, _ := lexer.Tokenize(text)

	roles := map[int]identifierRole{}
	if module != nil {
		resolveRoles(module, nil, roles)
	}

	var result []SemanticToken
	for _, tok := range tokens {
		tokenType, modifiers := classify(tok, roles)
		if tokenType == "" {
			continue
		}
		result = append(result, makeToken(tok, tokenType, modifiers))
	}
	return result
}

func classify(tok token.Token, roles map[int]identifierRole) (string, int) {
	switch {
	case tok.Type == token.IDENTIFIER:
		if role, ok := roles[tok.Position.Offset]; ok {
			return role.tokenType, role.modifiers
		}
		return "variable", 0
	case tok.Type.IsTypeKeyword():
		return "type", 0
	case tok.Type.IsKeyword():
		return "keyword", 0
	case tok.Type == token.NUMBER:
		return "number", 0
	case tok.Type >= token.PLUS && tok.Type <= token.LE:
		return "operator", 0
	}
	return "", 0
}

// resolveRoles records the role of every identifier in n, keyed by offset.
// params holds the parameter names visible from enclosing functions.
func resolveRoles(n ast.Node, params map[string]bool, roles map[int]identifierRole) {
	switch n := n.(type) {
	case *ast.FunctionDeclaration:
		roles[n.Name.Position.Offset] = identifierRole{"function", declarationModifier}

		scope := maps.Clone(params)
		if scope == nil {
			scope = map[string]bool{}
		}
		for _, param := range n.Parameters {
			scope[param.Name.Lexeme] = true
			roles[param.Name.Position.Offset] = identifierRole{"parameter", declarationModifier}
		}
		if n.Body != nil {
			resolveRoles(n.Body, scope, roles)
		}
		return
	case *ast.VariableDeclaration:
		if !n.IsParameter() {
			roles[n.Name.Position.Offset] = identifierRole{"variable", declarationModifier}
		}
	case *ast.Variable:
		if params[n.Name.Lexeme] {
			roles[n.Name.Position.Offset] = identifierRole{"parameter", 0}
		}
	}

	for _, child := range ast.Children(n) {
		resolveRoles(child, params, roles)
	}
}

func makeToken(tok token.Token, tokenType string, modifiers int) SemanticToken {
	return SemanticToken{
		Line:           uint32(tok.Position.Line),
		StartChar:      uint32(tok.Position.Column),
		Length:         uint32(utf8.RuneCountInString(tok.Lexeme)),
		TokenType:      slices.Index(SemanticTokenTypes, tokenType),
		TokenModifiers: modifiers,
	}
}

// encodeSemanticTokens produces the LSP wire format: five integers per token,
// with line and start character relative to the previous token.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}
	return data
}
