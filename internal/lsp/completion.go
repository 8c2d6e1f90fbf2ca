package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"finola/internal/ast"
	"finola/token"
)

func completionItems(module *ast.Module) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}

	if module != nil {
		for _, fn := range module.Functions() {
			items = append(items, protocol.CompletionItem{
				Label:  fn.Name.Lexeme,
				Kind:   ptrCompletionKind(protocol.CompletionItemKindFunction),
				Detail: ptrString(signature(fn)),
			})
		}
	}

	for _, word := range token.Keywords() {
		kind := protocol.CompletionItemKindKeyword
		if token.LookupIdent(word).IsTypeKeyword() {
			kind = protocol.CompletionItemKindTypeParameter
		}
		items = append(items, protocol.CompletionItem{
			Label: word,
			Kind:  ptrCompletionKind(kind),
		})
	}

	return items
}

// signature renders "func add(a: int, b: int)".
func signature(fn *ast.FunctionDeclaration) string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = p.String()
	}
	return "func " + fn.Name.Lexeme + "(" + strings.Join(params, ", ") + ")"
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
