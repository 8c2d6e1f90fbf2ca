package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"finola/internal/lsp"
)

const adder = `module {
  func add(a: int, b: int) {
    let s: int = a + b
    s ^ 2
  }
}`

const testURI = "file:///tmp/finola/adder.fn"

type notification struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func newContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, _ := params.(*protocol.PublishDiagnosticsParams)
			*sent = append(*sent, notification{method: method, params: p})
		},
	}
}

func open(t *testing.T, h *lsp.FinolaHandler, ctx *glsp.Context, uri, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "finola", Text: text},
	})
	require.NoError(t, err)
}

func TestInitializeAdvertisesLegend(t *testing.T) {
	handler := lsp.NewFinolaHandler()

	result, err := handler.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)

	opts, ok := res.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	require.Equal(t, lsp.SemanticTokenTypes, opts.Legend.TokenTypes)
	require.Equal(t, lsp.SemanticTokenModifiers, opts.Legend.TokenModifiers)

	sync, ok := res.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	require.NotNil(t, sync.Change)
	require.Equal(t, protocol.TextDocumentSyncKindIncremental, *sync.Change)
	require.Equal(t, "finola", res.ServerInfo.Name)
}

func TestHandlerWiring(t *testing.T) {
	h := lsp.NewFinolaHandler().Handler()
	require.NotNil(t, h.Initialize)
	require.NotNil(t, h.SetTrace)
	require.NotNil(t, h.TextDocumentDidChange)
	require.NotNil(t, h.TextDocumentSemanticTokensFull)
}

func TestDidOpenValidDocumentClearsDiagnostics(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()

	open(t, handler, newContext(&sent), testURI, adder)

	require.Len(t, sent, 1)
	require.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, sent[0].method)
	require.Equal(t, testURI, sent[0].params.URI)
	require.NotNil(t, sent[0].params.Diagnostics)
	require.Empty(t, sent[0].params.Diagnostics)
}

func TestDidOpenReportsParseError(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()

	open(t, handler, newContext(&sent), testURI, "module {\n  func f( {}\n}")

	require.Len(t, sent, 1)
	diags := sent[0].params.Diagnostics
	require.Len(t, diags, 1)

	d := diags[0]
	require.Equal(t, protocol.Position{Line: 1, Character: 10}, d.Range.Start)
	require.Equal(t, protocol.Position{Line: 1, Character: 11}, d.Range.End)
	require.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.Equal(t, "E0102", d.Code.Value)
	require.Contains(t, d.Message, "found '{'")
	require.Equal(t, "finola", *d.Source)
}

func TestDidOpenReportsLexError(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()

	open(t, handler, newContext(&sent), testURI, "module { @ }")

	diags := sent[0].params.Diagnostics
	require.Len(t, diags, 1)
	require.Equal(t, "E0100", diags[0].Code.Value)
	require.Equal(t, protocol.Position{Line: 0, Character: 9}, diags[0].Range.Start)
}

func TestDidChangeReplacesWholeDocument(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()
	ctx := newContext(&sent)

	open(t, handler, ctx, testURI, "module {")
	require.Len(t, sent[0].params.Diagnostics, 1)

	err := handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: adder}},
	})
	require.NoError(t, err)

	require.Len(t, sent, 2)
	require.Empty(t, sent[1].params.Diagnostics)
}

func TestDidChangeAppliesRangedEdit(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()
	ctx := newContext(&sent)

	open(t, handler, ctx, testURI, "module {\n  func f() { x }\n}")

	// rename f to sum
	err := handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 1, Character: 7},
				End:   protocol.Position{Line: 1, Character: 8},
			},
			Text: "sum",
		}},
	})
	require.NoError(t, err)
	require.Empty(t, sent[1].params.Diagnostics)

	list := complete(t, handler, testURI)
	require.Equal(t, "sum", list.Items[0].Label)
	require.Equal(t, "func sum()", *list.Items[0].Detail)
}

func TestDidChangeAppliesEditsInOrder(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()
	ctx := newContext(&sent)

	open(t, handler, ctx, testURI, "module {\n  func f() { x }\n}")

	edit := func(startLine, startChar, endLine, endChar uint32, text string) protocol.TextDocumentContentChangeEvent {
		return protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{
				Start: protocol.Position{Line: startLine, Character: startChar},
				End:   protocol.Position{Line: endLine, Character: endChar},
			},
			Text: text,
		}
	}

	err := handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
		},
		ContentChanges: []any{
			// break the module: drop the closing brace of f's body
			edit(1, 15, 1, 16, ""),
			// then add a second function and restore the brace
			edit(1, 15, 1, 15, "}\n  func g(n: int) { n }"),
		},
	})
	require.NoError(t, err)
	require.Len(t, sent, 2)
	require.Empty(t, sent[1].params.Diagnostics)

	list := complete(t, handler, testURI)
	require.Equal(t, "f", list.Items[0].Label)
	require.Equal(t, "g", list.Items[1].Label)
	require.Equal(t, "func g(n: int)", *list.Items[1].Detail)
}

func complete(t *testing.T, handler *lsp.FinolaHandler, uri string) *protocol.CompletionList {
	t.Helper()
	result, err := handler.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)

	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)
	return list
}

func TestCompletionListsFunctionsAndKeywords(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()
	open(t, handler, newContext(&sent), testURI, adder)

	list := complete(t, handler, testURI)

	labels := map[string]protocol.CompletionItemKind{}
	for _, item := range list.Items {
		labels[item.Label] = *item.Kind
	}

	require.Equal(t, protocol.CompletionItemKindFunction, labels["add"])
	require.Equal(t, protocol.CompletionItemKindKeyword, labels["let"])
	require.Equal(t, protocol.CompletionItemKindKeyword, labels["module"])
	require.Equal(t, protocol.CompletionItemKindTypeParameter, labels["double"])
	require.Equal(t, "func add(a: int, b: int)", *list.Items[0].Detail)
}

func TestCompletionWithoutDocumentOffersKeywords(t *testing.T) {
	list := complete(t, lsp.NewFinolaHandler(), "file:///nowhere.fn")
	require.NotEmpty(t, list.Items)
	require.Equal(t, protocol.CompletionItemKindKeyword, *list.Items[0].Kind)
}

func TestDidCloseForgetsDocument(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()
	ctx := newContext(&sent)
	open(t, handler, ctx, testURI, adder)

	err := handler.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	list := complete(t, handler, testURI)
	for _, item := range list.Items {
		require.NotEqual(t, "add", item.Label)
	}
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()
	ctx := newContext(&sent)
	open(t, handler, ctx, testURI, adder)

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 17)

	decl := []string{"declaration"}
	assertToken(t, &decoded[0], 1, 1, 6, "keyword", nil)
	assertToken(t, &decoded[1], 2, 3, 4, "keyword", nil)
	assertToken(t, &decoded[2], 2, 8, 3, "function", decl)
	assertToken(t, &decoded[3], 2, 12, 1, "parameter", decl)
	assertToken(t, &decoded[4], 2, 15, 3, "type", nil)
	assertToken(t, &decoded[5], 2, 20, 1, "parameter", decl)
	assertToken(t, &decoded[6], 2, 23, 3, "type", nil)
	assertToken(t, &decoded[7], 3, 5, 3, "keyword", nil)
	assertToken(t, &decoded[8], 3, 9, 1, "variable", decl)
	assertToken(t, &decoded[9], 3, 12, 3, "type", nil)
	assertToken(t, &decoded[10], 3, 16, 1, "operator", nil)
	assertToken(t, &decoded[11], 3, 18, 1, "parameter", nil)
	assertToken(t, &decoded[12], 3, 20, 1, "operator", nil)
	assertToken(t, &decoded[13], 3, 22, 1, "parameter", nil)
	assertToken(t, &decoded[14], 4, 5, 1, "variable", nil)
	assertToken(t, &decoded[15], 4, 7, 1, "operator", nil)
	assertToken(t, &decoded[16], 4, 9, 1, "number", nil)
}

func TestSemanticTokensForUnopenedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lone.fn")
	require.NoError(t, os.WriteFile(path, []byte("module { func f() { true } }"), 0o644))
	uri := "file://" + filepath.ToSlash(path)

	var sent []notification
	handler := lsp.NewFinolaHandler()

	tokens, err := handler.TextDocumentSemanticTokensFull(newContext(&sent), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, sent, 1, "diagnostics are published for a file read from disk")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 4)
	assertToken(t, &decoded[2], 1, 15, 1, "function", []string{"declaration"})
	assertToken(t, &decoded[3], 1, 21, 4, "keyword", nil)
}

func TestSemanticTokensSurviveParseErrors(t *testing.T) {
	var sent []notification
	handler := lsp.NewFinolaHandler()
	ctx := newContext(&sent)
	open(t, handler, ctx, testURI, "module { func f( 1 ")

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 4)
	assertToken(t, &decoded[2], 1, 15, 1, "variable", nil)
	assertToken(t, &decoded[3], 1, 18, 1, "number", nil)
}

func TestSemanticTokensMissingFile(t *testing.T) {
	_, err := lsp.NewFinolaHandler().TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///does/not/exist.fn"},
	})
	require.Error(t, err)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // reported 1-based for readability
			Char:      char + 1,
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
