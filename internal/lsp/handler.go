package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"finola/internal/ast"
	"finola/internal/parser"
)

// The semantic token legend advertised to clients. Token type and modifier
// values sent on the wire are indexes into these slices.
var SemanticTokenTypes = []string{
	"function",
	"parameter",
	"variable",
	"type",
	"number",
	"keyword",
	"operator",
}

var SemanticTokenModifiers = []string{
	"declaration",
}

var log = commonlog.GetLogger("finola.lsp")

// FinolaHandler implements the LSP server handlers for Finola documents.
// Documents are keyed by local path and hold the text last sent by the
// client.
type FinolaHandler struct {
	mu      sync.RWMutex
	content map[string]string
	modules map[string]*ast.Module
}

func NewFinolaHandler() *FinolaHandler {
	return &FinolaHandler{
		content: make(map[string]string),
		modules: make(map[string]*ast.Module),
	}
}

// Handler wires h into a glsp protocol handler.
func (h *FinolaHandler) Handler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

// Initialize responds to the client's initialize request and advertises the server's capabilities
func (h *FinolaHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindIncremental),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: "finola",
		},
	}, nil
}

func (h *FinolaHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *FinolaHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *FinolaHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *FinolaHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	diagnostics := h.update(path, params.TextDocument.Text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidChange applies the content changes in order. Whole-document
// changes replace the text; ranged changes are spliced in.
func (h *FinolaHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.RLock()
	text := h.content[path]
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, c)
		default:
			log.Warningf("ignoring content change of type %T", change)
		}
	}

	diagnostics := h.update(path, text)
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

func (h *FinolaHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.modules, path)

	return nil
}

// TextDocumentCompletion offers the functions of the last module that parsed
// cleanly, then every keyword.
func (h *FinolaHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	module := h.modules[path]
	h.mu.RUnlock()

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(module),
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *FinolaHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Debugf("semantic tokens for %s", params.TextDocument.URI)

	rawURI := params.TextDocument.URI
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, err
	}

	text, module, err := h.getOrLoad(ctx, path, rawURI)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(text, module)
	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(tokens),
	}, nil
}

// getOrLoad returns the open document at path, reading it from disk when
// the client asks about a document it never opened.
func (h *FinolaHandler) getOrLoad(ctx *glsp.Context, path string, rawURI protocol.DocumentUri) (string, *ast.Module, error) {
	h.mu.RLock()
	text, ok := h.content[path]
	module := h.modules[path]
	h.mu.RUnlock()

	if ok {
		return text, module, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	diagnostics := h.update(path, string(content))
	sendDiagnosticNotification(ctx, rawURI, diagnostics)

	h.mu.RLock()
	module = h.modules[path]
	h.mu.RUnlock()

	return string(content), module, nil
}

// update stores text for path and parses it. A module is only stored when the
// parse succeeds; otherwise the diagnostics describe the failure.
func (h *FinolaHandler) update(path, text string) []protocol.Diagnostic {
	module, err := parser.ParseSource(text)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.content[path] = text
	if err != nil {
		delete(h.modules, path)
		return ConvertError(err)
	}
	h.modules[path] = module
	return []protocol.Diagnostic{}
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// /C:/... becomes C:/... on Windows
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
