package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	ferrors "finola/internal/errors"
)

// ConvertError turns a lexer or parser failure into a single diagnostic.
// Token positions are already 0-based, so they map onto LSP positions
// directly. The range covers the offending lexeme, at least one character.
func ConvertError(err error) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}

	ce, _ := ferrors.FromError(err)

	length := max(ce.Length, 1)
	start := protocol.Position{
		Line:      protocol.UInteger(ce.Position.Line),
		Character: protocol.UInteger(ce.Position.Column),
	}
	end := start
	end.Character += protocol.UInteger(length)

	diagnostic := protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("finola"),
		Message:  ce.Message,
	}
	if ce.Code != "" {
		diagnostic.Code = &protocol.IntegerOrString{Value: ce.Code}
	}
	for _, note := range ce.Notes {
		diagnostic.Message += "\nnote: " + note
	}
	if ce.HelpText != "" {
		diagnostic.Message += "\nhelp: " + ce.HelpText
	}

	return []protocol.Diagnostic{diagnostic}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
