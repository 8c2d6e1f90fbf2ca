package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// applyChange splices a ranged content change into text. Lines are split the
// same way the lexer splits them and characters count codepoints, matching
// the positions published in diagnostics and semantic tokens.
func applyChange(text string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}

	runes := []rune(text)
	start := offsetAt(runes, change.Range.Start)
	end := max(offsetAt(runes, change.Range.End), start)

	return string(runes[:start]) + change.Text + string(runes[end:])
}

// offsetAt clamps pos to the text: a character past the end of its line
// lands on the line break, a line past the end lands on the end of input.
func offsetAt(runes []rune, pos protocol.Position) int {
	line := protocol.UInteger(0)
	i := 0
	for line < pos.Line {
		if i >= len(runes) {
			return len(runes)
		}
		if isLineBreak(runes[i]) {
			line++
		}
		i++
	}

	for col := protocol.UInteger(0); col < pos.Character; col++ {
		if i >= len(runes) || isLineBreak(runes[i]) {
			break
		}
		i++
	}
	return i
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\u2028' || r == '\u2029'
}
