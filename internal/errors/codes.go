package errors

// Error codes for the Finola front end. They appear in diagnostics and in
// the language server so a failure can be looked up independently of its
// message text.
//
// Error code ranges:
// E0100-E0199: Lexer and parser errors
// E0900-E0999: Reserved for tooling errors

const (
	// E0100: A character that starts no token
	ErrorUnrecognizedCharacter = "E0100"

	// E0101: Input ended in the middle of a construct
	ErrorUnexpectedEOF = "E0101"

	// E0102: A token of the wrong kind
	ErrorUnexpectedToken = "E0102"

	// E0103: No expression where one is required
	ErrorExpectedExpression = "E0103"

	// E0900: Source file could not be read
	ErrorSourceUnreadable = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnrecognizedCharacter:
		return "Source contains a character that is not part of any token"
	case ErrorUnexpectedEOF:
		return "Source ended before the construct being parsed was complete"
	case ErrorUnexpectedToken:
		return "Token does not fit the grammar at this point"
	case ErrorExpectedExpression:
		return "An expression was required but none was found"
	case ErrorSourceUnreadable:
		return "Source file could not be read"
	default:
		return "Unknown error code"
	}
}
