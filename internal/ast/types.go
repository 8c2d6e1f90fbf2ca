package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Expressions
	LITERAL
	VARIABLE
	UNARY
	POWER
	BINARY
	LOGICAL

	// Structure
	BLOCK
	VARIABLE_DECLARATION
	FUNCTION_DECLARATION
	MODULE
)

var nodeTypeNames = [...]string{
	ILLEGAL:              "ILLEGAL",
	LITERAL:              "LITERAL",
	VARIABLE:             "VARIABLE",
	UNARY:                "UNARY",
	POWER:                "POWER",
	BINARY:               "BINARY",
	LOGICAL:              "LOGICAL",
	BLOCK:                "BLOCK",
	VARIABLE_DECLARATION: "VARIABLE_DECLARATION",
	FUNCTION_DECLARATION: "FUNCTION_DECLARATION",
	MODULE:               "MODULE",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(?)"
}

// DeclarationKind tags the entries of a module body.
type DeclarationKind int

const (
	FunctionDecl DeclarationKind = iota
)

func (k DeclarationKind) String() string {
	switch k {
	case FunctionDecl:
		return "function"
	default:
		return "unknown"
	}
}
