package ast

import "finola/token"

// Node is implemented by exactly the node types in this package. The
// unexported marker keeps the set closed so type switches over Node can be
// exhaustive.
type Node interface {
	NodePos() token.Position
	NodeType() NodeType
	String() string

	node()
}

type Literal struct {
	Value token.Token // NUMBER or BOOLEAN
}

type Variable struct {
	Name token.Token
}

type Unary struct {
	Operator token.Token // BANG or MINUS
	Operand  Node
}

// Power is exponentiation. It associates to the right: a^b^c is a^(b^c).
type Power struct {
	Base     Node
	Exponent Node
}

// Binary holds the arithmetic operators + - * /.
type Binary struct {
	Left     Node
	Operator token.Token
	Right    Node
}

// Logical holds or, and, and the equality and comparison operators.
type Logical struct {
	Left     Node
	Operator token.Token
	Right    Node
}

type Block struct {
	Lbrace      token.Position
	Rbrace      token.Position
	Expressions []Node
}

// VariableDeclaration is either a let binding (Keyword is the LET token and
// Value is set) or a function parameter (zero Keyword, nil Value).
type VariableDeclaration struct {
	Keyword token.Token
	Name    token.Token
	Type    token.Token
	Value   Node
}

// IsParameter reports whether d was declared in a parameter list.
func (d *VariableDeclaration) IsParameter() bool {
	return d.Keyword.Type != token.LET
}

type FunctionDeclaration struct {
	Func       token.Position
	Name       token.Token
	Parameters []*VariableDeclaration
	Body       *Block
}

type Declaration struct {
	Kind DeclarationKind
	Node Node
}

type Module struct {
	Keyword      token.Position
	Declarations []Declaration
}

// Functions returns the function declarations of m in source order.
func (m *Module) Functions() []*FunctionDeclaration {
	var fns []*FunctionDeclaration
	for _, decl := range m.Declarations {
		if fn, ok := decl.Node.(*FunctionDeclaration); ok && decl.Kind == FunctionDecl {
			fns = append(fns, fn)
		}
	}
	return fns
}

func (l *Literal) NodePos() token.Position { return l.Value.Position }
func (*Literal) NodeType() NodeType        { return LITERAL }

func (v *Variable) NodePos() token.Position { return v.Name.Position }
func (*Variable) NodeType() NodeType        { return VARIABLE }

func (u *Unary) NodePos() token.Position { return u.Operator.Position }
func (*Unary) NodeType() NodeType        { return UNARY }

func (p *Power) NodePos() token.Position { return p.Base.NodePos() }
func (*Power) NodeType() NodeType        { return POWER }

func (b *Binary) NodePos() token.Position { return b.Left.NodePos() }
func (*Binary) NodeType() NodeType        { return BINARY }

func (l *Logical) NodePos() token.Position { return l.Left.NodePos() }
func (*Logical) NodeType() NodeType        { return LOGICAL }

func (b *Block) NodePos() token.Position { return b.Lbrace }
func (*Block) NodeType() NodeType        { return BLOCK }

func (d *VariableDeclaration) NodePos() token.Position {
	if d.IsParameter() {
		return d.Name.Position
	}
	return d.Keyword.Position
}
func (*VariableDeclaration) NodeType() NodeType { return VARIABLE_DECLARATION }

func (f *FunctionDeclaration) NodePos() token.Position { return f.Func }
func (*FunctionDeclaration) NodeType() NodeType        { return FUNCTION_DECLARATION }

func (m *Module) NodePos() token.Position { return m.Keyword }
func (*Module) NodeType() NodeType        { return MODULE }

func (*Literal) node()             {}
func (*Variable) node()            {}
func (*Unary) node()               {}
func (*Power) node()               {}
func (*Binary) node()              {}
func (*Logical) node()             {}
func (*Block) node()               {}
func (*VariableDeclaration) node() {}
func (*FunctionDeclaration) node() {}
func (*Module) node()              {}
