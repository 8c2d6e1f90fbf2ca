package ast

import "fmt"

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Literal, *Variable:
		return nil
	case *Unary:
		return []Node{n.Operand}
	case *Power:
		return []Node{n.Base, n.Exponent}
	case *Binary:
		return []Node{n.Left, n.Right}
	case *Logical:
		return []Node{n.Left, n.Right}
	case *Block:
		return append([]Node(nil), n.Expressions...)
	case *VariableDeclaration:
		if n.Value == nil {
			return nil
		}
		return []Node{n.Value}
	case *FunctionDeclaration:
		children := make([]Node, 0, len(n.Parameters)+1)
		for _, p := range n.Parameters {
			children = append(children, p)
		}
		if n.Body != nil {
			children = append(children, n.Body)
		}
		return children
	case *Module:
		children := make([]Node, 0, len(n.Declarations))
		for _, decl := range n.Declarations {
			children = append(children, decl.Node)
		}
		return children
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", n))
	}
}

// Inspect traverses the tree rooted at n in depth-first order. It calls
// fn(node) for each node; if fn returns true, Inspect visits the children of
// node.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	total := 0
	Inspect(n, func(Node) bool {
		total++
		return true
	})
	return total
}
