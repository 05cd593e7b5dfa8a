package ast

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, fn := range n.Funcs {
			Walk(v, fn)
		}
	case *FuncDef:
		Walk(v, n.Name)
		for _, p := range n.Params {
			Walk(v, p)
		}
		Walk(v, n.Body)

	// Statements
	case *Block:
		for _, stmt := range n.Stmts {
			Walk(v, stmt)
		}
	case *Assign:
		Walk(v, n.X)
		Walk(v, n.Value)
	case *If:
		Walk(v, n.Cond)
		Walk(v, n.Consequence)
		if n.Alternative != nil {
			Walk(v, n.Alternative)
		}
	case *Foreach:
		Walk(v, n.Name)
		Walk(v, n.Iterable)
		Walk(v, n.Body)
	case *Return:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *ExprStmt:
		Walk(v, n.X)

	// Expressions
	case *Prefix:
		Walk(v, n.X)
	case *Infix:
		Walk(v, n.X)
		Walk(v, n.Y)
	case *Call:
		Walk(v, n.Fun)
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *Use:
		Walk(v, n.X)
		Walk(v, n.Cond)
		Walk(v, n.Else)
	case *Range:
		Walk(v, n.From)
		Walk(v, n.To)
	case *Attr:
		Walk(v, n.X)

	// Leaves: Ident, Cell, Int, Float, String
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node != nil && f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns false, the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Cells returns every cell referenced by node, including range corners, in
// traversal order.
func Cells(node Node) []*Cell {
	var cells []*Cell
	Inspect(node, func(n Node) bool {
		if c, ok := n.(*Cell); ok {
			cells = append(cells, c)
		}
		return true
	})
	return cells
}
