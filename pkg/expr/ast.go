package expr

// The AST is a deliberately closed node set: literal, identifier, unary,
// binary, call, and parenthesized expressions. The evaluator interprets
// these nodes directly, so the full capability surface of an expression is
// statically enumerable.

// Node is an expression AST node.
type Node interface {
	exprNode()
	Pos() Position
}

// NumberLit represents a numeric literal.
type NumberLit struct {
	Value   float64
	Literal string // original text, e.g. "1e3"
	TokPos  Position
}

func (*NumberLit) exprNode() {}

// Pos implements Node.
func (n *NumberLit) Pos() Position { return n.TokPos }

// Ident represents an identifier: a variable, constant, or function name.
type Ident struct {
	Name   string
	TokPos Position
}

func (*Ident) exprNode() {}

// Pos implements Node.
func (i *Ident) Pos() Position { return i.TokPos }

// UnaryExpr represents a unary expression such as -x.
type UnaryExpr struct {
	Op   TokenType // TOKEN_MINUS or TOKEN_PLUS
	Expr Node
}

func (*UnaryExpr) exprNode() {}

// Pos implements Node.
func (u *UnaryExpr) Pos() Position {
	if u.Expr != nil {
		return u.Expr.Pos()
	}
	return Position{}
}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Left  Node
	Op    TokenType
	Right Node
}

func (*BinaryExpr) exprNode() {}

// Pos implements Node.
func (b *BinaryExpr) Pos() Position {
	if b.Left != nil {
		return b.Left.Pos()
	}
	return Position{}
}

// CallExpr represents a function call.
type CallExpr struct {
	Name   string
	Args   []Node
	TokPos Position
}

func (*CallExpr) exprNode() {}

// Pos implements Node.
func (c *CallExpr) Pos() Position { return c.TokPos }

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Expr Node
}

func (*ParenExpr) exprNode() {}

// Pos implements Node.
func (p *ParenExpr) Pos() Position {
	if p.Expr != nil {
		return p.Expr.Pos()
	}
	return Position{}
}

// Walk traverses the tree in preorder, calling fn for every node.
// Traversal stops when fn returns false.
func Walk(n Node, fn func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	switch node := n.(type) {
	case *UnaryExpr:
		return Walk(node.Expr, fn)
	case *BinaryExpr:
		return Walk(node.Left, fn) && Walk(node.Right, fn)
	case *CallExpr:
		for _, arg := range node.Args {
			if !Walk(arg, fn) {
				return false
			}
		}
	case *ParenExpr:
		return Walk(node.Expr, fn)
	}
	return true
}
