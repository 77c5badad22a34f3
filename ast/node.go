// Package ast defines the abstract syntax tree produced by the parser.
package ast

import "github.com/miniql/miniql/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Statement is implemented by the six statement kinds the dialect supports.
type Statement interface {
	Node
	statementNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}
