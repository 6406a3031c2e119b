package ast

import "github.com/loxrun/tlox/token"

// Stmt is any statement node. Concrete types are Expression, Print, and Var.
type Stmt interface {
	stmtNode()
}

// Expression evaluates Expr and discards the result.
type Expression struct {
	Expr Expr
}

// Print evaluates Expr and writes its stringified form to stdout.
type Print struct {
	Expr Expr
}

// Var declares Name, optionally initializing it from Initializer. When
// Initializer is nil the variable is bound to Nil.
type Var struct {
	Name        token.Token
	Initializer Expr // nil if no initializer was given
}

func (*Expression) stmtNode() {}
func (*Print) stmtNode()      {}
func (*Var) stmtNode()        {}
