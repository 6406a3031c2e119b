// Package ast defines the recursive expression and statement tree produced
// by the parser and walked by the interpreter.
package ast

import (
	"github.com/loxrun/tlox/token"
	"github.com/loxrun/tlox/value"
)

// Expr is any expression node. Concrete types are Binary, Unary, Grouping,
// Literal, Variable, and Fail. Recursive children are owned by their
// parent node; there are no cyclic references, so no reference counting
// or arena scheme is needed.
type Expr interface {
	exprNode()
}

// Binary is `left op right`, e.g. `a + b` or `a == b`.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Unary is `op right`, e.g. `-a` or `!a`.
type Unary struct {
	Op    token.Token
	Right Expr
}

// Grouping is a parenthesized sub-expression, `( inner )`.
type Grouping struct {
	Inner Expr
}

// Literal is a constant value baked into the source: a number, string,
// boolean, or nil.
type Literal struct {
	Value value.Value
}

// Variable is a reference to a named binding, `name`.
type Variable struct {
	Name token.Token
}

// Fail is a sentinel produced by the parser's primary rule when it cannot
// make sense of the current token. It is never a successful parse result;
// the interpreter treats evaluating one as a fatal runtime fault. Reason
// carries the message already reported to the driver, and Token carries
// the offending token for line-attributed diagnostics.
type Fail struct {
	Reason string
	Token  token.Token
}

func (*Binary) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Grouping) exprNode() {}
func (*Literal) exprNode()  {}
func (*Variable) exprNode() {}
func (*Fail) exprNode()     {}
