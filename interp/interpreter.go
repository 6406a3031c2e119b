// Package interp walks the AST produced by the parser, evaluating
// expressions and executing statements against a mutable Environment.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/loxrun/tlox/ast"
	"github.com/loxrun/tlox/internal/trace"
	"github.com/loxrun/tlox/token"
	"github.com/loxrun/tlox/value"
)

// RuntimeError is a fault detected during evaluation: a type mismatch in
// an operator, an undefined variable, or a propagated parse-time Fail
// sentinel. It carries the token whose line is reported to the user and
// aborts the current Interpret call without terminating the process.
type RuntimeError struct {
	Reason string
	Token  token.Token
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Reason, e.Token.Line)
}

// Interpreter evaluates statements and expressions against one
// Environment. It is single-threaded and synchronous: Interpret for one
// call must finish before the next begins.
type Interpreter struct {
	Env    *Environment
	Writer io.Writer
}

// New creates an Interpreter with a fresh global Environment, writing
// Print output to os.Stdout.
func New() *Interpreter {
	return &Interpreter{Env: NewEnvironment(), Writer: os.Stdout}
}

// Interpret executes statements in order. On a RuntimeError it stops
// immediately — remaining statements are not executed — and returns the
// error for the driver to report.
func (in *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := in.eval(s.Expr)
		return err
	case *ast.Print:
		v, err := in.eval(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Writer, value.Stringify(v))
		return nil
	case *ast.Var:
		v := value.Nil
		if s.Initializer != nil {
			var err error
			v, err = in.eval(s.Initializer)
			if err != nil {
				return err
			}
		}
		in.Env.Define(s.Name.Lexeme, v)
		return nil
	default:
		return fmt.Errorf("interp: unknown statement type %T", stmt)
	}
}

// eval evaluates a single expression to a Value, or a RuntimeError.
func (in *Interpreter) eval(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return in.eval(e.Inner)
	case *ast.Variable:
		return in.Env.Get(e.Name)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Fail:
		trace.Eval("fail", e.Token.Line)
		return value.Nil, &RuntimeError{Reason: e.Reason, Token: e.Token}
	default:
		return value.Nil, fmt.Errorf("interp: unknown expression type %T", expr)
	}
}

func (in *Interpreter) evalUnary(e *ast.Unary) (value.Value, error) {
	right, err := in.eval(e.Right)
	if err != nil {
		return value.Nil, err
	}
	trace.Eval("unary:"+string(e.Op.Type), e.Op.Line)
	switch e.Op.Type {
	case token.Minus:
		if !right.IsNumber() {
			return value.Nil, &RuntimeError{Reason: "Operand must be a number.", Token: e.Op}
		}
		return value.Num(-right.AsNumber()), nil
	case token.Bang:
		return value.Bool(!value.Truthy(right)), nil
	default:
		return value.Nil, &RuntimeError{Reason: "Unknown unary operator.", Token: e.Op}
	}
}

func (in *Interpreter) evalBinary(e *ast.Binary) (value.Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return value.Nil, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return value.Nil, err
	}
	trace.Eval("binary:"+string(e.Op.Type), e.Op.Line)

	switch e.Op.Type {
	case token.Minus:
		return numericOp(left, right, e.Op, func(a, b float64) float64 { return a - b })
	case token.Slash:
		return numericOp(left, right, e.Op, func(a, b float64) float64 { return a / b })
	case token.Star:
		return numericOp(left, right, e.Op, func(a, b float64) float64 { return a * b })
	case token.Plus:
		return evalPlus(left, right, e.Op)
	case token.Greater:
		return comparisonOp(left, right, e.Op, func(a, b float64) bool { return a > b })
	case token.GreaterEqual:
		return comparisonOp(left, right, e.Op, func(a, b float64) bool { return a >= b })
	case token.Less:
		return comparisonOp(left, right, e.Op, func(a, b float64) bool { return a < b })
	case token.LessEqual:
		return comparisonOp(left, right, e.Op, func(a, b float64) bool { return a <= b })
	case token.EqualEqual:
		return value.Bool(value.Equal(left, right)), nil
	case token.BangEqual:
		return value.Bool(!value.Equal(left, right)), nil
	default:
		return value.Nil, &RuntimeError{Reason: "Unknown binary operator.", Token: e.Op}
	}
}

// evalPlus implements Lox's polymorphic `+`: numeric addition for two
// numbers, concatenation for two strings, a RuntimeError otherwise.
func evalPlus(left, right value.Value, op token.Token) (value.Value, error) {
	if left.IsNumber() && right.IsNumber() {
		return value.Num(left.AsNumber() + right.AsNumber()), nil
	}
	if left.IsString() && right.IsString() {
		return value.Str(left.AsString() + right.AsString()), nil
	}
	return value.Nil, &RuntimeError{Reason: "Operands must be two numbers or two strings.", Token: op}
}

func numericOp(left, right value.Value, op token.Token, f func(a, b float64) float64) (value.Value, error) {
	if !left.IsNumber() || !right.IsNumber() {
		return value.Nil, &RuntimeError{Reason: "Operands must be numbers.", Token: op}
	}
	return value.Num(f(left.AsNumber(), right.AsNumber())), nil
}

func comparisonOp(left, right value.Value, op token.Token, f func(a, b float64) bool) (value.Value, error) {
	if !left.IsNumber() || !right.IsNumber() {
		return value.Nil, &RuntimeError{Reason: "Operands must be numbers.", Token: op}
	}
	return value.Bool(f(left.AsNumber(), right.AsNumber())), nil
}
