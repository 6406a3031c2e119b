// Package parser builds an ast.Expr/ast.Stmt tree from a token stream by
// recursive descent, following Lox's published expression grammar.
package parser

import (
	"strconv"

	"github.com/loxrun/tlox/ast"
	"github.com/loxrun/tlox/internal/trace"
	"github.com/loxrun/tlox/token"
	"github.com/loxrun/tlox/value"
)

// Reporter receives parse error diagnostics. The driver implements this.
type Reporter interface {
	ParserError(tok token.Token, message string)
}

// Parser consumes a token slice left to right, building the AST bottom-up.
// current advances monotonically except during synchronize. failed is set
// while parsing the current top-level statement once a parse error has
// been reported, so Parse knows to synchronize before moving on.
type Parser struct {
	tokens   []token.Token
	current  int
	reporter Reporter
	failed   bool
}

// New creates a Parser over tokens, reporting syntax errors to r.
func New(tokens []token.Token, r Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: r}
}

// Parse consumes tokens left to right, returning one Stmt per top-level
// declaration until EOF. This is the grammar's `program` rule:
// program → statement* EOF.
func Parse(tokens []token.Token, r Reporter) []ast.Stmt {
	return New(tokens, r).Parse()
}

// Parse runs the parser over its token stream.
func (p *Parser) Parse() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.EOF) {
		p.failed = false
		stmt := p.statement()
		statements = append(statements, stmt)
		if p.failed {
			p.synchronize()
		}
	}
	return statements
}

// statement → printStmt | varDecl | exprStmt
func (p *Parser) statement() ast.Stmt {
	trace.Parse("statement", p.peek().Line)
	switch {
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Var):
		return p.varDeclaration()
	default:
		return p.expressionStatement()
	}
}

// printStmt → "print" expression ";"
//
// The trailing consume is skipped once the expression itself has already
// failed: at that point current sits on the token that triggered the
// failure (never consumed past it), so the caller's synchronize can find
// the next statement boundary from there. Consuming a stray ';' here
// first would walk past it and make synchronize eat the statement that
// follows.
func (p *Parser) printStatement() ast.Stmt {
	expr := p.expression()
	if !p.failed {
		p.consume(token.Semicolon, "Expect ';' after value.")
	}
	return &ast.Print{Expr: expr}
}

// varDecl → "var" IDENTIFIER ( "=" expression )? ";"
func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")

	var initializer ast.Expr
	if !p.failed && p.match(token.Equal) {
		initializer = p.expression()
	}
	if !p.failed {
		p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	}
	return &ast.Var{Name: name, Initializer: initializer}
}

// exprStmt → expression ";"
func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	if !p.failed {
		p.consume(token.Semicolon, "Expect ';' after expression.")
	}
	return &ast.Expression{Expr: expr}
}

// expression → equality
func (p *Parser) expression() ast.Expr {
	return p.equality()
}

// equality → comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// term → factor ( ( "-" | "+" ) factor )*
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// factor → unary ( ( "/" | "*" ) unary )*
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary → ( "!" | "-" ) unary | primary
func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.primary()
}

// primary → "false" | "true" | "nil" | NUMBER | STRING | "(" expression ")" | IDENTIFIER
func (p *Parser) primary() ast.Expr {
	trace.Parse("primary", p.peek().Line)
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: value.Bool(false)}
	case p.match(token.True):
		return &ast.Literal{Value: value.Bool(true)}
	case p.match(token.Nil):
		return &ast.Literal{Value: value.Nil}
	case p.match(token.Number):
		return p.numberLiteral()
	case p.match(token.String):
		return &ast.Literal{Value: value.Str(p.previous().Literal)}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	default:
		tok := p.peek()
		p.fail(tok, "Expect expression.")
		return &ast.Fail{Reason: "Expect expression.", Token: tok}
	}
}

// numberLiteral parses the NUMBER token's literal text. The scanner's
// digit rule guarantees this always succeeds; a failure here is an
// internal invariant violation, not a user-facing parse error.
func (p *Parser) numberLiteral() ast.Expr {
	tok := p.previous()
	n, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		panic("parser: scanner produced a malformed number literal: " + tok.Literal)
	}
	return &ast.Literal{Value: value.Num(n)}
}

// consume advances past the next token if it matches typ, otherwise
// reports a parse error at the current token and leaves current in
// place.
func (p *Parser) consume(typ token.Type, message string) token.Token {
	if p.check(typ) {
		return p.advance()
	}
	// Once a statement has already failed once, a mismatch here is almost
	// always a downstream echo of that same error (e.g. the missing ';'
	// after a malformed expression) rather than an independent fault, so
	// it is not reported separately.
	if !p.failed {
		p.fail(p.peek(), message)
	}
	return p.peek()
}

// fail reports a parse error through the driver and marks the current
// top-level statement as failed, so Parse synchronizes afterward.
func (p *Parser) fail(tok token.Token, message string) {
	p.reporter.ParserError(tok, message)
	p.failed = true
}

// synchronize discards tokens until the statement boundary immediately
// following a ';' or immediately before a statement-starting keyword,
// preventing a single error from cascading into spurious ones.
func (p *Parser) synchronize() {
	p.advance()
	for !p.check(token.EOF) {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.check(token.EOF) {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}
