package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxrun/tlox/ast"
	"github.com/loxrun/tlox/lexer"
	"github.com/loxrun/tlox/token"
	"github.com/loxrun/tlox/value"
)

// recordingReporter collects ParserError calls so tests can assert on
// exactly what was reported without a real driver.
type recordingReporter struct {
	errors []string
}

func (r *recordingReporter) ParserError(tok token.Token, message string) {
	r.errors = append(r.errors, message)
}

// astDiffOpts ignores token.Token, since expression identity in these
// tests is about tree shape, not exact lexeme/line bookkeeping.
var astDiffOpts = cmp.Options{
	cmpopts.IgnoreFields(ast.Binary{}, "Op"),
	cmpopts.IgnoreFields(ast.Unary{}, "Op"),
	cmpopts.IgnoreFields(ast.Variable{}, "Name"),
	cmp.AllowUnexported(value.Value{}),
}

func parse(t *testing.T, source string) ([]ast.Stmt, *recordingReporter) {
	t.Helper()
	r := &recordingReporter{}
	tokens := lexer.Scan(source, lexerReporterAdapter{})
	stmts := Parse(tokens, r)
	return stmts, r
}

// lexerReporterAdapter swallows lexical errors; these tests only exercise
// parser behavior over already-valid token streams.
type lexerReporterAdapter struct{}

func (lexerReporterAdapter) Error(line int, message string) {}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	stmts, r := parse(t, "1 + 2 * 3;")
	require.Empty(t, r.errors)
	require.Len(t, stmts, 1)

	want := &ast.Expression{
		Expr: &ast.Binary{
			Left: &ast.Literal{Value: value.Num(1)},
			Right: &ast.Binary{
				Left:  &ast.Literal{Value: value.Num(2)},
				Right: &ast.Literal{Value: value.Num(3)},
			},
		},
	}
	if diff := cmp.Diff(want, stmts[0], astDiffOpts); diff != "" {
		t.Errorf("unexpected AST shape (-want +got):\n%s", diff)
	}
}

func TestParse_LeftAssociativity(t *testing.T) {
	// a - b - c must parse as (a - b) - c: the left child of the root is
	// itself a Binary, never the right child.
	stmts, r := parse(t, "a - b - c;")
	require.Empty(t, r.errors)
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ast.Expression)
	require.True(t, ok)
	root, ok := exprStmt.Expr.(*ast.Binary)
	require.True(t, ok)

	_, leftIsBinary := root.Left.(*ast.Binary)
	assert.True(t, leftIsBinary, "left child of a-b-c should be the a-b subtree")
	_, rightIsBinary := root.Right.(*ast.Binary)
	assert.False(t, rightIsBinary, "right child of a-b-c should be the leaf c, not a subtree")
}

func TestParse_UnaryIsRightAssociativeViaRecursion(t *testing.T) {
	stmts, r := parse(t, "!!0;")
	require.Empty(t, r.errors)

	exprStmt := stmts[0].(*ast.Expression)
	outer, ok := exprStmt.Expr.(*ast.Unary)
	require.True(t, ok)
	inner, ok := outer.Right.(*ast.Unary)
	require.True(t, ok)
	_, isLiteral := inner.Right.(*ast.Literal)
	assert.True(t, isLiteral)
}

func TestParse_Grouping(t *testing.T) {
	stmts, r := parse(t, "(1 + 2) * 3;")
	require.Empty(t, r.errors)

	exprStmt := stmts[0].(*ast.Expression)
	root, ok := exprStmt.Expr.(*ast.Binary)
	require.True(t, ok)
	_, leftIsGrouping := root.Left.(*ast.Grouping)
	assert.True(t, leftIsGrouping)
}

func TestParse_VarDeclarationWithAndWithoutInitializer(t *testing.T) {
	stmts, r := parse(t, "var a = 1; var b;")
	require.Empty(t, r.errors)
	require.Len(t, stmts, 2)

	varA := stmts[0].(*ast.Var)
	assert.Equal(t, "a", varA.Name.Lexeme)
	assert.NotNil(t, varA.Initializer)

	varB := stmts[1].(*ast.Var)
	assert.Equal(t, "b", varB.Name.Lexeme)
	assert.Nil(t, varB.Initializer)
}

func TestParse_PrintStatement(t *testing.T) {
	stmts, r := parse(t, `print "hi";`)
	require.Empty(t, r.errors)
	_, ok := stmts[0].(*ast.Print)
	assert.True(t, ok)
}

func TestParse_UnexpectedTokenProducesFailAndReportsError(t *testing.T) {
	// "1 +" has no right operand: the trailing EOF cannot start a primary.
	stmts, r := parse(t, "1 +")
	require.Len(t, r.errors, 1)
	assert.Equal(t, "Expect expression.", r.errors[0])

	exprStmt := stmts[0].(*ast.Expression)
	binary := exprStmt.Expr.(*ast.Binary)
	_, isFail := binary.Right.(*ast.Fail)
	assert.True(t, isFail)
}

func TestParse_MissingSemicolonAfterFailIsNotReportedSeparately(t *testing.T) {
	// A single malformed expression must not cascade into a second,
	// unrelated "expect ';'" error once the first error already fired.
	stmts, r := parse(t, "1 +")
	require.Len(t, r.errors, 1)
	require.Len(t, stmts, 1)
}

func TestParse_SynchronizeRecoversAtNextStatement(t *testing.T) {
	// The stray ')' is a parse error; synchronize should discard tokens
	// until the following ';' so the next var declaration still parses.
	stmts, r := parse(t, "var a = );\nvar b = 2;")
	require.Len(t, r.errors, 1)
	require.Len(t, stmts, 2)

	varB, ok := stmts[1].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "b", varB.Name.Lexeme)
}

func TestParse_TerminatesAtEOF(t *testing.T) {
	stmts, r := parse(t, "")
	assert.Empty(t, r.errors)
	assert.Empty(t, stmts)
}

func TestParse_OperatorTokenTypesMatchTheirGrammarRule(t *testing.T) {
	equalityOps := map[token.Type]bool{token.BangEqual: true, token.EqualEqual: true}
	stmts, r := parse(t, "1 == 2; 1 != 2;")
	require.Empty(t, r.errors)
	for _, s := range stmts {
		bin := s.(*ast.Expression).Expr.(*ast.Binary)
		assert.True(t, equalityOps[bin.Op.Type])
	}
}
