// Package driver wires the scanner, parser, and interpreter together
// behind the two sticky error flags the CLI front end inspects to choose
// an exit code. It is the only piece of the core that the command-line
// entry point talks to directly.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/loxrun/tlox/interp"
	"github.com/loxrun/tlox/lexer"
	"github.com/loxrun/tlox/parser"
	"github.com/loxrun/tlox/token"
)

// Driver owns HadError and HadRuntimeError. The scanner and parser set
// HadError through the Reporter methods below; Run sets HadRuntimeError
// when the interpreter returns an error. A Driver is scoped
// to the process (or connection, in the TCP front end); it is never a
// process-global singleton.
type Driver struct {
	HadError        bool
	HadRuntimeError bool

	// Out receives both diagnostics and Print statement output, matching
	// the source's habit of not distinguishing stdout from stderr for
	// error reporting.
	Out io.Writer

	Interp *interp.Interpreter
}

// New creates a Driver with a fresh Environment, writing to os.Stdout.
func New() *Driver {
	in := interp.New()
	in.Writer = os.Stdout
	return &Driver{Out: os.Stdout, Interp: in}
}

// NewWithWriter creates a Driver that writes both diagnostics and Print
// output to w — used by the TCP REPL front end, where stdout is a network
// connection rather than the process's own stdout.
func NewWithWriter(w io.Writer) *Driver {
	in := interp.New()
	in.Writer = w
	return &Driver{Out: w, Interp: in}
}

// Run scans, parses, and interprets source. It does not reset HadError or
// HadRuntimeError itself — REPL mode clears HadError between lines via
// ResetError; file mode runs once per process and reads the flags after.
func (d *Driver) Run(source string) {
	tokens := lexer.Scan(source, d)
	statements := parser.Parse(tokens, d)
	if d.HadError {
		return
	}

	if err := d.Interp.Interpret(statements); err != nil {
		var rerr *interp.RuntimeError
		if errors.As(err, &rerr) {
			d.RuntimeError(rerr)
			return
		}
		// Not a RuntimeError: an interpreter invariant was violated
		// (unknown node type). Surface it the same way a runtime fault
		// would be surfaced, rather than panicking the whole process.
		fmt.Fprintln(d.Out, err.Error())
		d.HadRuntimeError = true
	}
}

// Error implements lexer.Reporter: a lexical fault at a given line.
func (d *Driver) Error(line int, message string) {
	d.report(line, "", message)
	d.HadError = true
}

// ParserError implements parser.Reporter: a syntax fault at tok, which
// may be the EOF sentinel.
func (d *Driver) ParserError(tok token.Token, message string) {
	d.HadError = true
	if tok.Type == token.EOF {
		d.report(tok.Line, " at end", message)
	} else {
		d.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), message)
	}
}

// RuntimeError prints a runtime fault's reason and line, then sets
// HadRuntimeError. It does not terminate the process — callers (file
// mode vs. REPL vs. TCP server) decide what to do with the flag.
func (d *Driver) RuntimeError(err *interp.RuntimeError) {
	fmt.Fprintf(d.Out, "%s\n[line %d]\n", err.Reason, err.Token.Line)
	d.HadRuntimeError = true
}

func (d *Driver) report(line int, where, message string) {
	fmt.Fprintf(d.Out, "[line %d] Error%s: %s\n", line, where, message)
}

// ResetError clears HadError between REPL lines. HadRuntimeError is never
// cleared silently: the REPL keeps printing and running, but a caller
// that wants to know "did anything ever go wrong this session" can still
// read it.
func (d *Driver) ResetError() {
	d.HadError = false
}

// ExitCode returns the process exit status file mode should use: 0 on
// success, 65 if a compile-time error occurred, 70 if a runtime error
// occurred. HadError takes priority, matching spec's "checks had_error
// then had_runtime_error" ordering.
func (d *Driver) ExitCode() int {
	switch {
	case d.HadError:
		return 65
	case d.HadRuntimeError:
		return 70
	default:
		return 0
	}
}
