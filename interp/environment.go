package interp

import (
	"fmt"

	"github.com/loxrun/tlox/token"
	"github.com/loxrun/tlox/value"
)

// Environment is a flat mapping from variable name to Value. Keys are
// unique; insertion order is not observable. No nested scopes are
// required by this interpreter — block scoping is out of scope.
type Environment struct {
	values map[string]value.Value
}

// NewEnvironment creates an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// Define inserts or replaces the binding for name. Redefinition at top
// level is intentionally allowed, matching Lox's global scope semantics.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get looks up name's current value. An undefined name is a RuntimeError
// carrying the token so the driver can report its line.
func (e *Environment) Get(name token.Token) (value.Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	return value.Nil, &RuntimeError{
		Reason: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
		Token:  name,
	}
}
