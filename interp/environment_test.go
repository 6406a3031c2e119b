package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxrun/tlox/token"
	"github.com/loxrun/tlox/value"
)

func ident(name string) token.Token {
	return token.New(token.Identifier, name, "", 1)
}

func TestEnvironment_DefineThenGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", value.Num(42))

	v, err := env.Get(ident("a"))
	require.NoError(t, err)
	assert.Equal(t, value.Num(42), v)
}

func TestEnvironment_RedefineReplacesBinding(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", value.Num(1))
	env.Define("a", value.Str("now a string"))

	v, err := env.Get(ident("a"))
	require.NoError(t, err)
	assert.True(t, v.IsString())
	assert.Equal(t, "now a string", v.AsString())
}

func TestEnvironment_UndefinedVariableIsRuntimeError(t *testing.T) {
	env := NewEnvironment()
	_, err := env.Get(ident("missing"))
	require.Error(t, err)

	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "Undefined variable 'missing'.", rerr.Reason)
}
