package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSource_SuccessReturnsZero(t *testing.T) {
	var buf bytes.Buffer
	code := runSource(`print 1 + 1;`, &buf)
	assert.Equal(t, 0, code)
	assert.Equal(t, "2\n", buf.String())
}

func TestRunSource_ParseErrorReturns65(t *testing.T) {
	var buf bytes.Buffer
	code := runSource(`1 +`, &buf)
	assert.Equal(t, 65, code)
}

func TestRunSource_RuntimeErrorReturns70(t *testing.T) {
	var buf bytes.Buffer
	code := runSource(`print -"x";`, &buf)
	assert.Equal(t, 70, code)
}

func TestReadSource_ReadsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lox")
	require.NoError(t, os.WriteFile(path, []byte(`print 1;`), 0o644))

	source, err := readSource(path)
	require.NoError(t, err)
	assert.Equal(t, "print 1;", source)
}

func TestReadSource_MissingFileErrors(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "missing.lox"))
	assert.Error(t, err)
}

func TestRunFileArg_NonexistentPathReturns1(t *testing.T) {
	code := runFileArg(filepath.Join(t.TempDir(), "missing.lox"), false)
	assert.Equal(t, 1, code)
}

func TestRunFileArg_RunsFileAndReturnsExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.lox")
	require.NoError(t, os.WriteFile(path, []byte(`1 +`), 0o644))

	assert.Equal(t, 65, runFileArg(path, false))
}

func TestMain_TwoPlusUnrecognizedArgsReturns64(t *testing.T) {
	assert.Equal(t, 64, Main([]string{"a", "b", "c"}))
	assert.Equal(t, 64, Main([]string{"not-server", "8080"}))
}

func TestMain_HelpReturnsZero(t *testing.T) {
	assert.Equal(t, 0, Main([]string{"--help"}))
}
