package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandShape(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["run"], "run subcommand missing")
	assert.True(t, names["repl"], "repl subcommand missing")

	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, root.PersistentFlags().Lookup("max-loop-iterations"))
}

func TestRunScriptExecutesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.vern")
	require.NoError(t, os.WriteFile(path, []byte("set x to 1\n"), 0o644))

	err := runScript(path, &options{maxLoopIterations: 100})
	assert.NoError(t, err)
}

func TestRunScriptReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.vern")
	require.NoError(t, os.WriteFile(path, []byte("print \"a\"\n    print \"b\"\n"), 0o644))

	err := runScript(path, &options{maxLoopIterations: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.vern:2")
}

func TestRunScriptMissingFile(t *testing.T) {
	err := runScript(filepath.Join(t.TempDir(), "nope.vern"), &options{})
	require.Error(t, err)
}
