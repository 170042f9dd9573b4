package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vernacular-lang/vernacular/interp"
)

func newTestRuntime(t *testing.T) (*Runtime, *interp.Scopes, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	rt := New(Options{Out: out, In: bytes.NewReader(nil), Seed: 1})
	t.Cleanup(func() { rt.Close() })
	return rt, interp.NewScopes(), out
}

func TestEvaluatePredicate(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)
	sc.Assign("count", 7)
	sc.Assign("name", "ada")
	sc.Assign("pets", []any{"cat", "dog"})
	sc.Assign("empty_list", []any{})
	sc.Assign("note", "")

	tests := []struct {
		condition string
		want      bool
	}{
		{"count is greater than 5", true},
		{"count is greater than 7", false},
		{"count is greater than or equal to 7", true},
		{"count is less than 10", true},
		{"count is less than or equal to 6", false},
		{"count is 7", true},
		{"count is equal to 7", true},
		{"count equals 8", false},
		{"count is not 8", true},
		{"count is not equal to 7", false},
		{`name is "ada"`, true},
		{`name is "grace"`, false},
		{`name is not "grace"`, true},
		{"name contains \"da\"", true},
		{"pets contains \"cat\"", true},
		{"pets contains \"fish\"", false},
		{"list pets has 2 items", true},
		{"pets has 3 items", false},
		{"empty_list is empty", true},
		{"pets is not empty", true},
		{"note is empty", true},
		{"count is greater than 5 and count is less than 10", true},
		{"count is greater than 5 and count is less than 6", false},
		{"count is 1 or count is 7", true},
		{"count is 1 or count is 2", false},
		{"not count is 8", true},
		{"not count is 7", false},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			got, err := rt.EvaluatePredicate(tt.condition, sc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "condition %q", tt.condition)
		})
	}
}

func TestEvaluatePredicateErrors(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)
	sc.Assign("x", 1)

	tests := []struct {
		name      string
		condition string
		wantKind  interp.ErrorKind
	}{
		{"unknown operator", "x resembles 5", interp.EvaluationError},
		{"gibberish", "the moon is cheese tonight maybe", interp.EvaluationError},
		{"unbound variable in comparison", "ghost is greater than 1", interp.NameError},
		{"unbound variable in equality", "ghost is 5", interp.NameError},
		{"non-numeric ordering", "x is greater than banana", interp.NameError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rt.EvaluatePredicate(tt.condition, sc)
			require.Error(t, err)

			var rerr *interp.RuntimeError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.wantKind, rerr.Kind)
		})
	}
}

func TestResolveList(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)
	sc.Assign("nums", []any{1, 2, 3})
	sc.Assign("word", "hello")

	items, err := rt.ResolveList("nums", sc)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, items)

	_, err = rt.ResolveList("missing", sc)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, interp.NameError, rerr.Kind)

	_, err = rt.ResolveList("word", sc)
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, interp.EvaluationError, rerr.Kind)
}
