package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopesGlobalBindings(t *testing.T) {
	s := NewScopes()
	s.Assign("x", 1)

	v, ok := s.Resolve("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = s.Resolve("missing")
	assert.False(t, ok)
}

func TestScopesPopNeverRemovesGlobal(t *testing.T) {
	s := NewScopes()
	s.Assign("x", 1)

	s.Pop()
	s.Pop()

	assert.Equal(t, 1, s.Depth())
	v, ok := s.Resolve("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestFunctionScopeIsolatesAssignments(t *testing.T) {
	s := NewScopes()
	s.Assign("counter", 10)

	s.Push(ScopeFunction)
	s.Assign("local", 1)
	s.Assign("counter", 99)

	// Function bodies read enclosing scopes but the write stayed inside.
	v, ok := s.Resolve("counter")
	assert.True(t, ok)
	assert.Equal(t, 99, v)

	s.Pop()

	v, _ = s.Resolve("counter")
	assert.Equal(t, 10, v, "assignment inside a function must not leak to the caller")
	_, ok = s.Resolve("local")
	assert.False(t, ok)
}

func TestFunctionScopeReadsThroughBoundary(t *testing.T) {
	s := NewScopes()
	s.Assign("greeting", "hello")

	s.Push(ScopeFunction)
	defer s.Pop()

	v, ok := s.Resolve("greeting")
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestLoopScopeSharesEnclosingBindings(t *testing.T) {
	s := NewScopes()
	s.Assign("total", 0)

	s.Push(ScopeLoop)
	s.Assign("total", 5)
	s.Assign("item", "last")
	s.Pop()

	v, _ := s.Resolve("total")
	assert.Equal(t, 5, v, "loop assignments must persist after the loop")
	v, ok := s.Resolve("item")
	assert.True(t, ok, "loop variable must survive the loop")
	assert.Equal(t, "last", v)
}

func TestLoopInsideFunctionStaysInsideFunction(t *testing.T) {
	s := NewScopes()
	s.Assign("x", 1)

	s.Push(ScopeFunction)
	s.Push(ScopeLoop)
	s.Assign("x", 2)
	s.Pop()

	v, _ := s.Resolve("x")
	assert.Equal(t, 2, v, "loop write lands in the function frame")

	s.Pop()
	v, _ = s.Resolve("x")
	assert.Equal(t, 1, v, "the global is untouched")
}

func TestDeleteRespectsFunctionBarrier(t *testing.T) {
	s := NewScopes()
	s.Assign("x", 1)

	s.Push(ScopeFunction)
	assert.False(t, s.Delete("x"), "delete must not reach through a function boundary")
	s.Pop()

	assert.True(t, s.Delete("x"))
	_, ok := s.Resolve("x")
	assert.False(t, ok)
}

func TestVisibleMergesInnermostWins(t *testing.T) {
	s := NewScopes()
	s.Assign("a", 1)
	s.Assign("b", 2)

	s.Push(ScopeFunction)
	s.Assign("b", 20)
	s.Assign("c", 3)

	visible := s.Visible()
	assert.Equal(t, 1, visible["a"])
	assert.Equal(t, 20, visible["b"])
	assert.Equal(t, 3, visible["c"])
}

func TestReplaceGlobals(t *testing.T) {
	s := NewScopes()
	s.Assign("old", 1)

	s.ReplaceGlobals(map[string]any{"new": 2})

	_, ok := s.Resolve("old")
	assert.False(t, ok)
	v, _ := s.Resolve("new")
	assert.Equal(t, 2, v)
}
