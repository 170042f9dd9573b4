package interp

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/vernacular-lang/vernacular/parser"
)

// Executor is the boundary to the command executor: the collaborator that
// resolves leaf command text to side effects, boolean predicates, and list
// values. The engine treats it as opaque.
type Executor interface {
	// EvaluatePredicate evaluates a block header condition against the
	// current scopes.
	EvaluatePredicate(condition string, scopes *Scopes) (bool, error)

	// ResolveList resolves a list name to its ordered elements.
	ResolveList(name string, scopes *Scopes) ([]any, error)

	// ExecuteLeaf performs the side effect named by text and reports the
	// control-flow intent for the leaf commands that mean break, continue,
	// or return. An error is a command-level failure; by policy it does not
	// halt the script.
	ExecuteLeaf(text string, scopes *Scopes) (Outcome, error)
}

// Function is a block-defined function: stored at definition time, executed
// only when called. Never mutated after registration.
type Function struct {
	Name   string
	Params []string
	Body   []parser.Node
	Line   int
}

// FuncTable is the function registry. Re-defining a name overwrites the
// previous entry.
type FuncTable struct {
	mu    sync.RWMutex
	funcs map[string]*Function
}

// NewFuncTable creates an empty function table.
func NewFuncTable() *FuncTable {
	return &FuncTable{funcs: make(map[string]*Function)}
}

// Define registers a function, replacing any previous definition.
func (t *FuncTable) Define(fn *Function) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.funcs[fn.Name] = fn
}

// Lookup retrieves a function by name.
func (t *FuncTable) Lookup(name string) (*Function, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.funcs[name]
	return fn, ok
}

// Names returns the registered function names, unordered.
func (t *FuncTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.funcs))
	for name := range t.funcs {
		names = append(names, name)
	}
	return names
}

// Reset drops every registered function.
func (t *FuncTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.funcs = make(map[string]*Function)
}

// Environment is the process-owned state an engine run operates on: the
// scope stack, the function table, and the command executor. It is passed
// explicitly so multiple scripts and tests can run in isolation.
type Environment struct {
	Scopes *Scopes
	Funcs  *FuncTable
	Exec   Executor
	Out    io.Writer
	Logger *slog.Logger
}

// NewEnvironment creates an environment around the given executor, writing
// command output to out. A nil out defaults to stdout.
func NewEnvironment(exec Executor, out io.Writer) *Environment {
	if out == nil {
		out = os.Stdout
	}

	logLevel := slog.LevelInfo
	if os.Getenv("VERN_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))

	return &Environment{
		Scopes: NewScopes(),
		Funcs:  NewFuncTable(),
		Exec:   exec,
		Out:    out,
		Logger: logger,
	}
}
