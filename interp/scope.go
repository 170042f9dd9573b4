package interp

// ScopeKind classifies a variable scope.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeLoop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// scope is one frame on the scope stack. Loop frames alias the binding map
// of the frame below them, so loop-body assignments persist after the loop.
type scope struct {
	kind ScopeKind
	vars map[string]any
}

// Scopes is the scope manager: an ordered stack of variable scopes with the
// Global scope permanently at the bottom. Lookups walk innermost to
// outermost; assignments never cross a function boundary, which keeps
// function bodies from leaking bindings into their callers.
type Scopes struct {
	stack []*scope
}

// NewScopes returns a scope stack holding only the Global scope.
func NewScopes() *Scopes {
	return &Scopes{
		stack: []*scope{{kind: ScopeGlobal, vars: make(map[string]any)}},
	}
}

// Push opens a new scope. Function scopes get an isolated binding set; Loop
// scopes share the binding set of the enclosing scope.
func (s *Scopes) Push(kind ScopeKind) {
	vars := make(map[string]any)
	if kind == ScopeLoop {
		vars = s.top().vars
	}
	s.stack = append(s.stack, &scope{kind: kind, vars: vars})
}

// Pop closes the innermost scope. The Global scope is never popped.
func (s *Scopes) Pop() {
	if len(s.stack) <= 1 {
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth returns the number of open scopes, including Global.
func (s *Scopes) Depth() int { return len(s.stack) }

// Bind creates or replaces a binding in the innermost scope.
func (s *Scopes) Bind(name string, value any) {
	s.top().vars[name] = value
}

// Assign mutates the nearest enclosing binding for name, searching inward to
// outward but stopping at the innermost Function scope: function bodies
// never write through to their callers. When no binding is found the name is
// bound in the innermost scope.
func (s *Scopes) Assign(name string, value any) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		frame := s.stack[i]
		if _, ok := frame.vars[name]; ok {
			frame.vars[name] = value
			return
		}
		if frame.kind == ScopeFunction {
			break
		}
	}
	s.Bind(name, value)
}

// Resolve looks the name up innermost to outermost. Reads cross function
// boundaries, so function bodies can see globals.
func (s *Scopes) Resolve(name string) (any, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if v, ok := s.stack[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Delete removes the nearest enclosing binding for name, with the same
// function-boundary rule as Assign. It reports whether a binding was found.
func (s *Scopes) Delete(name string) bool {
	for i := len(s.stack) - 1; i >= 0; i-- {
		frame := s.stack[i]
		if _, ok := frame.vars[name]; ok {
			delete(frame.vars, name)
			return true
		}
		if frame.kind == ScopeFunction {
			break
		}
	}
	return false
}

// Visible returns every binding visible from the innermost scope, with inner
// bindings shadowing outer ones.
func (s *Scopes) Visible() map[string]any {
	merged := make(map[string]any)
	for _, frame := range s.stack {
		for k, v := range frame.vars {
			merged[k] = v
		}
	}
	return merged
}

// Globals returns the Global scope's binding map. Session persistence reads
// and replaces state through it.
func (s *Scopes) Globals() map[string]any {
	return s.stack[0].vars
}

// ReplaceGlobals swaps the Global scope's binding set, used when loading a
// saved session.
func (s *Scopes) ReplaceGlobals(vars map[string]any) {
	if vars == nil {
		vars = make(map[string]any)
	}
	s.stack[0].vars = vars
}

func (s *Scopes) top() *scope {
	return s.stack[len(s.stack)-1]
}
