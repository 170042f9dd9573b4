package interp

import "fmt"

// ErrorKind categorizes runtime errors that abort a script.
type ErrorKind int

const (
	// NameError marks an unresolved variable, list, or function name.
	NameError ErrorKind = iota

	// ArityError marks a function call whose argument count does not match
	// the definition's parameter count.
	ArityError

	// EvaluationError marks a condition the predicate evaluator cannot
	// interpret.
	EvaluationError

	// UnboundControlSignal marks a break or continue with no enclosing loop,
	// or a control signal escaping a function boundary.
	UnboundControlSignal
)

func (k ErrorKind) String() string {
	switch k {
	case NameError:
		return "name error"
	case ArityError:
		return "arity error"
	case EvaluationError:
		return "evaluation error"
	case UnboundControlSignal:
		return "unbound control signal"
	default:
		return "runtime error"
	}
}

// RuntimeError is a fatal script error with the originating line attached.
type RuntimeError struct {
	Kind    ErrorKind
	Line    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Cause }

// NewNameError reports an unresolved name.
func NewNameError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: NameError, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewArityError reports a call argument-count mismatch.
func NewArityError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: ArityError, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewEvaluationError reports an uninterpretable condition.
func NewEvaluationError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: EvaluationError, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewUnboundSignalError reports a control signal with no owner.
func NewUnboundSignalError(line int, sig Signal) *RuntimeError {
	msg := fmt.Sprintf("%q outside of a loop", sig)
	if sig == SignalReturn {
		msg = "\"return\" outside of a function"
	}
	return &RuntimeError{Kind: UnboundControlSignal, Line: line, Message: msg}
}
