// Package interp executes parsed block trees: it walks the tree, evaluates
// headers through the command executor, manages the scope stack, and
// propagates break/continue/return signals to the loop or function boundary
// that owns them.
package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vernacular-lang/vernacular/parser"
)

// DefaultMaxLoopIterations is the while-loop safety bound: a condition that
// never becomes false terminates the loop here instead of hanging the run.
const DefaultMaxLoopIterations = 100000

// Config tunes the engine.
type Config struct {
	// MaxLoopIterations bounds while loops. Zero means
	// DefaultMaxLoopIterations.
	MaxLoopIterations int
}

func (c Config) withDefaults() Config {
	if c.MaxLoopIterations <= 0 {
		c.MaxLoopIterations = DefaultMaxLoopIterations
	}
	return c
}

// Engine walks a block tree and executes it against an Environment. It is
// single-threaded: each command runs to completion before the next begins,
// and the engine must not be invoked re-entrantly from multiple goroutines.
type Engine struct {
	env *Environment
	cfg Config

	// lastSignalLine remembers where the most recent control signal was
	// raised, for unbound-signal diagnostics.
	lastSignalLine int
}

// New creates an engine over env.
func New(env *Environment, cfg Config) *Engine {
	return &Engine{env: env, cfg: cfg.withDefaults()}
}

// Run executes a parsed program. A control signal that survives to the top
// level has no owner and is an error.
func (e *Engine) Run(prog *parser.Program) error {
	out, err := e.executeBody(prog.Nodes)
	if err != nil {
		return err
	}
	if out.Signal != SignalNormal {
		return NewUnboundSignalError(e.lastSignalLine, out.Signal)
	}
	return nil
}

// RunNode executes a single node, used by the REPL where entries arrive one
// at a time.
func (e *Engine) RunNode(node parser.Node) error {
	out, err := e.executeBody([]parser.Node{node})
	if err != nil {
		return err
	}
	if out.Signal != SignalNormal {
		return NewUnboundSignalError(e.lastSignalLine, out.Signal)
	}
	return nil
}

// executeBody runs a sequence of children and returns the first non-normal
// signal encountered, short-circuiting the remaining siblings. An else block
// directly following an if at the same level is paired with it here.
func (e *Engine) executeBody(nodes []parser.Node) (Outcome, error) {
	for i := 0; i < len(nodes); i++ {
		var (
			out Outcome
			err error
		)

		switch n := nodes[i].(type) {
		case *parser.Command:
			out, err = e.executeCommand(n)
		case *parser.BlockNode:
			var elseNode *parser.BlockNode
			if n.Header.Kind == parser.KindIf && i+1 < len(nodes) {
				if next, ok := nodes[i+1].(*parser.BlockNode); ok && next.Header.Kind == parser.KindElse {
					elseNode = next
					i++
				}
			}
			out, err = e.executeBlock(n, elseNode)
		}

		if err != nil {
			return Normal, err
		}
		if out.Signal != SignalNormal {
			return out, nil
		}
	}
	return Normal, nil
}

func (e *Engine) executeBlock(block *parser.BlockNode, elseNode *parser.BlockNode) (Outcome, error) {
	e.env.Logger.Debug("executing block", "kind", block.Header.Kind.String(), "line", block.Line)

	switch block.Header.Kind {
	case parser.KindIf:
		return e.executeIf(block, elseNode)
	case parser.KindWhile:
		return e.executeWhile(block)
	case parser.KindForEach:
		return e.executeForEach(block)
	case parser.KindRepeat:
		return e.executeRepeat(block)
	case parser.KindFunctionDef:
		e.env.Funcs.Define(&Function{
			Name:   block.Header.Name,
			Params: block.Header.Params,
			Body:   block.Body,
			Line:   block.Line,
		})
		return Normal, nil
	case parser.KindElse:
		// The parser guarantees every else follows its if, and executeBody
		// consumes it there. Nothing to do on its own.
		return Normal, nil
	default:
		return Normal, fmt.Errorf("unknown block kind at line %d", block.Line)
	}
}

// executeIf evaluates the condition and runs at most one branch. Branch
// bodies share the enclosing scope; no new scope is opened per if.
func (e *Engine) executeIf(block, elseNode *parser.BlockNode) (Outcome, error) {
	ok, err := e.env.Exec.EvaluatePredicate(block.Header.Condition, e.env.Scopes)
	if err != nil {
		return Normal, e.attachLine(err, block.Line)
	}
	if ok {
		return e.executeBody(block.Body)
	}
	if elseNode != nil {
		return e.executeBody(elseNode.Body)
	}
	return Normal, nil
}

// executeRepeat runs the body exactly Count times. Break stops iteration and
// is consumed here; Continue ends only the current iteration.
func (e *Engine) executeRepeat(block *parser.BlockNode) (Outcome, error) {
	e.env.Scopes.Push(ScopeLoop)
	defer e.env.Scopes.Pop()

	for i := 0; i < block.Header.Count; i++ {
		out, err := e.executeBody(block.Body)
		if err != nil {
			return Normal, err
		}
		switch out.Signal {
		case SignalBreak:
			return Normal, nil
		case SignalContinue:
			continue
		case SignalReturn:
			return out, nil
		}
	}
	return Normal, nil
}

// executeWhile re-evaluates the condition before each iteration and stops
// when it turns false, on break, or at the configured safety bound.
func (e *Engine) executeWhile(block *parser.BlockNode) (Outcome, error) {
	e.env.Scopes.Push(ScopeLoop)
	defer e.env.Scopes.Pop()

	for iterations := 0; ; iterations++ {
		if iterations >= e.cfg.MaxLoopIterations {
			fmt.Fprintf(e.env.Out, "Warning: loop stopped after %d iterations (safety limit)\n", e.cfg.MaxLoopIterations)
			return Normal, nil
		}

		ok, err := e.env.Exec.EvaluatePredicate(block.Header.Condition, e.env.Scopes)
		if err != nil {
			return Normal, e.attachLine(err, block.Line)
		}
		if !ok {
			return Normal, nil
		}

		out, err := e.executeBody(block.Body)
		if err != nil {
			return Normal, err
		}
		switch out.Signal {
		case SignalBreak:
			return Normal, nil
		case SignalContinue:
			continue
		case SignalReturn:
			return out, nil
		}
	}
}

// executeForEach binds the loop variable to each element in order. The
// binding persists with the last element after the loop exits.
func (e *Engine) executeForEach(block *parser.BlockNode) (Outcome, error) {
	items, err := e.env.Exec.ResolveList(block.Header.Source, e.env.Scopes)
	if err != nil {
		return Normal, e.attachLine(err, block.Line)
	}

	e.env.Scopes.Push(ScopeLoop)
	defer e.env.Scopes.Pop()

	for _, item := range items {
		e.env.Scopes.Assign(block.Header.Binding, item)

		out, err := e.executeBody(block.Body)
		if err != nil {
			return Normal, err
		}
		switch out.Signal {
		case SignalBreak:
			return Normal, nil
		case SignalContinue:
			continue
		case SignalReturn:
			return out, nil
		}
	}
	return Normal, nil
}

// callRe matches the function-call leaf forms. Only names present in the
// block function table are intercepted; anything else falls through to the
// command executor, which owns the legacy flat functions.
var callRe = regexp.MustCompile(`(?i)^(?:call function|call|run) (\w+)(?: with (.+))?$`)

func (e *Engine) executeCommand(cmd *parser.Command) (Outcome, error) {
	if m := callRe.FindStringSubmatch(cmd.Text); m != nil {
		if fn, ok := e.env.Funcs.Lookup(m[1]); ok {
			return e.callFunction(fn, m[2], cmd.Line)
		}
	}

	out, err := e.env.Exec.ExecuteLeaf(cmd.Text, e.env.Scopes)
	if err != nil {
		// A leaf command's failure is its own result; it does not halt the
		// script. Only block-structural errors are fatal.
		fmt.Fprintf(e.env.Out, "error: %v\n", err)
		return Normal, nil
	}
	if out.Signal != SignalNormal {
		e.lastSignalLine = cmd.Line
	}
	return out, nil
}

// callFunction runs a block-defined function: fresh Function scope,
// positional parameter binding, scope released on every exit path. A break
// or continue escaping the body unconsumed is an error: loops do not cross
// function boundaries.
func (e *Engine) callFunction(fn *Function, rawArgs string, line int) (Outcome, error) {
	args := e.parseCallArgs(rawArgs)
	if len(args) != len(fn.Params) {
		return Normal, NewArityError(line, "function %q expects %d argument(s), got %d",
			fn.Name, len(fn.Params), len(args))
	}

	e.env.Scopes.Push(ScopeFunction)
	out, err := func() (Outcome, error) {
		defer e.env.Scopes.Pop()
		for i, param := range fn.Params {
			e.env.Scopes.Bind(param, args[i])
		}
		return e.executeBody(fn.Body)
	}()
	if err != nil {
		return Normal, err
	}

	switch out.Signal {
	case SignalBreak, SignalContinue:
		return Normal, NewUnboundSignalError(e.lastSignalLine, out.Signal)
	case SignalReturn:
		if out.Value != nil {
			e.env.Scopes.Assign("result", out.Value)
		}
	}
	return Normal, nil
}

// parseCallArgs splits a comma-separated argument list. Quoted text stays a
// string, numeric literals become numbers, and bare words resolve as
// variables when one is in scope.
func (e *Engine) parseCallArgs(raw string) []any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var args []any
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		switch {
		case len(part) >= 2 && (part[0] == '"' || part[0] == '\'') && part[len(part)-1] == part[0]:
			args = append(args, part[1:len(part)-1])
		default:
			if n, err := strconv.Atoi(part); err == nil {
				args = append(args, n)
			} else if f, err := strconv.ParseFloat(part, 64); err == nil {
				args = append(args, f)
			} else if v, ok := e.env.Scopes.Resolve(part); ok {
				args = append(args, v)
			} else {
				args = append(args, part)
			}
		}
	}
	return args
}

// attachLine fills in the originating line on runtime errors that were
// raised without position context.
func (e *Engine) attachLine(err error, line int) error {
	if rerr, ok := err.(*RuntimeError); ok {
		if rerr.Line == 0 {
			rerr.Line = line
		}
		return rerr
	}
	return &RuntimeError{Kind: EvaluationError, Line: line, Message: err.Error(), Cause: err}
}
