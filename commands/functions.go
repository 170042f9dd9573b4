package commands

import (
	"sort"
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
)

// functionPatterns cover the legacy flat functions: a name bound to a
// one-line command sequence. Multi-step bodies chain with "and then".
// Block-bodied functions are defined and called by the engine and never
// reach these handlers.
func (r *Runtime) functionPatterns() []pattern {
	return []pattern{
		cmd(`define function (\w+) as (.+)`,
			`define function NAME as COMMAND`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				r.flatFuncs[strings.ToLower(m[1])] = m[2]
				r.printf("Defined function %q", m[1])
				return interp.Normal, nil
			}),
		cmd(`(?:call function|call|run) (\w+)`,
			`call function NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				body, ok := r.flatFuncs[strings.ToLower(m[1])]
				if !ok {
					return interp.Normal, interp.NewNameError(0, "I don't know a function called %q", m[1])
				}
				for _, step := range strings.Split(body, " and then ") {
					out, err := r.ExecuteLeaf(strings.TrimSpace(step), sc)
					if err != nil {
						return interp.Normal, err
					}
					if out.Signal != interp.SignalNormal {
						return out, nil
					}
				}
				return interp.Normal, nil
			}),
		cmd(`(?:show|list) (?:all )?(?:my )?functions`,
			`show all functions`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if len(r.flatFuncs) == 0 {
					r.printf("No functions defined")
					return interp.Normal, nil
				}
				names := make([]string, 0, len(r.flatFuncs))
				for name := range r.flatFuncs {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					r.printf("%s: %s", name, r.flatFuncs[name])
				}
				return interp.Normal, nil
			}),
		cmd(`delete function (\w+)`,
			`delete function NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				name := strings.ToLower(m[1])
				if _, ok := r.flatFuncs[name]; !ok {
					return interp.Normal, interp.NewNameError(0, "I don't know a function called %q", m[1])
				}
				delete(r.flatFuncs, name)
				r.printf("Deleted function %q", m[1])
				return interp.Normal, nil
			}),
	}
}
