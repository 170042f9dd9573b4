package commands

import (
	"strconv"
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
)

// loopPatterns are the legacy single-line loop forms. They re-dispatch
// their body through ExecuteLeaf, so break and continue work inside them
// too, consumed right here.
func (r *Runtime) loopPatterns() []pattern {
	return []pattern{
		cmd(`repeat (\d+) times?: (.+)`,
			`repeat N times: COMMAND`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				count, _ := strconv.Atoi(m[1])
				return r.runInline(sc, count, func(i int) string { return m[2] })
			}),
		cmd(`count from (\d+) to (\d+)(?: and (.+))?`,
			`count from A to B and COMMAND`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				from, _ := strconv.Atoi(m[1])
				to, _ := strconv.Atoi(m[2])
				for i := from; i <= to; i++ {
					sc.Assign("count", i)
					body := strings.TrimSpace(m[3])
					if body == "" {
						r.printf("%d", i)
						continue
					}
					out, err := r.ExecuteLeaf(body, sc)
					if err != nil {
						return interp.Normal, err
					}
					if out.Signal == interp.SignalBreak {
						return interp.Normal, nil
					}
					if out.Signal == interp.SignalReturn {
						return out, nil
					}
				}
				return interp.Normal, nil
			}),
		cmd(`for each (?:item )?in (?:the )?list(?: (\w+))? do (.+)`,
			`for each in list NAME do COMMAND`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				name := m[1]
				if name == "" {
					name = "list"
				}
				items, err := r.ResolveList(name, sc)
				if err != nil {
					return interp.Normal, err
				}
				for _, item := range items {
					sc.Assign("item", item)
					out, err := r.ExecuteLeaf(m[2], sc)
					if err != nil {
						return interp.Normal, err
					}
					if out.Signal == interp.SignalBreak {
						return interp.Normal, nil
					}
					if out.Signal == interp.SignalReturn {
						return out, nil
					}
				}
				return interp.Normal, nil
			}),
		cmd(`while (\w+) is less than (\d+) do (.+)`,
			`while VAR is less than N do COMMAND`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				bound, _ := strconv.Atoi(m[2])
				for iterations := 0; iterations < r.maxLoopIterations; iterations++ {
					current, err := numericOperand(sc, m[1])
					if err != nil {
						return interp.Normal, err
					}
					if current >= float64(bound) {
						return interp.Normal, nil
					}
					out, err := r.ExecuteLeaf(m[3], sc)
					if err != nil {
						return interp.Normal, err
					}
					if out.Signal == interp.SignalBreak {
						return interp.Normal, nil
					}
					if out.Signal == interp.SignalReturn {
						return out, nil
					}
				}
				r.printf("Warning: loop stopped after %d iterations (safety limit)", r.maxLoopIterations)
				return interp.Normal, nil
			}),
	}
}

func (r *Runtime) runInline(sc *interp.Scopes, count int, body func(i int) string) (interp.Outcome, error) {
	for i := 0; i < count; i++ {
		out, err := r.ExecuteLeaf(body(i), sc)
		if err != nil {
			return interp.Normal, err
		}
		switch out.Signal {
		case interp.SignalBreak:
			return interp.Normal, nil
		case interp.SignalContinue:
			continue
		case interp.SignalReturn:
			return out, nil
		}
	}
	return interp.Normal, nil
}
