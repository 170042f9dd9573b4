package commands

import (
	"github.com/vernacular-lang/vernacular/interp"
)

// conditionalPatterns are the single-line "if ... then COMMAND" forms. The
// condition text goes through the same predicate evaluator the block engine
// uses, so both spellings agree on what is true.
func (r *Runtime) conditionalPatterns() []pattern {
	return []pattern{
		cmd(`if (.+?) then (.+?) otherwise (.+)`,
			`if CONDITION then COMMAND otherwise COMMAND`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				ok, err := r.EvaluatePredicate(m[1], sc)
				if err != nil {
					return interp.Normal, err
				}
				if ok {
					return r.ExecuteLeaf(m[2], sc)
				}
				return r.ExecuteLeaf(m[3], sc)
			}),
		cmd(`if (.+?) then (.+)`,
			`if CONDITION then COMMAND`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				ok, err := r.EvaluatePredicate(m[1], sc)
				if err != nil {
					return interp.Normal, err
				}
				if !ok {
					return interp.Normal, nil
				}
				return r.ExecuteLeaf(m[2], sc)
			}),
	}
}
