package commands

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/vernacular-lang/vernacular/interp"
)

// predicateForm is one atomic comparison shape. Ordered: longer operator
// phrases first so "greater than or equal to" never half-matches as
// "greater than".
type predicateForm struct {
	re   *regexp.Regexp
	eval func(r *Runtime, sc *interp.Scopes, m []string) (bool, error)
}

var predicateForms = []predicateForm{
	{
		re: regexp.MustCompile(`(?i)^(\S+) is greater than or equal to (.+)$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			return compareNumeric(sc, m[1], m[2], func(a, b float64) bool { return a >= b })
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) is less than or equal to (.+)$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			return compareNumeric(sc, m[1], m[2], func(a, b float64) bool { return a <= b })
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) is (?:greater|more) than (.+)$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			return compareNumeric(sc, m[1], m[2], func(a, b float64) bool { return a > b })
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) is less than (.+)$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			return compareNumeric(sc, m[1], m[2], func(a, b float64) bool { return a < b })
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) is empty$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			empty, err := isEmpty(sc, m[1])
			return empty, err
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) is not empty$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			empty, err := isEmpty(sc, m[1])
			return !empty, err
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) is not equal to (.+)$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			eq, err := compareEqual(sc, m[1], m[2])
			return !eq, err
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) is not (.+)$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			eq, err := compareEqual(sc, m[1], m[2])
			return !eq, err
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) (?:is equal to|equals|is) (.+)$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			return compareEqual(sc, m[1], m[2])
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(\S+) contains (.+)$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			return containsCheck(sc, m[1], m[2])
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(?:list )?(\w+) has (\d+) items?$`),
		eval: func(r *Runtime, sc *interp.Scopes, m []string) (bool, error) {
			items, err := listOperand(sc, m[1])
			if err != nil {
				return false, err
			}
			want, _ := strconv.Atoi(m[2])
			return len(items) == want, nil
		},
	},
}

// EvaluatePredicate evaluates a header condition. "or" splits looser than
// "and", and a leading "not" negates the rest. Text matching no comparison
// form is an error, never a silent true.
func (r *Runtime) EvaluatePredicate(condition string, sc *interp.Scopes) (bool, error) {
	condition = strings.TrimSpace(condition)

	if parts := splitKeyword(condition, " or "); len(parts) > 1 {
		for _, part := range parts {
			ok, err := r.EvaluatePredicate(part, sc)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	if parts := splitKeyword(condition, " and "); len(parts) > 1 {
		for _, part := range parts {
			ok, err := r.EvaluatePredicate(part, sc)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}

	if rest, found := strings.CutPrefix(strings.ToLower(condition), "not "); found {
		ok, err := r.EvaluatePredicate(condition[len(condition)-len(rest):], sc)
		return !ok, err
	}

	for _, form := range predicateForms {
		if m := form.re.FindStringSubmatch(condition); m != nil {
			return form.eval(r, sc, m)
		}
	}

	return false, interp.NewEvaluationError(0, "I can't evaluate the condition %q", condition)
}

// splitKeyword splits on a lowercase keyword case-insensitively, preserving
// the original text of each part.
func splitKeyword(s, keyword string) []string {
	lower := strings.ToLower(s)
	var parts []string
	start := 0
	for {
		i := strings.Index(lower[start:], keyword)
		if i < 0 {
			break
		}
		i += start
		parts = append(parts, strings.TrimSpace(s[start:i]))
		start = i + len(keyword)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

func compareNumeric(sc *interp.Scopes, lhs, rhs string, op func(a, b float64) bool) (bool, error) {
	a, err := numericOperand(sc, lhs)
	if err != nil {
		return false, err
	}
	b, err := numericOperand(sc, rhs)
	if err != nil {
		return false, err
	}
	return op(a, b), nil
}

// compareEqual compares numerically when both sides read as numbers and
// textually otherwise.
func compareEqual(sc *interp.Scopes, lhs, rhs string) (bool, error) {
	a := resolveToken(sc, lhs)
	if _, ok := sc.Resolve(strings.TrimSpace(lhs)); !ok {
		if _, quoted := unquote(strings.TrimSpace(lhs)); !quoted {
			if _, err := strconv.ParseFloat(strings.TrimSpace(lhs), 64); err != nil {
				return false, interp.NewNameError(0, "I don't know a variable called %q", strings.TrimSpace(lhs))
			}
		}
	}
	b := resolveToken(sc, rhs)

	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		return af == bf, nil
	}
	return strings.EqualFold(formatValue(a), formatValue(b)), nil
}

func containsCheck(sc *interp.Scopes, lhs, rhs string) (bool, error) {
	v, ok := sc.Resolve(strings.TrimSpace(lhs))
	if !ok {
		return false, interp.NewNameError(0, "I don't know a variable called %q", strings.TrimSpace(lhs))
	}
	needle := resolveToken(sc, rhs)

	switch hay := v.(type) {
	case []any:
		for _, item := range hay {
			if formatValue(item) == formatValue(needle) {
				return true, nil
			}
		}
		return false, nil
	default:
		return strings.Contains(
			strings.ToLower(formatValue(hay)),
			strings.ToLower(formatValue(needle)),
		), nil
	}
}

func isEmpty(sc *interp.Scopes, name string) (bool, error) {
	v, ok := sc.Resolve(strings.TrimSpace(name))
	if !ok {
		return false, interp.NewNameError(0, "I don't know a variable called %q", strings.TrimSpace(name))
	}
	switch val := v.(type) {
	case []any:
		return len(val) == 0, nil
	case string:
		return val == "", nil
	default:
		return false, nil
	}
}
