package commands

import (
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/vernacular-lang/vernacular/interp"
)

func (r *Runtime) variablePatterns() []pattern {
	return []pattern{
		cmd(`(?:(?:set|make) (\w+) (?:to|equal to|=) (.+)|let (\w+) be (.+)|create a variable called (\w+) with (?:the )?value (.+))`,
			`set NAME to VALUE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				name, raw := firstPair(m)
				value := resolveToken(sc, raw)
				sc.Assign(name, value)
				r.printf("%s is now %s", name, formatValue(value))
				return interp.Normal, nil
			}),
		cmd(`what is (\w+)`,
			`what is NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				v, ok := sc.Resolve(m[1])
				if !ok {
					return interp.Normal, interp.NewNameError(0, "I don't know a variable called %q", m[1])
				}
				r.printf("%s is %s", m[1], formatValue(v))
				return interp.Normal, nil
			}),
		cmd(`what type is (\w+)`,
			`what type is NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				v, ok := sc.Resolve(m[1])
				if !ok {
					return interp.Normal, interp.NewNameError(0, "I don't know a variable called %q", m[1])
				}
				r.printf("%s is %s", m[1], typeName(v))
				return interp.Normal, nil
			}),
		cmd(`convert (\w+) to (?:a )?(number|text|string|boolean)`,
			`convert NAME to a number`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				v, ok := sc.Resolve(m[1])
				if !ok {
					return interp.Normal, interp.NewNameError(0, "I don't know a variable called %q", m[1])
				}
				var converted any
				switch strings.ToLower(m[2]) {
				case "number":
					f, err := cast.ToFloat64E(v)
					if err != nil {
						return interp.Normal, interp.NewEvaluationError(0, "I can't turn %s into a number", formatValue(v))
					}
					converted = normalizeNumber(f)
				case "boolean":
					b, err := cast.ToBoolE(v)
					if err != nil {
						return interp.Normal, interp.NewEvaluationError(0, "I can't turn %s into a boolean", formatValue(v))
					}
					converted = b
				default:
					converted = formatValue(v)
				}
				sc.Assign(m[1], converted)
				r.printf("%s is now %s (%s)", m[1], formatValue(converted), typeName(converted))
				return interp.Normal, nil
			}),
		cmd(`(increase|decrease) (\w+) by (\S+)`,
			`increase NAME by N`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				current, err := numericOperand(sc, m[2])
				if err != nil {
					return interp.Normal, err
				}
				delta, err := numericOperand(sc, m[3])
				if err != nil {
					return interp.Normal, err
				}
				if strings.EqualFold(m[1], "decrease") {
					delta = -delta
				}
				sc.Assign(m[2], normalizeNumber(current+delta))
				r.printf("%s is now %s", m[2], formatValue(normalizeNumber(current+delta)))
				return interp.Normal, nil
			}),
		cmd(`show (?:all )?(?:my )?variables`,
			`show all variables`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				visible := sc.Visible()
				if len(visible) == 0 {
					r.printf("No variables set")
					return interp.Normal, nil
				}
				names := make([]string, 0, len(visible))
				for name := range visible {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					r.printf("%s = %s", name, formatValue(visible[name]))
				}
				return interp.Normal, nil
			}),
		cmd(`(?:delete (?:the )?variable|forget) (\w+)`,
			`delete the variable NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if !sc.Delete(m[1]) {
					return interp.Normal, interp.NewNameError(0, "I don't know a variable called %q", m[1])
				}
				r.printf("Forgot %s", m[1])
				return interp.Normal, nil
			}),
	}
}

// firstPair picks the populated (name, value) capture pair out of the
// set-variable alternation.
func firstPair(m []string) (string, string) {
	for i := 1; i+1 < len(m); i += 2 {
		if m[i] != "" {
			return m[i], strings.TrimSpace(m[i+1])
		}
	}
	return "", ""
}

func typeName(v any) string {
	switch v.(type) {
	case int, int64, float64:
		return "a number"
	case bool:
		return "a boolean"
	case []any:
		return "a list"
	case string:
		return "text"
	default:
		return "something else"
	}
}
