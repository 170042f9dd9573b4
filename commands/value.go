package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/vernacular-lang/vernacular/interp"
)

// formatValue renders a value the way it should appear in output: whole
// floats without a trailing .0, lists in bracket form, everything else via
// cast.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nothing"
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return cast.ToString(v)
	}
}

// parseLiteral interprets one token the way a script author means it: quoted
// text is a string, digits are numbers, true/false are booleans, and
// anything else is the bare word itself.
func parseLiteral(token string) any {
	token = strings.TrimSpace(token)
	if unquoted, ok := unquote(token); ok {
		return unquoted
	}
	if n, err := strconv.Atoi(token); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f
	}
	switch strings.ToLower(token) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}
	return token
}

// resolveToken evaluates a token as a value: literals stay literal, bare
// words resolve as variables when one is in scope and otherwise stay words.
func resolveToken(sc *interp.Scopes, token string) any {
	v := parseLiteral(token)
	if word, ok := v.(string); ok {
		if _, wasQuoted := unquote(strings.TrimSpace(token)); !wasQuoted {
			if resolved, found := sc.Resolve(word); found {
				return resolved
			}
		}
	}
	return v
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return s, false
}

// numericOperand resolves a token that must be a number: a literal, or a
// variable holding one.
func numericOperand(sc *interp.Scopes, token string) (float64, error) {
	token = strings.TrimSpace(token)
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, nil
	}
	v, ok := sc.Resolve(token)
	if !ok {
		return 0, interp.NewNameError(0, "I don't know a number called %q", token)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, interp.NewEvaluationError(0, "%q holds %s, not a number", token, formatValue(v))
	}
	return f, nil
}

// stringOperand resolves a token that should be text: quoted literals stay
// as written, variables render through formatValue.
func stringOperand(sc *interp.Scopes, token string) string {
	return formatValue(resolveToken(sc, token))
}

// listOperand resolves a name to the list it holds.
func listOperand(sc *interp.Scopes, name string) ([]any, error) {
	v, ok := sc.Resolve(name)
	if !ok {
		return nil, interp.NewNameError(0, "I don't know a list called %q", name)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, interp.NewEvaluationError(0, "%q holds %s, not a list", name, formatValue(v))
	}
	return items, nil
}

func (r *Runtime) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
