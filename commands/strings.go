package commands

import (
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
)

func (r *Runtime) stringPatterns() []pattern {
	return []pattern{
		cmd(`(?:(?:make|turn) (\S+) (?:all )?upper ?case|shout (\S+))`,
			`make TEXT uppercase`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				token := m[1]
				if token == "" {
					token = m[2]
				}
				v := strings.ToUpper(stringOperand(sc, token))
				sc.Assign("result", v)
				r.printf("%s", v)
				return interp.Normal, nil
			}),
		cmd(`(?:(?:make|turn) (\S+) (?:all )?lower ?case|whisper (\S+))`,
			`make TEXT lowercase`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				token := m[1]
				if token == "" {
					token = m[2]
				}
				v := strings.ToLower(stringOperand(sc, token))
				sc.Assign("result", v)
				r.printf("%s", v)
				return interp.Normal, nil
			}),
		cmd(`(?:count the letters in|how long is) (\S+)`,
			`count the letters in TEXT`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				v := stringOperand(sc, m[1])
				sc.Assign("result", len([]rune(v)))
				r.printf("%q has %d character(s)", v, len([]rune(v)))
				return interp.Normal, nil
			}),
		cmd(`reverse (?:the )?(?:text|word|string)? ?(\S+)`,
			`reverse the text TEXT`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				runes := []rune(stringOperand(sc, m[1]))
				for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
					runes[i], runes[j] = runes[j], runes[i]
				}
				sc.Assign("result", string(runes))
				r.printf("%s", string(runes))
				return interp.Normal, nil
			}),
		cmd(`replace (\S+) with (\S+) in (\S+)`,
			`replace OLD with NEW in TEXT`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				text := stringOperand(sc, m[3])
				v := strings.ReplaceAll(text, stringOperand(sc, m[1]), stringOperand(sc, m[2]))
				sc.Assign("result", v)
				r.printf("%s", v)
				return interp.Normal, nil
			}),
		cmd(`split (\S+) (?:by|on) (\S+)`,
			`split TEXT by SEPARATOR`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				sep := stringOperand(sc, m[2])
				if strings.EqualFold(sep, "space") || strings.EqualFold(sep, "spaces") {
					sep = " "
				}
				parts := strings.Split(stringOperand(sc, m[1]), sep)
				items := make([]any, len(parts))
				for i, p := range parts {
					items[i] = p
				}
				sc.Assign("result", items)
				r.printf("%s", formatValue(items))
				return interp.Normal, nil
			}),
	}
}
