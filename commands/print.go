package commands

import (
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
)

// printPatterns sit near the end of the table: their general forms would
// otherwise shadow every "show ..." command above them.
func (r *Runtime) printPatterns() []pattern {
	return []pattern{
		cmd(`(?:print|say|display|show|output|echo|tell me) (["'].*["'])`,
			`print "TEXT"`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				text, _ := unquote(m[1])
				r.printf("%s", interpolate(sc, text))
				return interp.Normal, nil
			}),
		cmd(`(?:print|say|display|show|output|echo|tell me) (\w+)`,
			`print NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				if v, ok := sc.Resolve(m[1]); ok {
					r.printf("%s", formatValue(v))
					return interp.Normal, nil
				}
				if strings.EqualFold(m[1], "list") && r.currentList != nil {
					r.printf("%s", formatValue(r.currentList))
					return interp.Normal, nil
				}
				return interp.Normal, interp.NewNameError(0, "I don't know a variable called %q", m[1])
			}),
		cmd(`(?:print|say|display|show|output|echo|tell me) (.+)`,
			`say TEXT`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				r.printf("%s", interpolate(sc, m[1]))
				return interp.Normal, nil
			}),
	}
}

// interpolate substitutes {name} placeholders with in-scope values. Unknown
// names stay as written so literal braces survive.
func interpolate(sc *interp.Scopes, text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	var b strings.Builder
	for {
		open := strings.Index(text, "{")
		if open < 0 {
			b.WriteString(text)
			return b.String()
		}
		close := strings.Index(text[open:], "}")
		if close < 0 {
			b.WriteString(text)
			return b.String()
		}
		close += open
		b.WriteString(text[:open])
		name := text[open+1 : close]
		if v, ok := sc.Resolve(name); ok {
			b.WriteString(formatValue(v))
		} else {
			b.WriteString(text[open : close+1])
		}
		text = text[close+1:]
	}
}
