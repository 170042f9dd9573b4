package commands

import (
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
)

// controlPatterns turn the loop-control and return phrasings into signals.
// The engine decides whether a loop or function boundary is there to
// consume them.
func (r *Runtime) controlPatterns() []pattern {
	return []pattern{
		cmd(`(?:break from loop|break from the loop|break out of the loop|break|stop the loop|exit the loop|leave the loop)`,
			`break from loop`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				return interp.Outcome{Signal: interp.SignalBreak}, nil
			}),
		cmd(`(?:continue with loop|continue the loop|continue|skip to next|next iteration|skip this one)`,
			`continue with loop`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				return interp.Outcome{Signal: interp.SignalContinue}, nil
			}),
		cmd(`return(?: (.+))?`,
			`return VALUE`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				out := interp.Outcome{Signal: interp.SignalReturn}
				if raw := strings.TrimSpace(m[1]); raw != "" {
					out.Value = resolveToken(sc, raw)
				}
				return out, nil
			}),
	}
}
