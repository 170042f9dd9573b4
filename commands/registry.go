package commands

import (
	"regexp"
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
	"github.com/vernacular-lang/vernacular/parser"
)

// handler executes one matched command. m is the full regex submatch slice,
// m[0] the whole input.
type handler func(sc *interp.Scopes, m []string) (interp.Outcome, error)

// pattern is one entry in the dispatch table. example is the canonical
// spelling, used for suggestions and help.
type pattern struct {
	re      *regexp.Regexp
	example string
	run     handler
}

func cmd(expr, example string, run handler) pattern {
	return pattern{re: regexp.MustCompile(`(?i)^` + expr + `$`), example: example, run: run}
}

// buildPatterns assembles the dispatch table. Order is priority: specific
// forms must precede the general forms that would otherwise swallow them.
func (r *Runtime) buildPatterns() []pattern {
	var ps []pattern
	ps = append(ps, r.controlPatterns()...)
	ps = append(ps, r.loopPatterns()...)
	ps = append(ps, r.functionPatterns()...)
	ps = append(ps, r.conditionalPatterns()...)
	ps = append(ps, r.sessionPatterns()...)
	ps = append(ps, r.databasePatterns()...)
	ps = append(ps, r.httpPatterns()...)
	ps = append(ps, r.filePatterns()...)
	ps = append(ps, r.listPatterns()...)
	ps = append(ps, r.mathPatterns()...)
	ps = append(ps, r.stringPatterns()...)
	ps = append(ps, r.datetimePatterns()...)
	ps = append(ps, r.variablePatterns()...)
	ps = append(ps, r.inputPatterns()...)
	ps = append(ps, r.systemPatterns()...)
	ps = append(ps, r.printPatterns()...)
	ps = append(ps, r.helpPatterns()...)
	return ps
}

// ExecuteLeaf dispatches one non-block line to the first matching handler.
// Unmatched input gets a suggestion error rather than silence.
func (r *Runtime) ExecuteLeaf(text string, sc *interp.Scopes) (interp.Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return interp.Normal, nil
	}

	// A line that reads as a block header reached the executor by mistake,
	// usually from the REPL. Point at the missing body instead of guessing.
	if parser.IsBlockHeader(text) {
		return interp.Normal, interp.NewEvaluationError(0,
			"%q opens a block: indent the lines that belong to it underneath", text)
	}

	for _, p := range r.patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		r.logger.Debug("command matched", "pattern", p.example, "input", text)
		return p.run(sc, m)
	}

	return interp.Normal, r.unknownCommandError(text)
}
