package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/vernacular-lang/vernacular/interp"
)

const maxSuggestions = 3

// unknownCommandError builds the "did you mean" error for input that
// matched no pattern, ranking the canonical command examples by fuzzy
// distance.
func (r *Runtime) unknownCommandError(input string) error {
	suggestions := r.suggest(input)
	if len(suggestions) == 0 {
		return interp.NewEvaluationError(0,
			"I don't understand %q. Try \"help\" to see what I can do", input)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I don't understand %q. Did you mean:", input)
	for _, s := range suggestions {
		fmt.Fprintf(&b, "\n  %s", s)
	}
	return interp.NewEvaluationError(0, "%s", b.String())
}

// suggest returns the closest canonical examples, best first. Matching the
// first word of the input is tried before whole-line matching so "prnt x"
// still finds the print family.
func (r *Runtime) suggest(input string) []string {
	examples := make([]string, 0, len(r.patterns))
	seen := make(map[string]bool, len(r.patterns))
	for _, p := range r.patterns {
		if !seen[p.example] {
			seen[p.example] = true
			examples = append(examples, p.example)
		}
	}

	ranks := fuzzy.RankFindFold(firstWord(input), examples)
	if len(ranks) == 0 {
		ranks = fuzzy.RankFindFold(input, examples)
	}
	sort.Sort(ranks)

	var out []string
	for _, rank := range ranks {
		out = append(out, rank.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func firstWord(s string) string {
	word, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	return word
}
