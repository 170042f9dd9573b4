package commands

import (
	"io"
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
)

func (r *Runtime) inputPatterns() []pattern {
	return []pattern{
		cmd(`(?:ask (?:me )?for|prompt for) (?:some )?input(?: with (["'].*["']))?`,
			`ask for input with "PROMPT"`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				prompt := "> "
				if m[1] != "" {
					text, _ := unquote(m[1])
					prompt = text + " "
				}
				line, err := r.readLine(prompt)
				if err != nil {
					return interp.Normal, err
				}
				sc.Assign("user_input", parseLiteral(line))
				return interp.Normal, nil
			}),
		cmd(`ask (["'].*["']) and (?:save|store) (?:the answer )?(?:as|in) (\w+)`,
			`ask "QUESTION" and save the answer as NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				question, _ := unquote(m[1])
				line, err := r.readLine(question + " ")
				if err != nil {
					return interp.Normal, err
				}
				sc.Assign(m[2], parseLiteral(line))
				return interp.Normal, nil
			}),
	}
}

// readLine prompts and reads one line. End of input counts as an empty
// answer rather than an error, so piped scripts that run out of stdin keep
// going.
func (r *Runtime) readLine(prompt string) (string, error) {
	io.WriteString(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", interp.NewEvaluationError(0, "could not read input: %v", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
