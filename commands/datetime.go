package commands

import (
	"strings"
	"time"

	"github.com/vernacular-lang/vernacular/interp"
)

func (r *Runtime) datetimePatterns() []pattern {
	return []pattern{
		cmd(`(?:(?:show|tell) me the (?:current )?time|what time is it)`,
			`what time is it`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				now := time.Now().Format("15:04:05")
				sc.Assign("result", now)
				r.printf("The time is %s", now)
				return interp.Normal, nil
			}),
		cmd(`(?:(?:show|tell) me (?:the |today's )?date|what (?:day|date) is it(?: today)?)`,
			`what date is it`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				today := time.Now().Format("Monday, January 2, 2006")
				sc.Assign("result", today)
				r.printf("Today is %s", today)
				return interp.Normal, nil
			}),
		cmd(`(?:show|tell) me the (?:current )?(?:date and time|datetime)`,
			`show me the date and time`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				now := time.Now().Format("2006-01-02 15:04:05")
				sc.Assign("result", now)
				r.printf("It is %s", now)
				return interp.Normal, nil
			}),
		cmd(`(add|subtract) (\S+) days? (?:to|from) today`,
			`add N days to today`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				n, err := numericOperand(sc, m[2])
				if err != nil {
					return interp.Normal, err
				}
				days := int(n)
				if strings.EqualFold(m[1], "subtract") {
					days = -days
				}
				when := time.Now().AddDate(0, 0, days).Format("Monday, January 2, 2006")
				sc.Assign("result", when)
				r.printf("That will be %s", when)
				return interp.Normal, nil
			}),
	}
}
