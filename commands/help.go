package commands

import (
	"github.com/vernacular-lang/vernacular/interp"
)

var helpText = `Here are some things you can say:

  Output       print "hello"  ·  say hello {name}
  Variables    set count to 10  ·  what is count  ·  show all variables
  Math         add 3 and 4  ·  divide 10 by 2  ·  the square root of 16
  Text         make name uppercase  ·  count the letters in "hello"
  Lists        create a list called pets with cat, dog  ·  add fish to list pets
  Blocks       if count is greater than 5:  ·  repeat 3 times:  ·  while x is less than 10:
  Functions    define function greet:  ·  call function greet
  Files        save "note" to the file notes.txt  ·  read the file notes.txt
  Data         create a csv file data.csv with headers a, b  ·  save list pets to json file pets.json
  Database     connect to database app.db  ·  create a table users with columns name, age
  Web          fetch the url example.com  ·  check the url example.com
  Session      save session to work.json  ·  save data to backup.xml
  Misc         clear the screen  ·  benchmark performance

Block bodies are indented lines under a header ending with ":".`

func (r *Runtime) helpPatterns() []pattern {
	return []pattern{
		cmd(`(?:help|what can (?:you|i) do|show (?:me )?(?:the )?commands)`,
			`help`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				r.printf("%s", helpText)
				return interp.Normal, nil
			}),
	}
}
