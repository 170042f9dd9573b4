// Package repl provides the interactive prompt. Lines execute as they
// arrive; a block header switches to buffered entry until a blank line
// closes the block, then the whole block parses and runs at once.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vernacular-lang/vernacular/commands"
	"github.com/vernacular-lang/vernacular/interp"
	"github.com/vernacular-lang/vernacular/lexer"
	"github.com/vernacular-lang/vernacular/parser"
)

const (
	prompt       = "vern> "
	blockPrompt  = "  ... "
	replFilename = "<repl>"
)

// Options configures a REPL session.
type Options struct {
	In  io.Reader
	Out io.Writer

	// Interactive forces prompts on or off. Nil means autodetect from
	// whether In is a terminal.
	Interactive *bool

	Config interp.Config
}

// REPL is one interactive session: a command runtime, an engine over it,
// and the input stream they read from.
type REPL struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool

	rt     *commands.Runtime
	engine *interp.Engine
}

// New builds a session. State persists across entries until the session
// ends or a reset command clears it.
func New(opts Options) *REPL {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	interactive := false
	if opts.Interactive != nil {
		interactive = *opts.Interactive
	} else if f, ok := opts.In.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	// One shared reader: the prompt loop and the ask-for-input commands
	// must not buffer each other's lines away.
	in := bufio.NewReader(opts.In)

	rt := commands.New(commands.Options{
		Out:               opts.Out,
		In:                in,
		MaxLoopIterations: opts.Config.MaxLoopIterations,
	})
	env := interp.NewEnvironment(rt, opts.Out)
	return &REPL{
		in:          in,
		out:         opts.Out,
		interactive: interactive,
		rt:          rt,
		engine:      interp.New(env, opts.Config),
	}
}

var quitWords = map[string]bool{
	"quit": true, "exit": true, "bye": true, "goodbye": true,
}

// Run reads until end of input or a quit word.
func (r *REPL) Run() error {
	defer r.rt.Close()

	if r.interactive {
		fmt.Fprintln(r.out, "Vernacular. Type things in plain words; \"help\" lists ideas, \"quit\" leaves.")
	}

	for {
		r.showPrompt(prompt)
		line, ok := r.readLine()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || lexer.IsComment(trimmed):
			continue
		case quitWords[strings.ToLower(trimmed)]:
			if r.interactive {
				fmt.Fprintln(r.out, "Goodbye!")
			}
			return nil
		}

		src := line
		if parser.IsBlockHeader(trimmed) {
			src = r.readBlock(line)
		}

		r.execute(src)
	}
	return nil
}

// readBlock buffers a block entry: lines after a header, until a blank line
// or end of input closes it.
func (r *REPL) readBlock(header string) string {
	lines := []string{header}
	for {
		r.showPrompt(blockPrompt)
		line, ok := r.readLine()
		if !ok || strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *REPL) execute(src string) {
	prog, err := parser.ParseWithOptions(src, parser.Options{Filename: replFilename})
	if err != nil {
		fmt.Fprintln(r.out, err.Error())
		return
	}
	if err := r.engine.Run(prog); err != nil {
		fmt.Fprintln(r.out, err.Error())
	}
}

func (r *REPL) showPrompt(p string) {
	if r.interactive {
		io.WriteString(r.out, p)
	}
}

func (r *REPL) readLine() (string, bool) {
	line, err := r.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), true
		}
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}
