// Package cli wires the vern command line: script execution, the REPL, and
// watch mode.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vernacular-lang/vernacular/commands"
	"github.com/vernacular-lang/vernacular/interp"
	"github.com/vernacular-lang/vernacular/parser"
	"github.com/vernacular-lang/vernacular/repl"
)

// Version is stamped by the release build.
var Version = "dev"

type options struct {
	debug             bool
	watch             bool
	maxLoopIterations int
}

// NewRootCmd builds the vern command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "vern [script]",
		Short:   "Run scripts written in plain English",
		Long:    "Vernacular runs scripts written in plain English: indented blocks for control flow, everyday phrasing for commands. With no script it starts an interactive session.",
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				os.Setenv("VERN_DEBUG", "1")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return repl.New(repl.Options{Config: opts.config()}).Run()
			}
			return runScript(args[0], opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().IntVar(&opts.maxLoopIterations, "max-loop-iterations", interp.DefaultMaxLoopIterations,
		"safety bound for while loops")

	runCmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				return watchScript(args[0], opts)
			}
			return runScript(args[0], opts)
		},
	}
	runCmd.Flags().BoolVar(&opts.watch, "watch", false, "re-run the script whenever it changes")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.New(repl.Options{Config: opts.config()}).Run()
		},
	}

	root.AddCommand(runCmd, replCmd)
	return root
}

// Execute runs the CLI and reports its exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func (o *options) config() interp.Config {
	return interp.Config{MaxLoopIterations: o.maxLoopIterations}
}

// runScript parses and executes one file with a fresh runtime.
func runScript(path string, opts *options) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	prog, err := parser.ParseWithOptions(string(src), parser.Options{Filename: filepath.Base(path)})
	if err != nil {
		return err
	}

	rt := commands.New(commands.Options{MaxLoopIterations: opts.maxLoopIterations})
	defer rt.Close()

	env := interp.NewEnvironment(rt, os.Stdout)
	return interp.New(env, opts.config()).Run(prog)
}

// watchScript runs the file, then re-runs it on every change until
// interrupted. Each run gets a fresh runtime so state never leaks between
// edits.
func watchScript(path string, opts *options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start the file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors that write via rename would otherwise
	// drop the watch on the first save.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}

	runOnce := func() {
		if err := runScript(path, opts); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}

	fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", path)
	runOnce()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	var last time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, _ := filepath.Abs(event.Name)
			if changed != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Editors fire bursts of events per save.
			if time.Since(last) < 200*time.Millisecond {
				continue
			}
			last = time.Now()
			fmt.Fprintf(os.Stderr, "\n%s changed, re-running\n", path)
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
