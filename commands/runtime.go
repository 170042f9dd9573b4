// Package commands implements the leaf-command executor: the regex-driven
// dispatch table that gives every non-block line its meaning, the boolean
// predicate evaluator used by if/while headers, and the list resolver used
// by for-each headers.
package commands

import (
	"bufio"
	"database/sql"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/vernacular-lang/vernacular/interp"
)

// Options configures a Runtime. Zero values fall back to process defaults.
type Options struct {
	Out    io.Writer
	In     io.Reader
	Logger *slog.Logger

	// Seed fixes the random source, for reproducible tests. Zero seeds from
	// the clock.
	Seed int64

	// MaxLoopIterations bounds the single-line while form, matching the
	// engine's bound for block loops. Zero means
	// interp.DefaultMaxLoopIterations.
	MaxLoopIterations int
}

// Runtime holds the executor's state that lives outside the scope stack:
// flat single-line functions, the open database handle, and the I/O streams
// commands read from and print to.
type Runtime struct {
	out    io.Writer
	in     *bufio.Reader
	logger *slog.Logger
	rng    *rand.Rand

	patterns []pattern

	// flatFuncs are the legacy one-line functions ("define function f as
	// ..."). Block-bodied functions live in the engine's table, not here.
	flatFuncs map[string]string

	// currentList backs the anonymous list commands ("add 3 to the list").
	currentList []any

	maxLoopIterations int

	db         *sql.DB
	dbPath     string
	httpClient *http.Client
}

// New builds a Runtime with its full dispatch table.
func New(opts Options) *Runtime {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxLoopIterations <= 0 {
		opts.MaxLoopIterations = interp.DefaultMaxLoopIterations
	}

	r := &Runtime{
		out:               opts.Out,
		in:                bufio.NewReader(opts.In),
		logger:            opts.Logger,
		rng:               rand.New(rand.NewSource(seed)),
		flatFuncs:         make(map[string]string),
		maxLoopIterations: opts.MaxLoopIterations,
		httpClient:        &http.Client{Timeout: 15 * time.Second},
	}
	r.patterns = r.buildPatterns()
	return r
}

// Close releases external resources, currently the database handle.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.dbPath = ""
	return err
}
