// Package lexer converts raw script text into indentation-measured line
// records. Blank lines and comment lines are dropped before indentation is
// measured; tabs are expanded to a fixed column width so mixed tabs and
// spaces compare consistently within one script.
package lexer

import (
	"log/slog"
	"os"
	"strings"
)

// DefaultTabWidth is the number of columns a tab expands to.
const DefaultTabWidth = 4

// Line is a single significant source line with its measured indentation.
type Line struct {
	Indent int    // leading whitespace width after tab expansion
	Text   string // trimmed content
	Number int    // 1-based line number in the original source
}

// Options configures the lexer.
type Options struct {
	// TabWidth is the column width of a tab character. Zero means
	// DefaultTabWidth.
	TabWidth int
}

// Lexer splits script source into indentation-measured lines.
type Lexer struct {
	tabWidth int
	logger   *slog.Logger
}

// New creates a Lexer with default options.
func New() *Lexer {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Lexer with explicit options.
func NewWithOptions(opts Options) *Lexer {
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	logLevel := slog.LevelInfo
	if os.Getenv("VERN_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps add noise when tracing line records
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))

	return &Lexer{
		tabWidth: tabWidth,
		logger:   logger,
	}
}

// Scan splits src into significant lines. Blank lines and comment lines
// (leading '#' or '//') are skipped; line numbers still count them so error
// reports match the original file.
func (l *Lexer) Scan(src string) []Line {
	var lines []Line

	for i, raw := range strings.Split(src, "\n") {
		number := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || IsComment(trimmed) {
			continue
		}

		line := Line{
			Indent: l.measureIndent(raw),
			Text:   trimmed,
			Number: number,
		}
		l.logger.Debug("scanned line", "number", line.Number, "indent", line.Indent, "text", line.Text)
		lines = append(lines, line)
	}

	return lines
}

// IsComment reports whether a trimmed line is a comment.
func IsComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//")
}

// measureIndent counts leading whitespace columns, expanding tabs.
func (l *Lexer) measureIndent(raw string) int {
	indent := 0
	for _, ch := range raw {
		switch ch {
		case ' ':
			indent++
		case '\t':
			indent += l.tabWidth
		default:
			return indent
		}
	}
	return indent
}
