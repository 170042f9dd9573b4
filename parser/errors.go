package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes structural parse errors.
type ErrorKind int

const (
	// ErrIndentation marks an indent that is not reachable from the current
	// open-block stack: an unexpected indent or an unmatched dedent.
	ErrIndentation ErrorKind = iota

	// ErrSyntax marks a block header ending in ':' that matches no known
	// block form, or an else without a matching if.
	ErrSyntax
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIndentation:
		return "indentation error"
	case ErrSyntax:
		return "syntax error"
	default:
		return "error"
	}
}

// ParseError is a structural script error with location and context for
// user-friendly messages.
type ParseError struct {
	Kind ErrorKind

	// Location
	Filename string // empty for stdin/string input
	Line     int    // 1-based source line

	// Core error info
	Message string

	// How to fix it
	Suggestion string // actionable fix
	Example    string // valid syntax

	// Input is the full script source, used to render a snippet.
	Input string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if snippet := e.snippet(); snippet != "" {
		b.WriteString("\n")
		b.WriteString(snippet)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\nsuggestion: %s", e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "\nexample: %s", e.Example)
	}
	return b.String()
}

// snippet renders the offending source line with a location pointer.
func (e *ParseError) snippet() string {
	if e.Input == "" || e.Line == 0 {
		return ""
	}
	lines := strings.Split(e.Input, "\n")
	if e.Line > len(lines) {
		return ""
	}

	var b strings.Builder
	if e.Filename != "" {
		fmt.Fprintf(&b, "  --> %s:%d\n", e.Filename, e.Line)
	} else {
		fmt.Fprintf(&b, "  --> line %d\n", e.Line)
	}
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s", e.Line, lines[e.Line-1])
	return b.String()
}

// Sentinel causes for header resolution. The parser wraps these into a full
// ParseError with line and snippet context.
var errUnrecognizedHeader = errors.New("unrecognized block header")

type duplicateParamError string

func (e duplicateParamError) Error() string {
	return fmt.Sprintf("duplicate parameter %q", string(e))
}

func errDuplicateParam(name string) error { return duplicateParamError(name) }
