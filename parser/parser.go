// Package parser builds a block tree from an indentation-structured script.
// Colon-terminated headers open blocks; nesting is inferred from indentation
// deltas, Python style. Leaf command lines are kept as opaque text for the
// command executor.
package parser

import (
	"errors"
	"fmt"

	"github.com/vernacular-lang/vernacular/lexer"
)

// Options configures a parse.
type Options struct {
	Filename string // used in error snippets; empty for stdin/string input
	TabWidth int    // tab expansion width; zero means lexer.DefaultTabWidth
}

// Parse builds the block tree for one script with default options.
func Parse(src string) (*Program, error) {
	return ParseWithOptions(src, Options{})
}

// ParseWithOptions builds the block tree for one script.
func ParseWithOptions(src string, opts Options) (*Program, error) {
	lx := lexer.NewWithOptions(lexer.Options{TabWidth: opts.TabWidth})

	b := &builder{
		src:      src,
		filename: opts.Filename,
		prog:     &Program{Source: src},
	}

	for _, line := range lx.Scan(src) {
		if err := b.consume(line); err != nil {
			return nil, err
		}
	}

	return b.prog, nil
}

// HasBlockStructure reports whether the script contains at least one block
// header. Scripts without block structure are flat command streams and can
// be fed to the command executor line by line.
func HasBlockStructure(src string) bool {
	for _, line := range lexer.New().Scan(src) {
		if IsBlockHeader(line.Text) {
			return true
		}
	}
	return false
}

// builder maintains the open-block stack while consuming tokenized lines.
type builder struct {
	src      string
	filename string
	prog     *Program
	stack    []*BlockNode
}

func (b *builder) consume(line lexer.Line) error {
	// A line at or left of an open header closes that block. Pop until the
	// line is strictly inside the top of the stack.
	for len(b.stack) > 0 && line.Indent <= b.top().Indent {
		b.stack = b.stack[:len(b.stack)-1]
	}

	if err := b.checkIndent(line); err != nil {
		return err
	}

	header, isHeader, err := ResolveHeader(line.Text)
	if err != nil {
		return b.headerError(line, err)
	}
	if !isHeader {
		b.attach(&Command{Text: line.Text, Line: line.Number})
		return nil
	}

	node := &BlockNode{
		Header:     header,
		HeaderText: line.Text,
		Indent:     line.Indent,
		Line:       line.Number,
	}

	if header.Kind == KindElse {
		if err := b.checkElseAttachment(line); err != nil {
			return err
		}
	}

	b.attach(node)
	b.stack = append(b.stack, node)
	return nil
}

// checkIndent validates that the line's indent is reachable from the open
// block stack: top level lines sit at column zero, and all direct children
// of a block share the indent fixed by its first child.
func (b *builder) checkIndent(line lexer.Line) error {
	if len(b.stack) == 0 {
		if line.Indent != 0 {
			return &ParseError{
				Kind:       ErrIndentation,
				Filename:   b.filename,
				Line:       line.Number,
				Message:    "unexpected indent at top level",
				Suggestion: "top-level lines must start at column 0",
				Input:      b.src,
			}
		}
		return nil
	}

	top := b.top()
	if top.bodyIndent == 0 {
		// First child fixes the body indent for all its siblings.
		top.bodyIndent = line.Indent
		return nil
	}
	if line.Indent == top.bodyIndent {
		return nil
	}

	if line.Indent > top.bodyIndent {
		return &ParseError{
			Kind:       ErrIndentation,
			Filename:   b.filename,
			Line:       line.Number,
			Message:    fmt.Sprintf("unexpected indent: expected %d columns, got %d", top.bodyIndent, line.Indent),
			Suggestion: "indent the line to match its siblings, or open a block with a ':' header",
			Input:      b.src,
		}
	}
	return &ParseError{
		Kind:       ErrIndentation,
		Filename:   b.filename,
		Line:       line.Number,
		Message:    fmt.Sprintf("unindent does not match any outer indentation level (got %d columns)", line.Indent),
		Suggestion: "dedent to a level used by an enclosing block",
		Input:      b.src,
	}
}

// checkElseAttachment requires the immediately preceding sibling to be an if
// block at exactly the same indent. Anything else, including an else whose
// indent does not match its intended if, is a syntax error.
func (b *builder) checkElseAttachment(line lexer.Line) error {
	siblings := b.prog.Nodes
	if len(b.stack) > 0 {
		siblings = b.top().Body
	}

	if len(siblings) > 0 {
		if prev, ok := siblings[len(siblings)-1].(*BlockNode); ok &&
			prev.Header.Kind == KindIf && prev.Indent == line.Indent {
			return nil
		}
	}
	return &ParseError{
		Kind:       ErrSyntax,
		Filename:   b.filename,
		Line:       line.Number,
		Message:    "'else:' without a matching 'if' at the same indentation",
		Suggestion: "place 'else:' directly after the if block, at the same indent as its 'if'",
		Example:    "if count is greater than 3:\n    print \"big\"\nelse:\n    print \"small\"",
		Input:      b.src,
	}
}

func (b *builder) headerError(line lexer.Line, cause error) error {
	perr := &ParseError{
		Kind:     ErrSyntax,
		Filename: b.filename,
		Line:     line.Number,
		Input:    b.src,
	}
	switch {
	case errors.Is(cause, errUnrecognizedHeader):
		perr.Message = fmt.Sprintf("unrecognized block header %q", line.Text)
		perr.Suggestion = "block headers are if/else/while/for each/repeat/define function, ending with ':'"
		perr.Example = "repeat 5 times:"
	default:
		perr.Message = fmt.Sprintf("invalid block header %q: %v", line.Text, cause)
	}
	return perr
}

// attach appends a node to the body of the innermost open block, or to the
// top-level program when no block is open.
func (b *builder) attach(node Node) {
	if len(b.stack) == 0 {
		b.prog.Nodes = append(b.prog.Nodes, node)
		return
	}
	top := b.top()
	if block, ok := node.(*BlockNode); ok {
		block.Parent = top
	}
	top.Body = append(top.Body, node)
}

func (b *builder) top() *BlockNode {
	return b.stack[len(b.stack)-1]
}
