package parser

// Node is a single parsed element: either a leaf Command or a BlockNode.
type Node interface {
	// Pos returns the 1-based source line the node starts on.
	Pos() int

	node()
}

// Command is a leaf command line. It is immutable once created and owned
// exclusively by its parent BlockNode, or by the Program if at top level.
type Command struct {
	Text string
	Line int
}

func (c *Command) Pos() int { return c.Line }
func (c *Command) node()    {}

// BlockNode is a colon-terminated header together with its indented body.
// A BlockNode exclusively owns its Body sequence; Parent is a non-owning
// back-reference used only for diagnostics.
type BlockNode struct {
	Header     Header
	HeaderText string
	Indent     int
	Line       int
	Body       []Node

	// bodyIndent is the indent required of every direct child. It is fixed
	// by the first child and zero until then.
	bodyIndent int

	Parent *BlockNode
}

func (b *BlockNode) Pos() int { return b.Line }
func (b *BlockNode) node()    {}

// Depth returns how many blocks enclose this one.
func (b *BlockNode) Depth() int {
	depth := 0
	for p := b.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// Program is the parse result for one script: an ordered sequence of
// top-level commands and blocks.
type Program struct {
	Nodes []Node

	// Source is the original script text, kept for error snippets.
	Source string
}

// LineCount returns the number of source lines held by the tree: every
// header plus every leaf command, at any depth. For a well-formed parse this
// equals the number of non-blank, non-comment source lines.
func (p *Program) LineCount() int {
	return countLines(p.Nodes)
}

func countLines(nodes []Node) int {
	n := 0
	for _, node := range nodes {
		switch t := node.(type) {
		case *Command:
			n++
		case *BlockNode:
			n += 1 + countLines(t.Body)
		}
	}
	return n
}
