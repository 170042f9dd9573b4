package parser

import (
	"fmt"
	"strings"
)

// Format renders the program back to canonical script text: headers
// re-serialized from their resolved form, bodies indented four columns per
// level. Parsing the output yields a structurally identical tree, so Format
// followed by Parse is idempotent.
func Format(p *Program) string {
	var b strings.Builder
	formatNodes(&b, p.Nodes, 0)
	return b.String()
}

func formatNodes(b *strings.Builder, nodes []Node, depth int) {
	prefix := strings.Repeat("    ", depth)
	for _, node := range nodes {
		switch t := node.(type) {
		case *Command:
			b.WriteString(prefix)
			b.WriteString(t.Text)
			b.WriteString("\n")
		case *BlockNode:
			b.WriteString(prefix)
			b.WriteString(formatHeader(t.Header))
			b.WriteString("\n")
			formatNodes(b, t.Body, depth+1)
		}
	}
}

func formatHeader(h Header) string {
	switch h.Kind {
	case KindIf:
		return fmt.Sprintf("if %s:", h.Condition)
	case KindElse:
		return "else:"
	case KindWhile:
		return fmt.Sprintf("while %s:", h.Condition)
	case KindForEach:
		return fmt.Sprintf("for each %s in list %s:", h.Binding, h.Source)
	case KindRepeat:
		return fmt.Sprintf("repeat %d times:", h.Count)
	case KindFunctionDef:
		if len(h.Params) > 0 {
			return fmt.Sprintf("define function %s with %s:", h.Name, strings.Join(h.Params, ", "))
		}
		return fmt.Sprintf("define function %s:", h.Name)
	default:
		return ""
	}
}
