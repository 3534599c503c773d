/*
File: classc/internal/prettyprint/prettyprint.go
*/

// Package prettyprint renders a syntax tree as indented text (for the CLI's
// -verbose flag) and a quadruple list one instruction per line (the CLI's
// and the REPL's normal output).
package prettyprint

import (
	"bytes"
	"fmt"

	"github.com/classc-lang/classc/internal/ast"
	"github.com/classc-lang/classc/internal/ir"
)

const indentSize = 2

// Printer accumulates indented text the way the teacher's visitor does:
// a running indent level plus a buffer, rather than returning strings from
// every recursive call.
type Printer struct {
	indent int
	buf    bytes.Buffer
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString(" ")
	}
}

// Tree renders the whole syntax tree rooted at tree.Root.
func Tree(tree *ast.Tree) string {
	p := &Printer{}
	p.node(tree, tree.Root)
	return p.buf.String()
}

func (p *Printer) node(tree *ast.Tree, idx int) {
	if idx == ast.None {
		return
	}
	n := tree.Node(idx)

	p.writeIndent()
	switch {
	case n.DeclType != "" && n.Value != "":
		fmt.Fprintf(&p.buf, "%s [%s : %s]\n", n.Kind, n.Value, n.DeclType)
	case n.Value != "":
		fmt.Fprintf(&p.buf, "%s [%s]\n", n.Kind, n.Value)
	default:
		fmt.Fprintf(&p.buf, "%s\n", n.Kind)
	}

	p.indent += indentSize
	for _, c := range tree.Children(idx) {
		p.node(tree, c)
	}
	p.indent -= indentSize
}

// Quadruples renders a quadruple list one instruction per line, the way a
// disassembler would, e.g. "  0: ASSIGN       3, , v1".
func Quadruples(quads []ir.Quadruple) string {
	var buf bytes.Buffer
	for i, q := range quads {
		fmt.Fprintf(&buf, "%3d: %-12s %s, %s, %s\n", i, q.Op, q.Arg1, q.Arg2, q.Result)
	}
	return buf.String()
}
