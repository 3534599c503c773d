/*
File: classc/internal/prettyprint/prettyprint_test.go
*/

package prettyprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classc-lang/classc/internal/ir"
	"github.com/classc-lang/classc/internal/lexer"
	"github.com/classc-lang/classc/internal/parser"
)

func TestTreeIndentsNestedNodes(t *testing.T) {
	tokens, lines, err := lexer.Scan(`
class Demo {
	public int main() {
		int x;
	}
}
`)
	assert.NoError(t, err)
	tree, err := parser.Parse(tokens, lines)
	assert.NoError(t, err)

	out := Tree(tree)
	assert.Contains(t, out, "Class")
	assert.Contains(t, out, "FunctionStatement")
	assert.Contains(t, out, "x")

	lines2 := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// the root line has no leading indentation, a nested line does
	assert.False(t, strings.HasPrefix(lines2[0], " "))
	found := false
	for _, l := range lines2 {
		if strings.HasPrefix(l, " ") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestQuadruplesRendersOneLinePerInstruction(t *testing.T) {
	quads := []ir.Quadruple{
		{Op: ir.OpAdd, Arg1: "1", Arg2: "2", Result: "t1"},
		{Op: ir.OpPrint, Arg1: "t1"},
	}
	out := Quadruples(quads)
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, out, "ADD")
	assert.Contains(t, out, "PRINT")
}
