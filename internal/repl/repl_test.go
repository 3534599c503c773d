/*
File: classc/internal/repl/repl_test.go
*/

package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classc-lang/classc/internal/ir"
)

func TestCompileWrappedSource(t *testing.T) {
	quads, err := Compile(wrapInShell("int x; x = 1 + 2; print(x);"))
	assert.NoError(t, err)
	assert.Equal(t, ir.OpAdd, quads[0].Op)
}

func TestCompileSurfacesSyntaxErrors(t *testing.T) {
	_, err := Compile(wrapInShell("int x = ;"))
	assert.Error(t, err)
}

func TestWrapInShellProducesAMainFunction(t *testing.T) {
	src := wrapInShell("print(1);")
	assert.Contains(t, src, "class REPL")
	assert.Contains(t, src, "public int main()")
	assert.Contains(t, src, "print(1);")
}
