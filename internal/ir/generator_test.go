/*
File: classc/internal/ir/generator_test.go
*/

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classc-lang/classc/internal/lexer"
	"github.com/classc-lang/classc/internal/parser"
)

func generate(t *testing.T, src string) []Quadruple {
	t.Helper()
	tokens, lines, err := lexer.Scan(src)
	assert.NoError(t, err)
	tree, err := parser.Parse(tokens, lines)
	assert.NoError(t, err)
	quads, err := Generate(tree)
	assert.NoError(t, err)
	return quads
}

func TestGenerateSimpleAssignmentAndPrint(t *testing.T) {
	quads := generate(t, `
class Demo {
	public int main() {
		int x;
		x = 1 + 2;
		print(x);
	}
}
`)
	// declare emits nothing -> ADD 1,2 -> t1; ASSIGN t1 -> v1; PRINT v1
	assert.Equal(t, OpAdd, quads[0].Op)
	assert.Equal(t, "1", quads[0].Arg1)
	assert.Equal(t, "2", quads[0].Arg2)
	assert.Equal(t, "t1", quads[0].Result)

	assert.Equal(t, OpAssign, quads[1].Op)
	assert.Equal(t, "t1", quads[1].Arg1)
	assert.Equal(t, "v1", quads[1].Result)

	assert.Equal(t, OpPrint, quads[2].Op)
	assert.Equal(t, "v1", quads[2].Arg1)
}

func TestGenerateUndeclaredVariableIsSemanticError(t *testing.T) {
	tokens, lines, err := lexer.Scan(`
class Demo {
	public int main() {
		x = 1;
	}
}
`)
	assert.NoError(t, err)
	tree, err := parser.Parse(tokens, lines)
	assert.NoError(t, err)

	_, err = Generate(tree)
	assert.Error(t, err)
}

func TestGenerateRedeclarationInSameScopeIsError(t *testing.T) {
	tokens, lines, err := lexer.Scan(`
class Demo {
	public int main() {
		int x;
		int x;
	}
}
`)
	assert.NoError(t, err)
	tree, err := parser.Parse(tokens, lines)
	assert.NoError(t, err)

	_, err = Generate(tree)
	assert.Error(t, err)
}

func TestGenerateOnlyTranslatesMain(t *testing.T) {
	quads := generate(t, `
class Demo {
	public int helper() {
		int y;
		y = 5;
	}
	public int main() {
		int x;
		x = 1;
	}
}
`)
	for _, q := range quads {
		assert.NotEqual(t, "5", q.Arg1, "helper's body must not be translated")
	}
	assert.Len(t, quads, 1)
	assert.Equal(t, OpAssign, quads[0].Op)
}

func TestGenerateWhileLoopEmitsLabelsAndJumps(t *testing.T) {
	quads := generate(t, `
class Demo {
	public int main() {
		int i;
		i = 0;
		while (i < 10) {
			print(i);
		}
	}
}
`)
	var ops []Opcode
	for _, q := range quads {
		ops = append(ops, q.Op)
	}
	assert.Contains(t, ops, OpLabel)
	assert.Contains(t, ops, OpJumpFalse)
	assert.Contains(t, ops, OpJump)

	// after `i = 0` (quads[0]), the first label starts the loop, the last label ends it
	assert.Equal(t, OpLabel, quads[1].Op)
	assert.Equal(t, OpLabel, quads[len(quads)-1].Op)
}

func TestGenerateIfElseEmitsSingleEndLabel(t *testing.T) {
	quads := generate(t, `
class Demo {
	public int main() {
		int x;
		x = 1;
		if (x < 1) {
			print(1);
		} else {
			print(2);
		}
	}
}
`)
	labelCount := 0
	for _, q := range quads {
		if q.Op == OpLabel {
			labelCount++
		}
	}
	assert.Equal(t, 2, labelCount) // else label + end label
}

func TestGenerateArrayConstantIndexWriteAndRead(t *testing.T) {
	quads := generate(t, `
class Demo {
	public int main() {
		int arr[2] = {10, 20};
		arr[0] = 99;
		print(arr[1]);
	}
}
`)
	// init: ASSIGN 10 -> elem0, ASSIGN 20 -> elem1, then ASSIGN 99 -> elem0, then PRINT elem1
	assert.Equal(t, OpAssign, quads[0].Op)
	assert.Equal(t, "10", quads[0].Arg1)
	assert.Equal(t, OpAssign, quads[1].Op)
	assert.Equal(t, "20", quads[1].Arg1)
	assert.Equal(t, OpAssign, quads[2].Op)
	assert.Equal(t, "99", quads[2].Arg1)
	assert.Equal(t, quads[0].Result, quads[2].Result)
	assert.Equal(t, OpPrint, quads[3].Op)
	assert.Equal(t, quads[1].Result, quads[3].Arg1)
}

func TestGenerateVariableArrayIndexIsSemanticError(t *testing.T) {
	tokens, lines, err := lexer.Scan(`
class Demo {
	public int main() {
		int arr[2] = {1, 2};
		int i;
		i = 0;
		print(arr[i]);
	}
}
`)
	assert.NoError(t, err)
	tree, err := parser.Parse(tokens, lines)
	assert.NoError(t, err)
	_, err = Generate(tree)
	assert.Error(t, err)
}

func TestGenerateFunctionCallOtherThanPrintIsSemanticError(t *testing.T) {
	tokens, lines, err := lexer.Scan(`
class Demo {
	public int main() {
		helper();
	}
}
`)
	assert.NoError(t, err)
	tree, err := parser.Parse(tokens, lines)
	assert.NoError(t, err)
	_, err = Generate(tree)
	assert.Error(t, err)
}
