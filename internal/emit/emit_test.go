/*
File: classc/internal/emit/emit_test.go
*/

package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classc-lang/classc/internal/ir"
)

func TestWriteFileThenReadFileRoundTrips(t *testing.T) {
	quads := []ir.Quadruple{
		{Op: ir.OpAdd, Arg1: "1", Arg2: "2", Result: "t1"},
		{Op: ir.OpAssign, Arg1: "t1", Arg2: "", Result: "v1"},
		{Op: ir.OpPrint, Arg1: "v1", Arg2: "", Result: ""},
	}

	path := filepath.Join(t.TempDir(), "out.ir")
	assert.NoError(t, WriteFile(path, quads))

	got, err := ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, quads, got)
}

func TestWriteFileFormatIsCommaSeparated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ir")
	quads := []ir.Quadruple{{Op: ir.OpAssign, Arg1: "3", Arg2: "", Result: "v1"}}
	assert.NoError(t, WriteFile(path, quads))

	got, err := ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, ir.OpAssign, got[0].Op)
	assert.Equal(t, "3", got[0].Arg1)
	assert.Equal(t, "v1", got[0].Result)
}

func TestReadFileRejectsMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ir")
	assert.NoError(t, os.WriteFile(path, []byte("not,enough\n"), 0o644))
	_, err := ReadFile(path)
	assert.Error(t, err)
}
