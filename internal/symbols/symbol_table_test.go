/*
File: classc/internal/symbols/symbol_table_test.go
*/

package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclareAndLookupInSameScope(t *testing.T) {
	table := NewTable()
	table.Declare("x", &Info{Source: "x", Kind: Int, Synth: "v1"})

	info, ok := table.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "v1", info.Synth)
}

func TestLookupWalksOuterScopes(t *testing.T) {
	table := NewTable()
	table.Declare("x", &Info{Source: "x", Kind: Int, Synth: "v1"})

	table.Push()
	info, ok := table.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "v1", info.Synth)
	table.Pop()
}

func TestShadowingInnerScopeDoesNotMutateOuter(t *testing.T) {
	table := NewTable()
	table.Declare("x", &Info{Source: "x", Kind: Int, Synth: "v1"})

	table.Push()
	table.Declare("x", &Info{Source: "x", Kind: Int, Synth: "v2"})
	inner, _ := table.Lookup("x")
	assert.Equal(t, "v2", inner.Synth)
	table.Pop()

	outer, _ := table.Lookup("x")
	assert.Equal(t, "v1", outer.Synth)
}

func TestDeclaredInCurrentScopeOnlyChecksInnermost(t *testing.T) {
	table := NewTable()
	table.Declare("x", &Info{Source: "x", Kind: Int, Synth: "v1"})

	table.Push()
	assert.False(t, table.DeclaredInCurrentScope("x"))
	table.Declare("x", &Info{Source: "x", Kind: Int, Synth: "v2"})
	assert.True(t, table.DeclaredInCurrentScope("x"))
	table.Pop()
}

func TestLookupMissingNameFails(t *testing.T) {
	table := NewTable()
	_, ok := table.Lookup("missing")
	assert.False(t, ok)
}

func TestPopOnEmptyTablePanics(t *testing.T) {
	table := &Table{}
	assert.Panics(t, func() { table.Pop() })
}
