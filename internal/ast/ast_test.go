/*
File: classc/internal/ast/ast_test.go
*/

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTreeRootIsClass(t *testing.T) {
	tree := NewTree("Demo", 1)
	root := tree.Node(tree.Root)
	assert.Equal(t, Class, root.Kind)
	assert.Equal(t, "Demo", root.Value)
}

func TestBuilderAppendChildPreservesOrder(t *testing.T) {
	tree := NewTree("Demo", 1)
	b := NewBuilder(tree)

	first := b.AddChild(tree.Root, Statement, "a", 2)
	second := b.AddChild(tree.Root, Statement, "b", 3)
	third := b.AddChild(tree.Root, Statement, "c", 4)

	children := tree.Children(tree.Root)
	assert.Equal(t, []int{first, second, third}, children)
}

func TestFirstChildOfKind(t *testing.T) {
	tree := NewTree("Demo", 1)
	b := NewBuilder(tree)
	b.AddChild(tree.Root, Include, "", 1)
	fn := b.AddChild(tree.Root, FunctionStatement, "", 2)

	found := tree.FirstChildOfKind(tree.Root, FunctionStatement)
	assert.Equal(t, fn, found)

	missing := tree.FirstChildOfKind(tree.Root, ControlWhile)
	assert.Equal(t, None, missing)
}

func TestFormatAndParseArrayInitRoundTrip(t *testing.T) {
	meta := FormatArrayInit("3", []string{"1", "2", "3"})
	assert.Equal(t, "size=3&v=1,2,3", meta)

	size, values, ok := ParseArrayInit(meta)
	assert.True(t, ok)
	assert.Equal(t, 3, size)
	assert.Equal(t, []string{"1", "2", "3"}, values)
}

func TestFormatArrayInitWithoutValues(t *testing.T) {
	meta := FormatArrayInit("5", nil)
	assert.Equal(t, "size=5", meta)

	size, values, ok := ParseArrayInit(meta)
	assert.True(t, ok)
	assert.Equal(t, 5, size)
	assert.Nil(t, values)
}

func TestParseArrayInitRejectsUnrelatedString(t *testing.T) {
	_, _, ok := ParseArrayInit("int")
	assert.False(t, ok)
}

func TestNodeKindStringFallsBackForUnknownKind(t *testing.T) {
	var k NodeKind = 9999
	assert.Contains(t, k.String(), "NodeKind")
}
