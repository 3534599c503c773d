/*
File: classc/internal/ast/ast.go
*/

// Package ast is the syntax tree the parser builds and the IR generator
// walks. Nodes live in a single arena (a slice owned by the Tree) and are
// addressed by integer index rather than pointer, so the tree has no
// pointer aliasing. Links are FirstChild/NextChild indices set by the
// Builder; it does not check that a node is linked in only once, so callers
// that reparent a node (the parser's for-loop desugar) leave the old parent
// detached from the tree.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeKind is the tagged-variant replacement for the source grammar's
// free-form node-name strings. Each kind fixes how many children a
// well-formed node of that kind owns and in what order (see the parser for
// the productions that build each shape).
type NodeKind int

const (
	Class NodeKind = iota
	Block
	Statement
	FunctionStatement
	ControlIf
	ControlCondition
	ControlWhile
	FunctionName
	Type
	ParameterList
	Parameter
	FunctionCall
	FunctionParameters
	Param
	Print
	PrintString
	Assignment
	ExprConstant
	ExprVariable
	ExprArrayItem
	ArrayIndex
	ExprOperator
	ExprDoubleOp
	ExprUniOp
	ExprBoolDoubleOp
	ExprBoolUniOp
	Include
	IncludeItem
	Return
	VoidReturn
)

var kindNames = map[NodeKind]string{
	Class:              "Class",
	Block:               "Block",
	Statement:           "Statement",
	FunctionStatement:   "FunctionStatement",
	ControlIf:           "Control-If",
	ControlCondition:    "Control-Condition",
	ControlWhile:        "Control-While",
	FunctionName:        "FunctionName",
	Type:                "Type",
	ParameterList:       "ParameterList",
	Parameter:           "Parameter",
	FunctionCall:        "FunctionCall",
	FunctionParameters:  "FunctionParameters",
	Param:               "Param",
	Print:               "Print",
	PrintString:         "Print-String",
	Assignment:          "Assignment",
	ExprConstant:        "Expression-Constant",
	ExprVariable:        "Expression-Variable",
	ExprArrayItem:       "Expression-ArrayItem",
	ArrayIndex:          "Array-Index",
	ExprOperator:        "Expression-Operator",
	ExprDoubleOp:        "Expression-DoubleOp",
	ExprUniOp:           "Expression-UniOp",
	ExprBoolDoubleOp:    "Expression-Bool-DoubleOp",
	ExprBoolUniOp:       "Expression-Bool-UniOp",
	Include:             "Include",
	Return:              "Return",
	VoidReturn:          "VoidReturn",
}

// String renders the kind the way spec.md's prose names node roles, purely
// for debug/pretty-printer output.
func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// noChild marks an absent child/sibling link in the arena.
const noChild = -1

// Node is one entry in a Tree's arena. Value carries the role-specific
// payload (an identifier, an operator lexeme, a class/function name, a
// literal); DeclType carries a declared type name ("int", or "array-int" for
// an array declarator); Meta carries an array declarator's size/initializer
// string.
type Node struct {
	Kind       NodeKind
	Value      string
	DeclType   string
	Meta       string // array-initializer size/values, see FormatArrayInit
	Line       int
	FirstChild int
	NextChild  int // next sibling
}

// Tree owns the node arena. The zero Tree is not usable; construct one with
// NewTree.
type Tree struct {
	Nodes []Node
	Root  int
}

// NewTree allocates a Tree whose root is a Class node named className.
func NewTree(className string, line int) *Tree {
	t := &Tree{}
	t.Root = t.alloc(Node{Kind: Class, Value: className, Line: line, FirstChild: noChild, NextChild: noChild})
	return t
}

func (t *Tree) alloc(n Node) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// Builder is the mutable cursor the source's raw first-child/right-sibling
// tree exposed as a `cur_node` field. Here insertion always returns the new
// node's index explicitly instead of mutating shared state, so nothing
// aliases a stale cursor across calls.
type Builder struct {
	tree *Tree
}

// NewBuilder wraps tree for node construction.
func NewBuilder(tree *Tree) *Builder { return &Builder{tree: tree} }

// Tree returns the underlying tree being built.
func (b *Builder) Tree() *Tree { return b.tree }

// New allocates a detached node (no parent yet) and returns its index.
func (b *Builder) New(kind NodeKind, value string, line int) int {
	return b.tree.alloc(Node{Kind: kind, Value: value, Line: line, FirstChild: noChild, NextChild: noChild})
}

// NewTyped is New plus a DeclType payload (used for Type/declaration nodes).
func (b *Builder) NewTyped(kind NodeKind, value, declType string, line int) int {
	idx := b.New(kind, value, line)
	b.tree.Nodes[idx].DeclType = declType
	return idx
}

// NewArrayDecl is NewTyped plus the compact array-initializer Meta payload
// (see FormatArrayInit), used for array declarator nodes.
func (b *Builder) NewArrayDecl(value, declType, meta string, line int) int {
	idx := b.NewTyped(Statement, value, declType, line)
	b.tree.Nodes[idx].Meta = meta
	return idx
}

// AppendChild links child as the last of parent's children, preserving
// source order among siblings.
func (b *Builder) AppendChild(parent, child int) {
	p := &b.tree.Nodes[parent]
	if p.FirstChild == noChild {
		p.FirstChild = child
		return
	}
	cur := p.FirstChild
	for b.tree.Nodes[cur].NextChild != noChild {
		cur = b.tree.Nodes[cur].NextChild
	}
	b.tree.Nodes[cur].NextChild = child
}

// AddChild allocates a new node of the given kind/value and appends it as
// the last child of parent in one step, returning the new index.
func (b *Builder) AddChild(parent int, kind NodeKind, value string, line int) int {
	child := b.New(kind, value, line)
	b.AppendChild(parent, child)
	return child
}

// Node returns the node at idx by value (arena-backed trees are small enough
// that copying a Node struct is cheaper than indexing through a pointer
// indirection at every call site).
func (t *Tree) Node(idx int) Node { return t.Nodes[idx] }

// HasChildren reports whether idx owns at least one child.
func (t *Tree) HasChildren(idx int) bool { return t.Nodes[idx].FirstChild != noChild }

// Children returns the indices of idx's children in source order.
func (t *Tree) Children(idx int) []int {
	var out []int
	for c := t.Nodes[idx].FirstChild; c != noChild; c = t.Nodes[c].NextChild {
		out = append(out, c)
	}
	return out
}

// Child returns the nth (0-indexed) child of idx, or -1 if it has fewer than
// n+1 children.
func (t *Tree) Child(idx, n int) int {
	c := t.Nodes[idx].FirstChild
	for ; c != noChild && n > 0; n-- {
		c = t.Nodes[c].NextChild
	}
	return c
}

// FirstChildOfKind returns the first child of idx whose Kind matches, or -1.
func (t *Tree) FirstChildOfKind(idx int, kind NodeKind) int {
	for c := t.Nodes[idx].FirstChild; c != noChild; c = t.Nodes[c].NextChild {
		if t.Nodes[c].Kind == kind {
			return c
		}
	}
	return -1
}

// None is the arena sentinel for "no such node" returned by lookup helpers.
const None = noChild

// FormatArrayInit serializes an array declaration's size and optional
// initializer values into the compact string stored in a declarator node's
// Meta field: "size=N" or "size=N&v=d1,d2,...".
func FormatArrayInit(size string, values []string) string {
	if len(values) == 0 {
		return "size=" + size
	}
	return "size=" + size + "&v=" + strings.Join(values, ",")
}

// ParseArrayInit is the typed accessor for FormatArrayInit's format, so
// callers never hand-split the metadata string themselves.
func ParseArrayInit(declType string) (size int, values []string, ok bool) {
	rest, found := strings.CutPrefix(declType, "size=")
	if !found {
		return 0, nil, false
	}
	sizeStr := rest
	if idx := strings.Index(rest, "&v="); idx >= 0 {
		sizeStr = rest[:idx]
		valuesStr := rest[idx+len("&v="):]
		if valuesStr != "" {
			values = strings.Split(valuesStr, ",")
		}
	}
	n, err := strconv.Atoi(sizeStr)
	if err != nil {
		return 0, nil, false
	}
	return n, values, true
}
