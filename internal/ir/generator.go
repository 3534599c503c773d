/*
File: classc/internal/ir/generator.go
*/

package ir

import (
	"fmt"
	"strconv"

	"github.com/classc-lang/classc/internal/ast"
	"github.com/classc-lang/classc/internal/diagnostics"
	"github.com/classc-lang/classc/internal/symbols"
	"github.com/classc-lang/classc/internal/token"
)

// Generator walks a parsed ast.Tree and emits Quadruples. Only the block of
// the function named "main" is ever translated — every other FunctionStatement
// is parsed successfully but produces no IR, preserving the behavior of the
// implementation this package was translated from (recorded as a deliberate
// decision in DESIGN.md rather than an oversight).
type Generator struct {
	tree  *ast.Tree
	table *symbols.Table

	tempCounter  int
	varCounter   int
	labelCounter int

	quads []Quadruple
}

// Generate translates tree into its quadruple list, or returns the first
// semantic error encountered.
func Generate(tree *ast.Tree) ([]Quadruple, error) {
	g := &Generator{tree: tree, table: symbols.NewTable()}
	if err := g.analyze(); err != nil {
		return nil, err
	}
	return g.quads, nil
}

func (g *Generator) emit(op Opcode, arg1, arg2, result string) {
	g.quads = append(g.quads, Quadruple{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
}

func (g *Generator) newTemp() string {
	g.tempCounter++
	return fmt.Sprintf("t%d", g.tempCounter)
}

func (g *Generator) newVar() string {
	g.varCounter++
	return fmt.Sprintf("v%d", g.varCounter)
}

func (g *Generator) newLabel() string {
	g.labelCounter++
	return fmt.Sprintf("L%d", g.labelCounter)
}

// analyze finds the FunctionStatement named "main" directly under the class
// and translates its block.
func (g *Generator) analyze() error {
	t := g.tree
	root := t.Node(t.Root)
	for c := root.FirstChild; c != ast.None; c = t.Nodes[c].NextChild {
		node := t.Node(c)
		if node.Kind != ast.FunctionStatement {
			continue
		}
		nameIdx := t.FirstChildOfKind(c, ast.FunctionName)
		if nameIdx == ast.None || t.Node(nameIdx).Value != "main" {
			continue
		}
		blockIdx := t.FirstChildOfKind(c, ast.Block)
		if blockIdx == ast.None {
			return diagnostics.Semanticf(node.Line, "function `main` has no body")
		}
		return g.block(blockIdx)
	}
	return diagnostics.Semanticf(0, "no `main` function found")
}

// block pushes a fresh lexical scope, translates every statement in source
// order, and pops the scope back off before returning.
func (g *Generator) block(idx int) error {
	g.table.Push()
	defer g.table.Pop()
	for _, c := range g.tree.Children(idx) {
		if err := g.statement(c); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) statement(idx int) error {
	node := g.tree.Node(idx)
	switch node.Kind {
	case ast.Statement:
		return g.declare(idx)
	case ast.Assignment:
		return g.assignment(idx)
	case ast.Print:
		return g.print(idx)
	case ast.Block:
		return g.block(idx)
	case ast.ControlIf:
		return g.controlIf(idx)
	case ast.ControlWhile:
		return g.controlWhile(idx)
	case ast.Return, ast.VoidReturn:
		return nil
	case ast.FunctionStatement, ast.Include:
		return nil
	case ast.FunctionCall:
		name := ""
		if n := g.tree.FirstChildOfKind(idx, ast.FunctionName); n != ast.None {
			name = g.tree.Node(n).Value
		}
		return diagnostics.Semanticf(node.Line, "calling `%s` is not supported inside main", name)
	default:
		return diagnostics.Semanticf(node.Line, "cannot translate node kind %s", node.Kind)
	}
}

// declare records a variable (or array) declaration in the current scope.
// Redeclaring a name already bound in this scope is a semantic error;
// shadowing a binding from an outer scope is not.
func (g *Generator) declare(idx int) error {
	node := g.tree.Node(idx)
	name := node.Value
	if g.table.DeclaredInCurrentScope(name) {
		return diagnostics.Semanticf(node.Line, "variable `%s` is already declared in this scope", name)
	}

	if size, values, ok := ast.ParseArrayInit(node.Meta); ok {
		elems := make([]string, size)
		for i := range elems {
			elems[i] = g.newVar()
		}
		for i, v := range values {
			if i >= size {
				break
			}
			g.emit(OpAssign, v, "", elems[i])
		}
		g.table.Declare(name, &symbols.Info{
			Source: name, Kind: symbols.Array,
			ArraySize: size, ArrayElems: elems,
		})
		return nil
	}

	kind := symbols.Int
	if node.DeclType == "double" || node.DeclType == "float" {
		kind = symbols.Double
	}
	g.table.Declare(name, &symbols.Info{Source: name, Kind: kind, Synth: g.newVar()})
	return nil
}

// assignment translates both `name = expr` and `name[index] = expr`.
func (g *Generator) assignment(idx int) error {
	node := g.tree.Node(idx)
	children := g.tree.Children(idx)

	if len(children) == 2 && g.tree.Node(children[0]).Kind == ast.ExprArrayItem {
		place, err := g.arrayElementPlace(children[0])
		if err != nil {
			return err
		}
		rhs, err := g.expression(children[1])
		if err != nil {
			return err
		}
		g.emit(OpAssign, rhs, "", place)
		return nil
	}

	if len(children) != 1 {
		return diagnostics.Semanticf(node.Line, "malformed assignment to `%s`", node.Value)
	}
	info, ok := g.table.Lookup(node.Value)
	if !ok {
		return diagnostics.Semanticf(node.Line, "variable `%s` is not defined before use", node.Value)
	}
	rhs, err := g.expression(children[0])
	if err != nil {
		return err
	}
	g.emit(OpAssign, rhs, "", info.Synth)
	return nil
}

// arrayElementPlace resolves an ExprArrayItem to the synthesized place for
// one of its elements. Only constant indices are supported: this front end
// models an array as N independent scalar places rather than real indexed
// memory, so a variable index has nothing to resolve to (see DESIGN.md).
func (g *Generator) arrayElementPlace(itemIdx int) (string, error) {
	node := g.tree.Node(itemIdx)
	info, ok := g.table.Lookup(node.Value)
	if !ok {
		return "", diagnostics.Semanticf(node.Line, "variable `%s` is not defined before use", node.Value)
	}
	if info.Kind != symbols.Array {
		return "", diagnostics.Semanticf(node.Line, "`%s` is not an array", node.Value)
	}

	indexNode := g.tree.FirstChildOfKind(itemIdx, ast.ArrayIndex)
	exprIdx := g.tree.Child(indexNode, 0)
	lit := g.tree.Node(exprIdx)
	if lit.Kind != ast.ExprConstant {
		return "", diagnostics.Semanticf(node.Line, "index into `%s` must be a constant", node.Value)
	}
	i, err := strconv.Atoi(lit.Value)
	if err != nil || i < 0 || i >= info.ArraySize {
		return "", diagnostics.Semanticf(node.Line, "index out of bounds for array `%s`", node.Value)
	}
	return info.ArrayElems[i], nil
}

func (g *Generator) print(idx int) error {
	for _, c := range g.tree.Children(idx) {
		node := g.tree.Node(c)
		if node.Kind == ast.PrintString {
			g.emit(OpPrintString, node.Value, "", "")
			continue
		}
		place, err := g.expression(c)
		if err != nil {
			return err
		}
		g.emit(OpPrint, place, "", "")
	}
	return nil
}

// expression recursively translates an expression subtree, returning the
// place (a variable name, temp name, or literal) its value ends up in.
func (g *Generator) expression(idx int) (string, error) {
	node := g.tree.Node(idx)
	switch node.Kind {
	case ast.ExprConstant:
		return node.Value, nil

	case ast.ExprVariable:
		info, ok := g.table.Lookup(node.Value)
		if !ok {
			return "", diagnostics.Semanticf(node.Line, "variable `%s` is not defined before use", node.Value)
		}
		return info.Synth, nil

	case ast.ExprArrayItem:
		return g.arrayElementPlace(idx)

	case ast.ExprDoubleOp, ast.ExprBoolDoubleOp:
		children := g.tree.Children(idx)
		if len(children) != 3 {
			return "", diagnostics.Semanticf(node.Line, "malformed binary expression")
		}
		left, err := g.expression(children[0])
		if err != nil {
			return "", err
		}
		opNode := g.tree.Node(children[1])
		right, err := g.expression(children[2])
		if err != nil {
			return "", err
		}
		op, err := opcodeForBinary(token.Kind(opNode.Value))
		if err != nil {
			return "", err
		}
		result := g.newTemp()
		g.emit(op, left, right, result)
		return result, nil

	case ast.ExprUniOp, ast.ExprBoolUniOp:
		children := g.tree.Children(idx)
		if len(children) != 2 {
			return "", diagnostics.Semanticf(node.Line, "malformed unary expression")
		}
		opNode := g.tree.Node(children[0])
		operand, err := g.expression(children[1])
		if err != nil {
			return "", err
		}
		op, err := opcodeForUnary(token.Kind(opNode.Value))
		if err != nil {
			return "", err
		}
		result := g.newTemp()
		g.emit(op, operand, "", result)
		return result, nil

	default:
		return "", diagnostics.Semanticf(node.Line, "cannot translate expression node kind %s", node.Kind)
	}
}

// controlWhile emits:
//
//	L_start:   if !cond goto L_end
//	           <body>
//	           goto L_start
//	L_end:
func (g *Generator) controlWhile(idx int) error {
	condIdx := g.tree.FirstChildOfKind(idx, ast.ControlCondition)
	bodyIdx := g.tree.FirstChildOfKind(idx, ast.Block)
	if condIdx == ast.None || bodyIdx == ast.None {
		return diagnostics.Semanticf(g.tree.Node(idx).Line, "malformed while loop")
	}

	startLabel := g.newLabel()
	endLabel := g.newLabel()

	g.emit(OpLabel, "", "", startLabel)
	condExpr := g.tree.Child(condIdx, 0)
	place, err := g.expression(condExpr)
	if err != nil {
		return err
	}
	g.emit(OpJumpFalse, place, "", endLabel)
	if err := g.block(bodyIdx); err != nil {
		return err
	}
	g.emit(OpJump, "", "", startLabel)
	g.emit(OpLabel, "", "", endLabel)
	return nil
}

// controlIf emits:
//
//	if !cond goto L_else
//	<then>
//	goto L_end      (only when an else/else-if branch follows)
//	L_else:
//	<else, recursively, if present>
//	L_end:          (only when an else/else-if branch follows)
func (g *Generator) controlIf(idx int) error {
	children := g.tree.Children(idx)
	if len(children) < 2 {
		return diagnostics.Semanticf(g.tree.Node(idx).Line, "malformed if statement")
	}
	condIdx := children[0]
	thenBlock := children[1]

	elseLabel := g.newLabel()
	endLabel := g.newLabel()

	condExpr := g.tree.Child(condIdx, 0)
	place, err := g.expression(condExpr)
	if err != nil {
		return err
	}
	g.emit(OpJumpFalse, place, "", elseLabel)
	if err := g.block(thenBlock); err != nil {
		return err
	}

	hasElse := len(children) == 3
	if hasElse {
		g.emit(OpJump, "", "", endLabel)
	}
	g.emit(OpLabel, "", "", elseLabel)
	if hasElse {
		elseNode := g.tree.Node(children[2])
		if elseNode.Kind == ast.ControlIf {
			if err := g.controlIf(children[2]); err != nil {
				return err
			}
		} else {
			if err := g.block(children[2]); err != nil {
				return err
			}
		}
		g.emit(OpLabel, "", "", endLabel)
	}
	return nil
}
