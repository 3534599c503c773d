/*
File: classc/internal/parser/expressions.go
*/

package parser

import (
	"github.com/classc-lang/classc/internal/ast"
	"github.com/classc-lang/classc/internal/diagnostics"
	"github.com/classc-lang/classc/internal/token"
)

// parseExpression runs the shunting-yard algorithm over the tokens starting
// at the cursor, builds the resulting tree in a second pass over the
// reverse-Polish output, appends it as the single expression child of
// parent, and consumes stop (which must eventually be reached at the current
// paren depth — an unclosed '(' or missing stop is a syntax error).
//
// Relational operators >= and <= are rewritten during the RPN-to-tree pass:
// `a >= b` becomes `b < a` and `a <= b` becomes `b > a`, so the IR generator
// only ever has to know about < and >.
func (p *Parser) parseExpression(parent int, stop token.Kind) error {
	tree := p.builder.Tree()

	var opStack []int       // ast indices of pending ExprOperator nodes, and '(' markers
	var rpn []int           // operand/operator node indices in RPN order
	unary := map[int]bool{} // which ExprOperator nodes in rpn/opStack are prefix (unary)

	expectOperand := true // true while the next token must start an operand or a prefix op
	depth := 0            // '(' opened in this expression and not yet closed

	for !p.atEnd() && (p.cur().Kind != stop || depth > 0) {
		tok := p.cur()

		switch {
		case tok.Kind == stop && tok.Kind != token.RPAREN:
			return diagnostics.Syntaxf(tok.Line, "in expression, `(` is never closed")

		case tok.Kind == token.DIGIT_CONSTANT:
			rpn = append(rpn, p.builder.New(ast.ExprConstant, tok.Lexeme, tok.Line))
			p.advance()
			expectOperand = false

		case tok.Kind == token.IDENTIFIER:
			if p.peek(1).Kind == token.LBRACKET {
				item, err := p.parseArrayItem()
				if err != nil {
					return err
				}
				rpn = append(rpn, item)
			} else {
				rpn = append(rpn, p.builder.New(ast.ExprVariable, tok.Lexeme, tok.Line))
				p.advance()
			}
			expectOperand = false

		case tok.Kind == token.LPAREN:
			opStack = append(opStack, p.builder.New(ast.ExprOperator, "(", tok.Line))
			depth++
			p.advance()
			expectOperand = true

		case tok.Kind == token.RPAREN:
			matched := false
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				opStack = opStack[:len(opStack)-1]
				if tree.Node(top).Value == "(" {
					matched = true
					break
				}
				rpn = append(rpn, top)
			}
			if !matched {
				return diagnostics.Syntaxf(tok.Line, "in expression, found `)` without a matching `(`")
			}
			depth--
			p.advance()
			expectOperand = false

		case token.IsOperator(tok.Kind):
			opNode := p.builder.New(ast.ExprOperator, string(tok.Kind), tok.Line)
			isUnary := token.IsUnary(tok.Kind) && expectOperand
			if isUnary {
				unary[opNode] = true
			}
			curPrec := token.UnaryPrecedence
			if !isUnary {
				curPrec = token.Precedence(tok.Kind)
			}
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				topPrec := effectivePrecedence(tree, unary, top)
				if topPrec <= curPrec {
					break
				}
				rpn = append(rpn, top)
				opStack = opStack[:len(opStack)-1]
			}
			opStack = append(opStack, opNode)
			p.advance()
			expectOperand = true

		default:
			return diagnostics.Syntaxf(tok.Line, "in expression, unrecognized symbol `%s`", tok.Lexeme)
		}
	}

	if p.atEnd() {
		return diagnostics.Syntaxf(p.curLine(), "in expression, expected `%s` but reached end of input", stop)
	}
	p.advance() // consume stop

	for len(opStack) > 0 {
		top := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]
		if tree.Node(top).Value == "(" {
			return diagnostics.Syntaxf(tree.Node(top).Line, "in expression, `(` is never closed")
		}
		rpn = append(rpn, top)
	}

	root, err := p.buildFromRPN(rpn, unary)
	if err != nil {
		return err
	}
	p.builder.AppendChild(parent, root)
	return nil
}

func effectivePrecedence(tree *ast.Tree, unary map[int]bool, idx int) int {
	node := tree.Node(idx)
	if node.Value == "(" {
		return -1
	}
	if unary[idx] {
		return token.UnaryPrecedence
	}
	return token.Precedence(token.Kind(node.Value))
}

// buildFromRPN walks the reverse-Polish output left to right, maintaining an
// operand stack; every operator pops its arity's worth of operands and
// pushes the assembled subtree back, exactly like evaluating RPN, except the
// "values" being combined are subtrees rather than numbers.
func (p *Parser) buildFromRPN(rpn []int, unary map[int]bool) (int, error) {
	tree := p.builder.Tree()
	var operands []int

	for _, item := range rpn {
		node := tree.Node(item)
		if node.Kind != ast.ExprOperator {
			operands = append(operands, item)
			continue
		}

		boolOp := token.IsBoolOperator(token.Kind(node.Value))

		if unary[item] {
			if len(operands) < 1 {
				return -1, diagnostics.Syntaxf(node.Line, "in expression, operator `%s` has no operand", node.Value)
			}
			a := operands[len(operands)-1]
			operands = operands[:len(operands)-1]

			kind := ast.ExprUniOp
			if boolOp {
				kind = ast.ExprBoolUniOp
			}
			wrap := p.builder.New(kind, "", node.Line)
			p.builder.AppendChild(wrap, item)
			p.builder.AppendChild(wrap, a)
			operands = append(operands, wrap)
			continue
		}

		if len(operands) < 2 {
			return -1, diagnostics.Syntaxf(node.Line, "in expression, operator `%s` is missing an operand", node.Value)
		}
		b := operands[len(operands)-1]
		a := operands[len(operands)-2]
		operands = operands[:len(operands)-2]

		// >= and <= canonicalize to < and > with operands swapped, so the IR
		// generator (and anything downstream) only ever sees two relational
		// opcodes instead of four.
		switch token.Kind(node.Value) {
		case token.GE:
			tree.Nodes[item].Value = string(token.LT)
			a, b = b, a
		case token.LE:
			tree.Nodes[item].Value = string(token.GT)
			a, b = b, a
		}

		kind := ast.ExprDoubleOp
		if boolOp {
			kind = ast.ExprBoolDoubleOp
		}
		wrap := p.builder.New(kind, "", node.Line)
		p.builder.AppendChild(wrap, a)
		p.builder.AppendChild(wrap, item)
		p.builder.AppendChild(wrap, b)
		operands = append(operands, wrap)
	}

	if len(operands) != 1 {
		return -1, diagnostics.Syntaxf(0, "malformed expression")
	}
	return operands[0], nil
}

// parseArrayItem parses `name '[' expr ']'` as a single ExprArrayItem
// operand, used both inside larger expressions and as an assignment target.
func (p *Parser) parseArrayItem() (int, error) {
	tok := p.cur()
	name, line := tok.Lexeme, tok.Line
	p.advance() // name
	p.advance() // '['

	item := p.builder.New(ast.ExprArrayItem, name, line)
	index := p.builder.New(ast.ArrayIndex, "", line)
	p.builder.AppendChild(item, index)

	if err := p.parseExpression(index, token.RBRACKET); err != nil {
		return -1, err
	}
	return item, nil
}

// argStopToken scans ahead from the cursor, tracking paren/bracket depth, to
// find the token that ends the current call/print argument: the first
// unmatched `,` or `)` at depth 0. This mirrors the original generator's
// shortcut for splitting a comma list, but accounts for nesting so an
// argument containing its own parentheses or array indices parses correctly.
func (p *Parser) argStopToken() (token.Kind, error) {
	depth := 0
	for i := p.cursor; i <= p.end; i++ {
		switch p.tokens[i].Kind {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return token.RPAREN, nil
			}
			depth--
		case token.RBRACKET:
			depth--
		case token.COMMA:
			if depth == 0 {
				return token.COMMA, nil
			}
		}
	}
	return token.ILLEGAL, diagnostics.Syntaxf(p.curLine(), "argument list is never closed")
}
