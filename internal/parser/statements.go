/*
File: classc/internal/parser/statements.go
*/

package parser

import (
	"github.com/classc-lang/classc/internal/ast"
	"github.com/classc-lang/classc/internal/diagnostics"
	"github.com/classc-lang/classc/internal/token"
)

// parseStatement dispatches one statement inside a block body.
func (p *Parser) parseStatement(parent int) error {
	switch p.judgeSentencePattern() {
	case spPrint:
		return p.parsePrint(parent)
	case spControl:
		return p.parseControl(parent)
	case spStatement:
		return p.parseDeclaration(parent)
	case spAssignment:
		return p.parseAssignment(parent, token.SEMICOLON)
	case spFunctionCall:
		return p.parseFunctionCallStatement(parent)
	case spReturn:
		return p.parseReturn(parent)
	case spInclude:
		return p.parseInclude(parent)
	case spFunctionStatement:
		return p.parseFunctionStatement(parent)
	default:
		if p.cur().Kind == token.SEMICOLON {
			p.advance() // a bare ';' terminates nothing; skip it
			return nil
		}
		return diagnostics.Syntaxf(p.curLine(), "unrecognized symbol `%s` in block", p.cur().Lexeme)
	}
}

// parseBlock consumes the opening '{', parses statements until the matching
// '}', and appends the resulting Block node to parent.
func (p *Parser) parseBlock(parent int) error {
	line := p.curLine()
	if err := p.expect(token.LBRACE, "to open a block"); err != nil {
		return err
	}
	node, err := p.parseBlockBody(line)
	if err != nil {
		return err
	}
	p.builder.AppendChild(parent, node)
	return nil
}

// parseBlockBody assumes the opening '{' has already been consumed, parses
// statements until the matching '}' (consuming it too), and returns the new
// Block node's index without appending it anywhere — callers that need to
// mutate the body before attaching it (the for-loop desugar) use this
// directly instead of parseBlock.
func (p *Parser) parseBlockBody(line int) (int, error) {
	node := p.builder.New(ast.Block, "", line)
	for !p.atEnd() && p.cur().Kind != token.RBRACE {
		if err := p.parseStatement(node); err != nil {
			return -1, err
		}
	}
	if err := p.expect(token.RBRACE, "to close a block"); err != nil {
		return -1, err
	}
	return node, nil
}

func isTypeToken(k token.Kind) bool {
	switch k {
	case token.INT, token.FLOAT, token.DOUBLE, token.CHAR, token.IDENTIFIER:
		return true
	default:
		return false
	}
}

// parseFunctionStatement parses a ('public'|'private') Type name '(' params?
// ')' (Block|';') declaration, building a FunctionStatement node with
// FunctionName, Type and ParameterList children (and a Block child when a
// body is present) in that order.
func (p *Parser) parseFunctionStatement(parent int) error {
	line := p.curLine()
	p.advance() // 'public' | 'private'

	if !isTypeToken(p.cur().Kind) {
		return diagnostics.Syntaxf(p.curLine(), "expected a return type in function declaration")
	}
	typeName, typeLine := p.cur().Lexeme, p.cur().Line
	p.advance()

	if p.cur().Kind != token.IDENTIFIER {
		return diagnostics.Syntaxf(p.curLine(), "expected a function name")
	}
	name, nameLine := p.cur().Lexeme, p.cur().Line
	p.advance()

	if err := p.expect(token.LPAREN, "after a function name"); err != nil {
		return err
	}

	node := p.builder.New(ast.FunctionStatement, "", line)
	p.builder.AddChild(node, ast.FunctionName, name, nameLine)
	p.builder.AddChild(node, ast.Type, typeName, typeLine)

	paramList := p.builder.New(ast.ParameterList, "", p.curLine())
	if p.cur().Kind != token.RPAREN {
		for {
			if !isTypeToken(p.cur().Kind) {
				return diagnostics.Syntaxf(p.curLine(), "expected a parameter type")
			}
			pType := p.cur().Lexeme
			p.advance()
			if p.cur().Kind != token.IDENTIFIER {
				return diagnostics.Syntaxf(p.curLine(), "expected a parameter name")
			}
			pName, pLine := p.cur().Lexeme, p.cur().Line
			p.advance()
			p.builder.AppendChild(paramList, p.builder.NewTyped(ast.Parameter, pName, pType, pLine))
			if p.cur().Kind == token.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expect(token.RPAREN, "to close a parameter list"); err != nil {
		return err
	}
	p.builder.AppendChild(node, paramList)

	switch p.cur().Kind {
	case token.SEMICOLON:
		p.advance()
	case token.LBRACE:
		if err := p.parseBlock(node); err != nil {
			return err
		}
	default:
		return diagnostics.Syntaxf(p.curLine(), "expected a function body or `;`")
	}

	p.builder.AppendChild(parent, node)
	return nil
}

// parseDeclaration parses one or more comma-separated declarators sharing a
// primitive type keyword, terminated by ';'. Each declarator is either a
// plain variable, an array with just a size, or an array with a brace
// initializer; array metadata is encoded via ast.FormatArrayInit rather than
// hand-built at each call site.
func (p *Parser) parseDeclaration(parent int) error {
	declType := string(p.cur().Kind)
	p.advance()

	for {
		if p.cur().Kind != token.IDENTIFIER {
			return diagnostics.Syntaxf(p.curLine(), "expected an identifier in declaration")
		}
		name, line := p.cur().Lexeme, p.cur().Line
		p.advance()

		switch p.cur().Kind {
		case token.COMMA, token.SEMICOLON:
			idx := p.builder.NewTyped(ast.Statement, name, declType, line)
			p.builder.AppendChild(parent, idx)
			more := p.cur().Kind == token.COMMA
			p.advance()
			if more {
				continue
			}
			return nil

		case token.LBRACKET:
			p.advance()
			if p.cur().Kind != token.DIGIT_CONSTANT {
				return diagnostics.Syntaxf(p.curLine(), "expected an array size")
			}
			size := p.cur().Lexeme
			p.advance()
			if err := p.expect(token.RBRACKET, "after an array size"); err != nil {
				return err
			}

			switch p.cur().Kind {
			case token.COMMA, token.SEMICOLON:
				idx := p.builder.NewArrayDecl(name, "array-"+declType, ast.FormatArrayInit(size, nil), line)
				p.builder.AppendChild(parent, idx)
				more := p.cur().Kind == token.COMMA
				p.advance()
				if more {
					continue
				}
				return nil

			case token.ASSIGN:
				p.advance()
				if err := p.expect(token.LBRACE, "to open an array initializer"); err != nil {
					return err
				}
				var values []string
				for p.cur().Kind != token.RBRACE {
					if p.cur().Kind != token.DIGIT_CONSTANT {
						return diagnostics.Syntaxf(p.curLine(), "expected a constant in an array initializer")
					}
					values = append(values, p.cur().Lexeme)
					p.advance()
					if p.cur().Kind == token.COMMA {
						p.advance()
						continue
					}
					break
				}
				if err := p.expect(token.RBRACE, "to close an array initializer"); err != nil {
					return err
				}
				switch p.cur().Kind {
				case token.COMMA, token.SEMICOLON:
					idx := p.builder.NewArrayDecl(name, "array-"+declType, ast.FormatArrayInit(size, values), line)
					p.builder.AppendChild(parent, idx)
					more := p.cur().Kind == token.COMMA
					p.advance()
					if more {
						continue
					}
					return nil
				default:
					return diagnostics.Syntaxf(p.curLine(), "expected `,` or `;` after an array initializer")
				}

			default:
				return diagnostics.Syntaxf(p.curLine(), "expected `=` or `,`/`;` after an array size")
			}

		default:
			return diagnostics.Syntaxf(p.curLine(), "unrecognized symbol `%s` in declaration", p.cur().Lexeme)
		}
	}
}

// parseAssignment parses `name '=' expr stop` or `name '[' expr ']' '=' expr
// stop`. stop lets the for-loop desugar reuse this for the step clause
// (which ends at ')' instead of ';').
func (p *Parser) parseAssignment(parent int, stop token.Kind) error {
	line := p.curLine()
	name := p.cur().Lexeme
	node := p.builder.New(ast.Assignment, name, line)

	if p.peek(1).Kind == token.LBRACKET {
		item, err := p.parseArrayItem()
		if err != nil {
			return err
		}
		p.builder.AppendChild(node, item)
	} else {
		p.advance() // consume name
	}

	if err := p.expect(token.ASSIGN, "in assignment"); err != nil {
		return err
	}
	if err := p.parseExpression(node, stop); err != nil {
		return err
	}
	p.builder.AppendChild(parent, node)
	return nil
}

// parsePrint parses `print '(' arg (',' arg)* ')' ';'`, where arg is either a
// double-quoted string literal (recorded verbatim as a PrintString leaf) or
// an expression.
func (p *Parser) parsePrint(parent int) error {
	line := p.curLine()
	p.advance() // 'print'
	if err := p.expect(token.LPAREN, "after `print`"); err != nil {
		return err
	}

	node := p.builder.New(ast.Print, "", line)

	for {
		if p.cur().Kind == token.DOUBLE_QUOTE {
			p.advance()
			text := ""
			if p.cur().Kind == token.STRING_TEXT {
				text = p.cur().Lexeme
				p.advance()
			}
			if err := p.expect(token.DOUBLE_QUOTE, "to close a string literal"); err != nil {
				return err
			}
			p.builder.AddChild(node, ast.PrintString, text, line)

			switch p.cur().Kind {
			case token.COMMA:
				p.advance()
				continue
			case token.RPAREN:
				p.advance()
			default:
				return diagnostics.Syntaxf(p.curLine(), "expected `,` or `)` in print arguments")
			}
			break
		}

		stop, err := p.argStopToken()
		if err != nil {
			return err
		}
		if err := p.parseExpression(node, stop); err != nil {
			return err
		}
		if stop == token.RPAREN {
			break
		}
	}

	if err := p.expect(token.SEMICOLON, "after a print statement"); err != nil {
		return err
	}
	p.builder.AppendChild(parent, node)
	return nil
}

// parseFunctionCallStatement parses `name '(' arg (',' arg)* ')' ';'` as a
// bare statement (the only place classc allows calling a function other than
// the implicit call of main).
func (p *Parser) parseFunctionCallStatement(parent int) error {
	line := p.curLine()
	name := p.cur().Lexeme
	p.advance() // name
	if err := p.expect(token.LPAREN, "after a function name"); err != nil {
		return err
	}

	node := p.builder.New(ast.FunctionCall, "", line)
	p.builder.AddChild(node, ast.FunctionName, name, line)
	params := p.builder.New(ast.FunctionParameters, "", line)

	if p.cur().Kind != token.RPAREN {
		for {
			stop, err := p.argStopToken()
			if err != nil {
				return err
			}
			param := p.builder.New(ast.Param, "", p.curLine())
			if err := p.parseExpression(param, stop); err != nil {
				return err
			}
			p.builder.AppendChild(params, param)
			if stop == token.RPAREN {
				break
			}
		}
	} else {
		p.advance() // ')'
	}
	p.builder.AppendChild(node, params)

	if err := p.expect(token.SEMICOLON, "after a function call"); err != nil {
		return err
	}
	p.builder.AppendChild(parent, node)
	return nil
}

// parseReturn parses `return ';'` (VoidReturn) or `return expr ';'` (Return).
func (p *Parser) parseReturn(parent int) error {
	line := p.curLine()
	p.advance() // 'return'
	if p.cur().Kind == token.SEMICOLON {
		p.advance()
		p.builder.AddChild(parent, ast.VoidReturn, "", line)
		return nil
	}
	node := p.builder.New(ast.Return, "", line)
	if err := p.parseExpression(node, token.SEMICOLON); err != nil {
		return err
	}
	p.builder.AppendChild(parent, node)
	return nil
}

// parseControl dispatches the three supported control-flow forms. do-while
// is lexed but, as in the source this was translated from, never actually
// parsed — its keyword reaching here is a syntax error.
func (p *Parser) parseControl(parent int) error {
	switch p.cur().Kind {
	case token.IF:
		return p.parseIf(parent)
	case token.WHILE:
		return p.parseWhile(parent)
	case token.FOR:
		return p.parseFor(parent)
	case token.DO:
		return diagnostics.Syntaxf(p.curLine(), "do-while loops are not supported")
	default:
		return diagnostics.Syntaxf(p.curLine(), "unrecognized control-flow keyword `%s`", p.cur().Lexeme)
	}
}

// parseWhile parses `while '(' cond ')' '{' body '}'`.
func (p *Parser) parseWhile(parent int) error {
	line := p.curLine()
	p.advance() // 'while'
	if err := p.expect(token.LPAREN, "after `while`"); err != nil {
		return err
	}

	node := p.builder.New(ast.ControlWhile, "", line)
	cond := p.builder.New(ast.ControlCondition, "", p.curLine())
	if err := p.parseExpression(cond, token.RPAREN); err != nil {
		return err
	}
	p.builder.AppendChild(node, cond)

	if err := p.expect(token.LBRACE, "to open the loop body"); err != nil {
		return err
	}
	body, err := p.parseBlockBody(line)
	if err != nil {
		return err
	}
	p.builder.AppendChild(node, body)
	p.builder.AppendChild(parent, node)
	return nil
}

// parseIf parses an if/else-if/else chain into nested ControlIf nodes: each
// ControlIf has a Condition child, a Block child for its own body, and — if
// a following else-if/else exists — a third child that is either another
// ControlIf (else-if) or a plain Block (else).
func (p *Parser) parseIf(parent int) error {
	node, err := p.parseIfChain()
	if err != nil {
		return err
	}
	p.builder.AppendChild(parent, node)
	return nil
}

func (p *Parser) parseIfChain() (int, error) {
	line := p.curLine()
	p.advance() // 'if'
	if err := p.expect(token.LPAREN, "after `if`"); err != nil {
		return -1, err
	}

	node := p.builder.New(ast.ControlIf, "", line)
	cond := p.builder.New(ast.ControlCondition, "", p.curLine())
	if err := p.parseExpression(cond, token.RPAREN); err != nil {
		return -1, err
	}
	p.builder.AppendChild(node, cond)

	if err := p.expect(token.LBRACE, "to open the `if` body"); err != nil {
		return -1, err
	}
	body, err := p.parseBlockBody(line)
	if err != nil {
		return -1, err
	}
	p.builder.AppendChild(node, body)

	if !p.atEnd() && p.cur().Kind == token.ELSE {
		p.advance()
		if !p.atEnd() && p.cur().Kind == token.IF {
			elseIf, err := p.parseIfChain()
			if err != nil {
				return -1, err
			}
			p.builder.AppendChild(node, elseIf)
		} else {
			elseLine := p.curLine()
			if err := p.expect(token.LBRACE, "to open the `else` body"); err != nil {
				return -1, err
			}
			elseBody, err := p.parseBlockBody(elseLine)
			if err != nil {
				return -1, err
			}
			p.builder.AppendChild(node, elseBody)
		}
	}
	return node, nil
}

// parseFor desugars `for '(' init ';' cond ';' step ')' '{' body '}'` into a
// ControlWhile: init is parsed straight into the enclosing scope (parent),
// and step is parsed once, up front, then reparented as the last statement
// of the loop body — exactly the shape spec.md's for-loop rewrite names.
func (p *Parser) parseFor(parent int) error {
	line := p.curLine()
	p.advance() // 'for'
	if err := p.expect(token.LPAREN, "after `for`"); err != nil {
		return err
	}

	if err := p.parseAssignment(parent, token.SEMICOLON); err != nil {
		return err
	}

	whileNode := p.builder.New(ast.ControlWhile, "", line)
	cond := p.builder.New(ast.ControlCondition, "", p.curLine())
	if err := p.parseExpression(cond, token.SEMICOLON); err != nil {
		return err
	}
	p.builder.AppendChild(whileNode, cond)

	// The step assignment has to be parsed now, while the cursor sits on it,
	// but it belongs at the tail of the body parsed afterward — stash it
	// under a scratch node and reparent its single child once the body
	// exists.
	scratch := p.builder.New(ast.Block, "", p.curLine())
	if err := p.parseAssignment(scratch, token.RPAREN); err != nil {
		return err
	}
	step := p.builder.Tree().Child(scratch, 0)

	if err := p.expect(token.LBRACE, "to open the loop body"); err != nil {
		return err
	}
	body, err := p.parseBlockBody(line)
	if err != nil {
		return err
	}
	p.builder.AppendChild(body, step)
	p.builder.AppendChild(whileNode, body)

	p.builder.AppendChild(parent, whileNode)
	return nil
}
