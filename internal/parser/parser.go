/*
File: classc/internal/parser/parser.go
*/

// Package parser is the recursive-descent front end: it turns the lexer's
// token stream into an ast.Tree. Every production returns a structured
// *diagnostics.Error instead of panicking, so a malformed program surfaces as
// an ordinary Go error all the way up to the CLI driver.
package parser

import (
	"github.com/classc-lang/classc/internal/ast"
	"github.com/classc-lang/classc/internal/diagnostics"
	"github.com/classc-lang/classc/internal/token"
)

// Parser walks tokens with a single cursor, never backtracking more than the
// bounded lookahead judgeSentencePattern needs to classify the statement
// starting at the cursor.
type Parser struct {
	tokens  []token.Token
	cursor  int
	end     int // index of the trailing EOF token
	builder *ast.Builder
}

// Parse builds the syntax tree for a complete classc source file, given the
// token stream a lexer.Scan call produced. lines is accepted for parity with
// the lexer's external contract but the tree already carries per-node line
// numbers, so callers rarely need it once parsing succeeds.
func Parse(tokens []token.Token, lines []int) (*ast.Tree, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		return nil, diagnostics.Syntaxf(0, "token stream must be EOF-terminated")
	}
	p := &Parser{tokens: tokens, end: len(tokens) - 1}
	return p.parse()
}

func (p *Parser) cur() token.Token  { return p.tokens[p.cursor] }
func (p *Parser) atEnd() bool       { return p.cursor >= p.end }
func (p *Parser) advance()          { p.cursor++ }
func (p *Parser) curLine() int      { return p.tokens[p.cursor].Line }

// peek looks ahead n tokens from the cursor, clamped to the EOF token so
// lookahead past the end of input never indexes out of range.
func (p *Parser) peek(n int) token.Token {
	idx := p.cursor + n
	if idx > p.end {
		idx = p.end
	}
	return p.tokens[idx]
}

// expect consumes the current token if it matches kind, else returns a
// syntax error naming what was expected.
func (p *Parser) expect(kind token.Kind, context string) error {
	if p.atEnd() || p.cur().Kind != kind {
		return diagnostics.Syntaxf(p.curLine(), "expected `%s` %s", kind, context)
	}
	p.advance()
	return nil
}

// sentencePattern is the outcome of classifying the token(s) at the cursor.
// judgeSentencePattern is a single terminal switch: unlike the source
// grammar's dispatcher, no case here falls through into an unrelated one
// (see spec.md's documented fall-through bug and its fix, recorded in
// DESIGN.md).
type sentencePattern int

const (
	spError sentencePattern = iota
	spPrint
	spInclude
	spControl
	spFunctionStatement
	spStatement
	spAssignment
	spFunctionCall
	spReturn
	spRBrace
)

func (p *Parser) judgeSentencePattern() sentencePattern {
	cur := p.cur()
	switch cur.Kind {
	case token.PRINT:
		return spPrint

	case token.SHARP:
		if p.peek(1).Kind == token.INCLUDE {
			return spInclude
		}
		return spError

	case token.IF, token.ELSE, token.DO, token.WHILE, token.FOR:
		return spControl

	case token.PUBLIC, token.PRIVATE:
		return spFunctionStatement

	case token.INT, token.FLOAT, token.DOUBLE, token.CHAR:
		if p.peek(1).Kind == token.IDENTIFIER {
			switch p.peek(2).Kind {
			case token.SEMICOLON, token.LBRACKET, token.COMMA, token.ASSIGN:
				return spStatement
			}
		}
		return spError

	case token.IDENTIFIER:
		switch p.peek(1).Kind {
		case token.ASSIGN, token.LBRACKET:
			return spAssignment
		case token.LPAREN:
			return spFunctionCall
		}
		return spError

	case token.RETURN:
		return spReturn

	case token.RBRACE:
		return spRBrace

	default:
		return spError
	}
}

// parse asserts the mandatory `class IDENT {` prelude (spec.md requires
// everything to live inside a single class body) and then repeatedly
// dispatches top-level members until the matching `}`.
func (p *Parser) parse() (*ast.Tree, error) {
	if p.cur().Kind != token.CLASS {
		return nil, diagnostics.Syntaxf(p.curLine(), "everything should be wrapped in a class")
	}
	classLine := p.curLine()
	p.advance()

	if p.cur().Kind != token.IDENTIFIER {
		return nil, diagnostics.Syntaxf(p.curLine(), "expected a class name after `class`")
	}
	className := p.cur().Lexeme
	p.advance()

	if err := p.expect(token.LBRACE, "to open the class body"); err != nil {
		return nil, err
	}

	tree := ast.NewTree(className, classLine)
	p.builder = ast.NewBuilder(tree)

	for !p.atEnd() && p.cur().Kind != token.RBRACE {
		if err := p.parseTopLevelMember(tree.Root); err != nil {
			return nil, err
		}
	}

	if err := p.expect(token.RBRACE, "to close the class body"); err != nil {
		return nil, err
	}
	return tree, nil
}

// parseTopLevelMember handles the members a class body may directly contain:
// includes, function declarations, and (rarely) bare variable declarations.
func (p *Parser) parseTopLevelMember(parent int) error {
	switch p.judgeSentencePattern() {
	case spInclude:
		return p.parseInclude(parent)
	case spFunctionStatement:
		return p.parseFunctionStatement(parent)
	case spStatement:
		return p.parseDeclaration(parent)
	default:
		return diagnostics.Syntaxf(p.curLine(), "unrecognized symbol `%s` at class scope", p.cur().Lexeme)
	}
}

// parseInclude consumes a `#include <...>` or `#include "..."` directive,
// recording each raw token it skips over as a leaf child so the original
// spelling survives, then stopping once two quotes (or a `>`) have closed it.
func (p *Parser) parseInclude(parent int) error {
	line := p.curLine()
	node := p.builder.AddChild(parent, ast.Include, "", line)

	if err := p.expect(token.SHARP, "to start an include directive"); err != nil {
		return err
	}
	if err := p.expect(token.INCLUDE, "after `#`"); err != nil {
		return err
	}

	quotes := 0
	for !p.atEnd() {
		tok := p.cur()
		p.builder.AddChild(node, ast.IncludeItem, tok.Lexeme, tok.Line)
		done := tok.Kind == token.GT
		if tok.Kind == token.DOUBLE_QUOTE {
			quotes++
			done = quotes == 2
		}
		p.advance()
		if done {
			return nil
		}
	}
	return diagnostics.Syntaxf(line, "unterminated include directive")
}
