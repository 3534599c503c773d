/*
File: classc/internal/lexer/lexer_test.go
*/

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classc-lang/classc/internal/token"
)

func TestScanKeywordsAndPunctuation(t *testing.T) {
	tokens, lines, err := Scan("class Foo { public int main() { return; } }")
	assert.NoError(t, err)
	assert.Equal(t, token.CLASS, tokens[0].Kind)
	assert.Equal(t, token.IDENTIFIER, tokens[1].Kind)
	assert.Equal(t, "Foo", tokens[1].Lexeme)
	assert.Equal(t, token.LBRACE, tokens[2].Kind)
	assert.Equal(t, token.EOF, tokens[len(tokens)-1].Kind)
	assert.Len(t, lines, len(tokens))
}

func TestScanTwoCharacterOperators(t *testing.T) {
	tokens, _, err := Scan("a >= b <= c == d != e && f || g")
	assert.NoError(t, err)

	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Contains(t, kinds, token.GE)
	assert.Contains(t, kinds, token.LE)
	assert.Contains(t, kinds, token.EQ)
	assert.Contains(t, kinds, token.NEQ)
	assert.Contains(t, kinds, token.AND)
	assert.Contains(t, kinds, token.OR)
}

func TestScanStringLiteralIsOneToken(t *testing.T) {
	tokens, _, err := Scan(`print("hello, world");`)
	assert.NoError(t, err)

	var text string
	found := false
	for _, tok := range tokens {
		if tok.Kind == token.STRING_TEXT {
			text = tok.Lexeme
			found = true
		}
	}
	assert.True(t, found)
	assert.Equal(t, "hello, world", text)
}

func TestScanDoesNotOverreadPastClosingQuote(t *testing.T) {
	tokens, _, err := Scan(`print("a"); print("b");`)
	assert.NoError(t, err)

	var strings []string
	for _, tok := range tokens {
		if tok.Kind == token.STRING_TEXT {
			strings = append(strings, tok.Lexeme)
		}
	}
	assert.Equal(t, []string{"a", "b"}, strings)
}

func TestScanSkipsLineAndBlockComments(t *testing.T) {
	src := "int x; // a comment\n/* block\ncomment */ int y;"
	tokens, _, err := Scan(src)
	assert.NoError(t, err)

	count := 0
	for _, tok := range tokens {
		if tok.Kind == token.INT {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestScanRejectsIllegalCharacter(t *testing.T) {
	_, _, err := Scan("int x = 1 & 2;")
	assert.Error(t, err)
}

func TestScanNumberWithFraction(t *testing.T) {
	tokens, _, err := Scan("3.14")
	assert.NoError(t, err)
	assert.Equal(t, token.DIGIT_CONSTANT, tokens[0].Kind)
	assert.Equal(t, "3.14", tokens[0].Lexeme)
}
