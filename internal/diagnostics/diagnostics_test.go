/*
File: classc/internal/diagnostics/diagnostics_test.go
*/

package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxfFormatsMessage(t *testing.T) {
	err := Syntaxf(12, "unexpected token %q", ";")
	assert.Equal(t, Syntax, err.Stage)
	assert.Equal(t, 12, err.Line)
	assert.Contains(t, err.Error(), "line 12")
	assert.Equal(t, "Syntax analyze errors", err.Prefix())
}

func TestSemanticfWithoutLine(t *testing.T) {
	err := Semanticf(0, "no main function found")
	assert.Equal(t, Semantic, err.Stage)
	assert.NotContains(t, err.Error(), "line")
	assert.Equal(t, "Semantic analyze errors", err.Prefix())
}

func TestSyntaxAtfIncludesColumn(t *testing.T) {
	err := SyntaxAtf(3, 7, "bad character")
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "column 7")
}
