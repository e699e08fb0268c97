package shelllex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeSimpleCommand(t *testing.T) {
	toks := Tokenize("ls -la /tmp")
	assert.NotEmpty(t, toks)
	var hasText bool
	for _, tok := range toks {
		if tok.Kind == Text {
			hasText = true
		}
	}
	assert.True(t, hasText)
}

func TestTokenizeSingleQuoted(t *testing.T) {
	toks := Tokenize("echo 'hello world'")
	found := false
	for _, tok := range toks {
		if tok.Kind == SingleQuoted {
			found = true
			assert.Equal(t, "hello world", tok.Text)
		}
	}
	assert.True(t, found)
}

func TestTokenizeOperators(t *testing.T) {
	toks := Tokenize("a && b || c; d")
	var ops []string
	for _, tok := range toks {
		if tok.Kind == Operator {
			ops = append(ops, tok.Text)
		}
	}
	assert.Contains(t, ops, "&&")
	assert.Contains(t, ops, "||")
	assert.Contains(t, ops, ";")
}

func TestTokenizeComment(t *testing.T) {
	toks := Tokenize("echo hi # trailing comment")
	found := false
	for _, tok := range toks {
		if tok.Kind == Comment {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTokenizeTilde(t *testing.T) {
	toks := Tokenize("cd ~")
	found := false
	for _, tok := range toks {
		if tok.Kind == Tilde {
			found = true
		}
	}
	assert.True(t, found)
}
