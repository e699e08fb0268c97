package jslex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeWordsAndPunct(t *testing.T) {
	toks := Tokenize("let x = 1;")
	var words, puncts, numbers int
	for _, tok := range toks {
		switch tok.Kind {
		case Word:
			words++
		case Punct:
			puncts++
		case Number:
			numbers++
		}
	}
	assert.Equal(t, 2, words) // let, x
	assert.Equal(t, 1, numbers)
	assert.GreaterOrEqual(t, puncts, 2) // = and ;
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks := Tokenize(`let s = "hi";`)
	found := false
	for _, tok := range toks {
		if tok.Kind == StringLiteral {
			found = true
			assert.Equal(t, `"hi"`, tok.Text)
		}
	}
	assert.True(t, found)
}

func TestTokenizeUnterminatedStringFailsOpen(t *testing.T) {
	assert.Nil(t, Tokenize(`let s = "unterminated`))
}

func TestTokenizeTemplateLiteralWithInterpolation(t *testing.T) {
	toks := Tokenize("`hello ${name}`")
	found := false
	for _, tok := range toks {
		if tok.Kind == TemplateLiteral {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTokenizeLineComment(t *testing.T) {
	toks := Tokenize("let x = 1; // note\n")
	found := false
	for _, tok := range toks {
		if tok.Kind == LineComment {
			found = true
			assert.Equal(t, "// note", tok.Text)
		}
	}
	assert.True(t, found)
}

func TestTokenizeBlockComment(t *testing.T) {
	toks := Tokenize("/* a block */ let x = 1;")
	found := false
	for _, tok := range toks {
		if tok.Kind == BlockComment {
			found = true
		}
	}
	assert.True(t, found)
}

func TestTokenizeUnterminatedBlockCommentFailsOpen(t *testing.T) {
	assert.Nil(t, Tokenize("/* never closed"))
}
