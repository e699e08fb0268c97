package sqllex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runger/vetline/internal/dialect"
)

func TestTokenizeBasicSelect(t *testing.T) {
	toks := Tokenize("SELECT * FROM users WHERE id = 1", dialect.Generic)
	assert.NotEmpty(t, toks)

	var words, others, numbers int
	for _, tok := range toks {
		switch tok.Kind {
		case Word:
			words++
		case Other:
			others++
		case Number:
			numbers++
		}
	}
	assert.Greater(t, words, 0)
	assert.Greater(t, others, 0)
	assert.Equal(t, 1, numbers)
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks := Tokenize("SELECT 'hello world'", dialect.Generic)
	found := false
	for _, tok := range toks {
		if tok.Kind == StringLiteral {
			found = true
			assert.Equal(t, "'hello world'", tok.Text)
		}
	}
	assert.True(t, found)
}

func TestTokenizeUnterminatedStringFailsOpen(t *testing.T) {
	toks := Tokenize("SELECT 'unterminated", dialect.Generic)
	assert.Nil(t, toks)
}

func TestTokenizeComments(t *testing.T) {
	toks := Tokenize("SELECT 1 -- trailing comment\n", dialect.Generic)
	var single *Token
	for i := range toks {
		if toks[i].Kind == SingleLineComment {
			single = &toks[i]
		}
	}
	if assert.NotNil(t, single) {
		assert.Equal(t, "--", single.Prefix)
	}

	toks2 := Tokenize("SELECT /* block */ 1", dialect.Generic)
	hasMulti := false
	for _, tok := range toks2 {
		if tok.Kind == MultiLineComment {
			hasMulti = true
		}
	}
	assert.True(t, hasMulti)
}

func TestIsDangerousExcludesSafeKinds(t *testing.T) {
	safe := []Token{
		{Kind: Word, Text: "foo"},
		{Kind: StringLiteral, Text: "'x'"},
		{Kind: Whitespace, Text: " "},
		{Kind: SingleLineComment, Text: "c"},
		{Kind: MultiLineComment, Text: "c"},
		{Kind: EOF},
	}
	for _, tok := range safe {
		assert.Falsef(t, IsDangerous(tok), "expected %v to be safe", tok.Kind)
	}
	assert.True(t, IsDangerous(Token{Kind: Other, Text: "="}))
	assert.True(t, IsDangerous(Token{Kind: Number, Text: "1"}))
}

func TestCountDangerous(t *testing.T) {
	toks := Tokenize("SELECT 1 = 1", dialect.Generic)
	count := CountDangerous(toks)
	assert.Greater(t, count, 0)
}

func TestHasOnly(t *testing.T) {
	toks := []Token{{Kind: Number}, {Kind: Number}}
	assert.True(t, HasOnly(toks, func(tok Token) bool { return tok.Kind == Number }))
	assert.False(t, HasOnly(toks, func(tok Token) bool { return tok.Kind == Word }))
	assert.False(t, HasOnly(nil, func(Token) bool { return true }))
}

func TestTokenizeEmptyQuery(t *testing.T) {
	toks := Tokenize("", dialect.Generic)
	// An empty input lexes to just EOF, not a failure.
	if assert.NotEmpty(t, toks) {
		assert.Equal(t, EOF, toks[len(toks)-1].Kind)
	}
}
