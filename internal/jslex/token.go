// Package jslex implements a minimal JavaScript/TypeScript lexer used by
// the differential injection detector and the safe-input checker
// (spec §4.10/§4.11, components C10/C11). It is not a full ECMAScript
// tokenizer: it classifies just enough structure — strings, template
// literals, comments, numbers, brackets, and statement separators — to
// support top-level statement counting and comment-structure diffing.
package jslex

// Kind enumerates the JS token classes this package distinguishes.
type Kind int

const (
	Word Kind = iota
	Number
	StringLiteral
	TemplateLiteral
	Whitespace
	Newline
	LineComment
	BlockComment
	Punct
	EOF
)

// Token is one JS lexeme. Text carries source text for all kinds except
// Whitespace/Newline/EOF, which carry no payload.
type Token struct {
	Kind Kind
	Text string
}
