// Package shelllex implements the POSIX shell lexer (spec §4.3,
// component C3): a single-pass state machine over Unicode characters
// producing a typed token stream for the differential shell injection
// detector and the dangerous-command scanner.
package shelllex

// Kind enumerates the shell token classes from spec §3.
type Kind int

const (
	Text Kind = iota
	Whitespace
	Newline
	SingleQuoted
	Operator
	Dollar
	Backtick
	Tilde
	Comment
)

// Token is one shell lexeme. Text carries the literal content for Text,
// SingleQuoted, Operator, and Comment kinds; it is empty for Whitespace,
// Newline, Dollar, Backtick, and Tilde, which carry no payload.
type Token struct {
	Kind Kind
	Text string
}
