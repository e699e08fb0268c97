// Package sqllex implements the lossless, dialect-parameterized SQL
// tokenizer (spec §4.2, component C2) and the token-class predicates
// shared by the SQL injection detector and the IDOR AST parser (C4).
//
// The tokenizer never unescapes string content and never fails loudly:
// on any lexical error (unterminated string, unterminated comment) it
// returns a nil slice, which callers treat as "could not tokenize" per
// the fail-open contract in spec §7.
package sqllex

import "github.com/runger/vetline/internal/dialect"

// Kind enumerates the token classes the differential detectors need to
// distinguish. The zero value is Word.
type Kind int

const (
	Word Kind = iota
	Number
	StringLiteral // any quote style: single, double, national, escaped, dollar-quoted
	Whitespace
	SingleLineComment
	MultiLineComment
	EOF
	Other // everything else: operators, punctuation, placeholders — dangerous by exclusion
)

// Token is one lexeme. Prefix is only meaningful for SingleLineComment
// ("--" or "#"); Text holds the literal source span for every kind
// (unescaped, per the "lossless" contract).
type Token struct {
	Kind   Kind
	Text   string
	Prefix string
}

// IsDangerous implements C4's is-dangerous-token predicate: the
// "dangerous token" set is defined by exclusion. Word, StringLiteral
// (any quote style), Whitespace (including both comment forms), and EOF
// are the only safe variants; everything else is dangerous.
func IsDangerous(t Token) bool {
	switch t.Kind {
	case Word, StringLiteral, Whitespace, SingleLineComment, MultiLineComment, EOF:
		return false
	default:
		return true
	}
}

// IsWhitespace reports whether t is any whitespace variant, including
// comments (comments are a Whitespace sub-case in the data model, spec §3).
func IsWhitespace(t Token) bool {
	switch t.Kind {
	case Whitespace, SingleLineComment, MultiLineComment:
		return true
	default:
		return false
	}
}

func IsSingleLineComment(t Token) bool { return t.Kind == SingleLineComment }
func IsMultiLineComment(t Token) bool  { return t.Kind == MultiLineComment }

// CountDangerous counts dangerous tokens in a stream (used by C7 step 6).
func CountDangerous(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if IsDangerous(t) {
			n++
		}
	}
	return n
}

// dialectQuoting captures the handful of lexical differences between
// dialects that the tokenizer needs: which characters open identifier
// quoting (as opposed to string quoting) and whether '#' starts a
// single-line comment (MySQL-family) in addition to "--".
type dialectQuoting struct {
	backtickIdents bool // `ident` quoting
	hashComment    bool // '#' starts a single-line comment
}

func quotingFor(d dialect.SQL) dialectQuoting {
	switch d {
	case dialect.MySQL:
		return dialectQuoting{backtickIdents: true, hashComment: true}
	case dialect.BigQuery, dialect.ClickHouse, dialect.Databricks, dialect.Hive, dialect.DuckDB:
		return dialectQuoting{backtickIdents: true}
	default:
		return dialectQuoting{}
	}
}
