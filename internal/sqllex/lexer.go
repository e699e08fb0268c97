package sqllex

import (
	"strings"
	"unicode"

	"github.com/runger/vetline/internal/dialect"
)

// Tokenize lexes sql under the given dialect in lossless mode (spec §4.2):
// the raw source text of every token is preserved, nothing is unescaped.
// It returns nil on any lexical error (unterminated quote/comment), which
// callers must treat as "failed to tokenize", not a crash.
func Tokenize(sql string, d dialect.SQL) []Token {
	l := &lexer{src: []rune(sql), quoting: quotingFor(d)}
	return l.run()
}

type lexer struct {
	src     []rune
	pos     int
	quoting dialectQuoting
	tokens  []Token
}

func (l *lexer) run() []Token {
	for l.pos < len(l.src) {
		if !l.step() {
			return nil
		}
	}
	l.tokens = append(l.tokens, Token{Kind: EOF})
	return l.tokens
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) step() bool {
	c := l.peek()

	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		start := l.pos
		for l.pos < len(l.src) {
			switch l.src[l.pos] {
			case ' ', '\t', '\n', '\r':
				l.pos++
			default:
				goto doneWS
			}
		}
	doneWS:
		l.tokens = append(l.tokens, Token{Kind: Whitespace, Text: string(l.src[start:l.pos])})
		return true

	case c == '\'':
		return l.lexQuoted('\'', StringLiteral)

	case c == '"':
		return l.lexQuoted('"', StringLiteral)

	case c == '`' && l.quoting.backtickIdents:
		return l.lexQuoted('`', Word)

	case c == '$' && l.peekAt(1) == '$':
		return l.lexDollarQuoted("")

	case c == '$' && (isIdentStart(l.peekAt(1))):
		// Possibly a $tag$...$tag$ dollar-quoted string (Postgres).
		tagEnd := l.pos + 1
		for tagEnd < len(l.src) && isIdentPart(l.src[tagEnd]) {
			tagEnd++
		}
		if tagEnd < len(l.src) && l.src[tagEnd] == '$' {
			tag := string(l.src[l.pos+1 : tagEnd])
			l.pos = tagEnd
			return l.lexDollarQuoted(tag)
		}
		return l.lexOther()

	case c == '-' && l.peekAt(1) == '-':
		return l.lexSingleLineComment("--")

	case c == '#' && l.quoting.hashComment:
		return l.lexSingleLineComment("#")

	case c == '/' && l.peekAt(1) == '*':
		return l.lexMultiLineComment()

	case (c == 'n' || c == 'N') && l.peekAt(1) == '\'':
		l.pos++
		ok := l.lexQuoted('\'', StringLiteral)
		return ok

	case (c == 'e' || c == 'E') && l.peekAt(1) == '\'':
		l.pos++
		ok := l.lexQuoted('\'', StringLiteral)
		return ok

	case unicode.IsDigit(c):
		return l.lexNumber()

	case isIdentStart(c):
		return l.lexWord()

	default:
		return l.lexOther()
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (l *lexer) lexWord() bool {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	l.tokens = append(l.tokens, Token{Kind: Word, Text: string(l.src[start:l.pos])})
	return true
}

func (l *lexer) lexNumber() bool {
	start := l.pos
	for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && unicode.IsDigit(l.src[l.pos+1]) {
		l.pos++
		for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && unicode.IsDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	l.tokens = append(l.tokens, Token{Kind: Number, Text: string(l.src[start:l.pos])})
	return true
}

// lexQuoted consumes a quote-delimited run, doubling the quote char as an
// escape (the universal SQL convention: '' inside '...', "" inside "...").
// Returns false (tokenization failure) if the closing quote is never found.
func (l *lexer) lexQuoted(quote rune, kind Kind) bool {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		if l.src[l.pos] == quote {
			if l.peekAt(1) == quote {
				l.pos += 2
				continue
			}
			l.pos++
			l.tokens = append(l.tokens, Token{Kind: kind, Text: string(l.src[start:l.pos])})
			return true
		}
		l.pos++
	}
	return false
}

func (l *lexer) lexDollarQuoted(tag string) bool {
	start := l.pos
	opener := "$" + tag + "$"
	l.pos += len([]rune(opener))
	closer := []rune(opener)
	for l.pos < len(l.src) {
		if matchesAt(l.src, l.pos, closer) {
			l.pos += len(closer)
			l.tokens = append(l.tokens, Token{Kind: StringLiteral, Text: string(l.src[start:l.pos])})
			return true
		}
		l.pos++
	}
	return false
}

func matchesAt(src []rune, pos int, pat []rune) bool {
	if pos+len(pat) > len(src) {
		return false
	}
	for i, r := range pat {
		if src[pos+i] != r {
			return false
		}
	}
	return true
}

func (l *lexer) lexSingleLineComment(prefix string) bool {
	start := l.pos
	l.pos += len([]rune(prefix))
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	l.tokens = append(l.tokens, Token{Kind: SingleLineComment, Text: text, Prefix: prefix})
	return true
}

func (l *lexer) lexMultiLineComment() bool {
	start := l.pos
	l.pos += 2
	depth := 1
	for l.pos < len(l.src) && depth > 0 {
		if l.peek() == '/' && l.peekAt(1) == '*' {
			depth++
			l.pos += 2
			continue
		}
		if l.peek() == '*' && l.peekAt(1) == '/' {
			depth--
			l.pos += 2
			continue
		}
		l.pos++
	}
	if depth > 0 {
		return false
	}
	l.tokens = append(l.tokens, Token{Kind: MultiLineComment, Text: string(l.src[start:l.pos])})
	return true
}

// lexOther consumes a single dangerous/punctuation character, greedily
// matching the handful of two-character operators the AST parser (C12)
// needs to distinguish (<=, >=, <>, !=, ||, ::).
func (l *lexer) lexOther() bool {
	start := l.pos
	two := ""
	if l.pos+1 < len(l.src) {
		two = string(l.src[l.pos : l.pos+2])
	}
	switch two {
	case "<=", ">=", "<>", "!=", "||", "::":
		l.pos += 2
	default:
		l.pos++
	}
	l.tokens = append(l.tokens, Token{Kind: Other, Text: string(l.src[start:l.pos])})
	return true
}

// HasOnly reports whether tokens holds at least one non-EOF token and
// every non-EOF token satisfies pred — used by sqlsafe.IsSafeSQLString (C6).
func HasOnly(tokens []Token, pred func(Token) bool) bool {
	seen := false
	for _, t := range tokens {
		if t.Kind == EOF {
			continue
		}
		if !pred(t) {
			return false
		}
		seen = true
	}
	return seen
}

// TrimmedLowerContains is a small helper: does s (lowercased, not
// trimmed) contain sub (already lowercased)? No other package in this
// module calls it.
func TrimmedLowerContains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}
