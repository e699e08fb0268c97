package sqlast

import (
	"strings"

	"github.com/runger/vetline/internal/sqllex"
)

// cursor walks a significant (non-whitespace, non-comment) view of a
// sqllex token stream, splitting on top-level ';' to yield one
// sub-stream per statement.
type cursor struct {
	toks []sqllex.Token
	pos  int
}

func newCursor(toks []sqllex.Token) *cursor {
	sig := make([]sqllex.Token, 0, len(toks))
	for _, t := range toks {
		switch t.Kind {
		case sqllex.Whitespace, sqllex.SingleLineComment, sqllex.MultiLineComment:
			continue
		default:
			sig = append(sig, t)
		}
	}
	return &cursor{toks: sig}
}

func (c *cursor) peek() sqllex.Token {
	if c.pos >= len(c.toks) {
		return sqllex.Token{Kind: sqllex.EOF}
	}
	return c.toks[c.pos]
}

func (c *cursor) peekAt(off int) sqllex.Token {
	if c.pos+off >= len(c.toks) {
		return sqllex.Token{Kind: sqllex.EOF}
	}
	return c.toks[c.pos+off]
}

func (c *cursor) next() sqllex.Token {
	t := c.peek()
	if c.pos < len(c.toks) {
		c.pos++
	}
	return t
}

func (c *cursor) atEOF() bool {
	return c.peek().Kind == sqllex.EOF
}

// isKeyword reports whether the current token is a Word equal (case
// insensitively) to kw.
func (c *cursor) isKeyword(kw string) bool {
	t := c.peek()
	return t.Kind == sqllex.Word && strings.EqualFold(t.Text, kw)
}

func (c *cursor) isKeywordAt(off int, kw string) bool {
	t := c.peekAt(off)
	return t.Kind == sqllex.Word && strings.EqualFold(t.Text, kw)
}

// eatKeyword consumes the current token if it matches kw, reporting
// whether it did.
func (c *cursor) eatKeyword(kw string) bool {
	if c.isKeyword(kw) {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) isPunct(p string) bool {
	t := c.peek()
	return t.Kind == sqllex.Other && t.Text == p
}

func (c *cursor) eatPunct(p string) bool {
	if c.isPunct(p) {
		c.pos++
		return true
	}
	return false
}

// splitStatements breaks a significant token stream into one slice per
// top-level ';'-separated statement, dropping empty trailing segments.
func splitStatements(toks []sqllex.Token) [][]sqllex.Token {
	var out [][]sqllex.Token
	var cur []sqllex.Token
	for _, t := range toks {
		if t.Kind == sqllex.Other && t.Text == ";" {
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		if t.Kind == sqllex.EOF {
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
