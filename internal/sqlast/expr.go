package sqlast

import (
	"fmt"
	"strings"

	"github.com/runger/vetline/internal/sqllex"
)

// Unary is a prefix NOT applied to an expression other than EXISTS
// (NOT EXISTS and NOT IN set Negated on Exists and InSubquery instead).
// The placeholder/subquery walk in analyze.go descends into it; it has
// no special meaning of its own to the filter-extraction logic.
type Unary struct {
	Op    string
	Inner Expr
}

func (Unary) exprNode() {}

// parseExpr parses a full boolean/scalar expression: OR is the loosest
// binding, down through AND, NOT/comparison, arithmetic, to primaries.
func parseExpr(c *cursor) (Expr, error) {
	return parseOr(c)
}

func parseOr(c *cursor) (Expr, error) {
	left, err := parseAnd(c)
	if err != nil {
		return nil, err
	}
	for c.eatKeyword("OR") {
		right, err := parseAnd(c)
		if err != nil {
			return nil, err
		}
		left = BinOp{Left: left, Right: right, Op: "or"}
	}
	return left, nil
}

func parseAnd(c *cursor) (Expr, error) {
	left, err := parseComparison(c)
	if err != nil {
		return nil, err
	}
	for c.eatKeyword("AND") {
		right, err := parseComparison(c)
		if err != nil {
			return nil, err
		}
		left = BinOp{Left: left, Right: right, Op: "and"}
	}
	return left, nil
}

var comparisonOps = []string{">=", "<=", "<>", "!=", "=", "<", ">"}

func parseComparison(c *cursor) (Expr, error) {
	left, err := parseUnaryPrefixed(c)
	if err != nil {
		return nil, err
	}

	negated := c.eatKeyword("NOT")

	switch {
	case c.eatKeyword("IN"):
		if !c.eatPunct("(") {
			return nil, fmt.Errorf("expected '(' after IN")
		}
		if c.isKeyword("SELECT") || c.isKeyword("WITH") {
			q, err := parseQuery(c)
			if err != nil {
				return nil, err
			}
			if !c.eatPunct(")") {
				return nil, fmt.Errorf("expected ')' closing IN subquery")
			}
			return InSubquery{Expr: left, Subquery: q, Negated: negated}, nil
		}
		if err := skipBalancedParens(c); err != nil {
			return nil, err
		}
		return Other{Text: "in (...)"}, nil

	case negated && c.eatKeyword("LIKE"), c.eatKeyword("LIKE"):
		if _, err := parseArith(c); err != nil {
			return nil, err
		}
		if c.eatKeyword("ESCAPE") {
			if _, err := parseArith(c); err != nil {
				return nil, err
			}
		}
		return Other{Text: "like"}, nil

	case negated && c.eatKeyword("BETWEEN"), c.eatKeyword("BETWEEN"):
		if _, err := parseArith(c); err != nil {
			return nil, err
		}
		if !c.eatKeyword("AND") {
			return nil, fmt.Errorf("expected AND in BETWEEN")
		}
		if _, err := parseArith(c); err != nil {
			return nil, err
		}
		return Other{Text: "between"}, nil
	}

	if negated {
		// NOT wasn't followed by IN/LIKE/BETWEEN after all; it doesn't
		// apply at this level, so back off and let the comparison-operator
		// check below see the unconsumed token.
		c.pos--
	}

	if c.isKeyword("IS") {
		c.pos++
		c.eatKeyword("NOT")
		if c.eatKeyword("NULL") {
			return Other{Text: "is null"}, nil
		}
		c.eatKeyword("TRUE")
		c.eatKeyword("FALSE")
		c.eatKeyword("DISTINCT")
		c.eatKeyword("FROM")
		if _, err := parseArith(c); err != nil {
			return nil, err
		}
		return Other{Text: "is"}, nil
	}

	for _, op := range comparisonOps {
		if c.isPunct(op) {
			c.pos++
			right, err := parseUnaryPrefixed(c)
			if err != nil {
				return nil, err
			}
			return BinOp{Left: left, Right: right, Op: op}, nil
		}
	}

	return left, nil
}

func parseUnaryPrefixed(c *cursor) (Expr, error) {
	if c.isKeyword("NOT") && c.isKeywordAt(1, "EXISTS") {
		c.pos += 2
		return parseExistsTail(c, true)
	}
	if c.eatKeyword("NOT") {
		inner, err := parseUnaryPrefixed(c)
		if err != nil {
			return nil, err
		}
		return Unary{Op: "not", Inner: inner}, nil
	}
	if c.eatKeyword("EXISTS") {
		return parseExistsTail(c, false)
	}
	return parseArith(c)
}

func parseExistsTail(c *cursor, negated bool) (Expr, error) {
	if !c.eatPunct("(") {
		return nil, fmt.Errorf("expected '(' after EXISTS")
	}
	q, err := parseQuery(c)
	if err != nil {
		return nil, err
	}
	if !c.eatPunct(")") {
		return nil, fmt.Errorf("expected ')' closing EXISTS subquery")
	}
	return Exists{Subquery: q, Negated: negated}, nil
}

// arithOps isn't precedence-split (+- vs */) because nothing downstream
// cares about arithmetic precedence: these operators never themselves
// produce a filter or column-equality pair, so a single left-associative
// chain over parsePrimary is enough to keep primaries (and the
// subqueries/placeholders they may contain) reachable.
var arithOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "||": true, "::": true,
}

func parseArith(c *cursor) (Expr, error) {
	left, err := parsePrimary(c)
	if err != nil {
		return nil, err
	}
	for {
		t := c.peek()
		if t.Kind != sqllex.Other || !arithOps[t.Text] {
			return left, nil
		}
		op := t.Text
		c.pos++
		right, err := parsePrimary(c)
		if err != nil {
			return nil, err
		}
		left = BinOp{Left: left, Right: right, Op: op}
	}
}

func parsePrimary(c *cursor) (Expr, error) {
	t := c.peek()
	switch t.Kind {
	case sqllex.Number:
		c.pos++
		return NumberLit{Text: t.Text}, nil

	case sqllex.StringLiteral:
		c.pos++
		return StringLit{Text: t.Text}, nil

	case sqllex.Word:
		upper := strings.ToUpper(t.Text)
		switch upper {
		case "NULL", "TRUE", "FALSE", "DEFAULT":
			c.pos++
			return Other{Text: upper}, nil
		case "CASE":
			return parseCaseExpr(c)
		}
		ident, err := parseObjectName(c)
		if err != nil {
			return nil, err
		}
		if c.eatPunct("(") {
			if err := skipFunctionArgs(c); err != nil {
				return nil, err
			}
			return Other{Text: strings.Join(ident, ".") + "(...)"}, nil
		}
		if len(ident) == 1 {
			return Ident{Name: ident[0]}, nil
		}
		return CompoundIdent{Parts: ident}, nil

	case sqllex.Other:
		switch t.Text {
		case "(":
			c.pos++
			if c.isKeyword("SELECT") || c.isKeyword("WITH") {
				q, err := parseQuery(c)
				if err != nil {
					return nil, err
				}
				if !c.eatPunct(")") {
					return nil, fmt.Errorf("expected ')' closing subquery expression")
				}
				return Subquery{Query: q}, nil
			}
			inner, err := parseExpr(c)
			if err != nil {
				return nil, err
			}
			if !c.eatPunct(")") {
				return nil, fmt.Errorf("expected ')' closing parenthesized expression")
			}
			return Nested{Inner: inner}, nil

		case "?":
			c.pos++
			return Placeholder{Text: "?"}, nil

		case ":":
			c.pos++
			name := c.next()
			return Placeholder{Text: ":" + name.Text}, nil

		case "@":
			c.pos++
			name := c.next()
			return Placeholder{Text: "@" + name.Text}, nil

		case "$":
			c.pos++
			num := c.next()
			return Placeholder{Text: "$" + num.Text}, nil

		case "-", "+":
			// unary sign on a numeric/arith primary
			op := t.Text
			c.pos++
			inner, err := parsePrimary(c)
			if err != nil {
				return nil, err
			}
			return Other{Text: op + exprPreview(inner)}, nil
		}
	}

	if t.Kind == sqllex.EOF {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	c.pos++
	return Other{Text: t.Text}, nil
}

func exprPreview(e Expr) string {
	switch t := e.(type) {
	case NumberLit:
		return t.Text
	case Ident:
		return t.Name
	default:
		return ""
	}
}

// parseCaseExpr consumes a CASE ... END expression without modeling its
// branches: none of WHEN/THEN/ELSE ever participate in an IDOR equality
// filter at the top level, so it's kept as an opaque Other leaf.
func parseCaseExpr(c *cursor) (Expr, error) {
	c.eatKeyword("CASE")
	depth := 1
	for depth > 0 {
		if c.atEOF() {
			return nil, fmt.Errorf("unterminated CASE expression")
		}
		if c.isKeyword("CASE") {
			depth++
			c.pos++
			continue
		}
		if c.isKeyword("END") {
			depth--
			c.pos++
			continue
		}
		c.pos++
	}
	return Other{Text: "case"}, nil
}

func skipBalancedParens(c *cursor) error {
	depth := 1
	for depth > 0 {
		if c.atEOF() {
			return fmt.Errorf("unterminated parenthesized expression")
		}
		t := c.next()
		if t.Kind == sqllex.Other {
			if t.Text == "(" {
				depth++
			} else if t.Text == ")" {
				depth--
			}
		}
	}
	return nil
}

func skipFunctionArgs(c *cursor) error {
	depth := 1
	for depth > 0 {
		if c.atEOF() {
			return fmt.Errorf("unterminated function call")
		}
		t := c.next()
		if t.Kind == sqllex.Other {
			if t.Text == "(" {
				depth++
			} else if t.Text == ")" {
				depth--
			}
		}
	}
	return nil
}
