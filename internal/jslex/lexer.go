package jslex

// Tokenize lexes JS/TS source. It returns nil on any lexical error
// (unterminated string, template literal, or block comment) — the
// fail-open contract shared with sqllex.Tokenize and shelllex.Tokenize.
func Tokenize(src string) []Token {
	l := &lexer{src: []rune(src)}
	return l.run()
}

type lexer struct {
	src    []rune
	pos    int
	tokens []Token
}

func (l *lexer) len() int { return len(l.src) }

func (l *lexer) at(i int) rune {
	if i >= l.len() {
		return 0
	}
	return l.src[i]
}

func (l *lexer) run() []Token {
	for l.pos < l.len() {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			start := l.pos
			for l.pos < l.len() && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\r') {
				l.pos++
			}
			_ = start
			l.tokens = append(l.tokens, Token{Kind: Whitespace})
		case c == '\n':
			l.pos++
			l.tokens = append(l.tokens, Token{Kind: Newline})
		case c == '/' && l.at(l.pos+1) == '/':
			start := l.pos
			for l.pos < l.len() && l.src[l.pos] != '\n' {
				l.pos++
			}
			l.tokens = append(l.tokens, Token{Kind: LineComment, Text: string(l.src[start:l.pos])})
		case c == '/' && l.at(l.pos+1) == '*':
			if !l.lexBlockComment() {
				return nil
			}
		case c == '\'' || c == '"':
			if !l.lexString(c) {
				return nil
			}
		case c == '`':
			if !l.lexTemplate() {
				return nil
			}
		case isDigit(c):
			l.lexNumber()
		case isIdentStart(c):
			l.lexWord()
		default:
			l.pos++
			l.tokens = append(l.tokens, Token{Kind: Punct, Text: string(c)})
		}
	}
	return l.tokens
}

func (l *lexer) lexBlockComment() bool {
	start := l.pos
	l.pos += 2
	for l.pos < l.len() {
		if l.src[l.pos] == '*' && l.at(l.pos+1) == '/' {
			l.pos += 2
			l.tokens = append(l.tokens, Token{Kind: BlockComment, Text: string(l.src[start:l.pos])})
			return true
		}
		l.pos++
	}
	return false
}

func (l *lexer) lexString(quote rune) bool {
	start := l.pos
	l.pos++
	for l.pos < l.len() {
		c := l.src[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == quote {
			l.pos++
			l.tokens = append(l.tokens, Token{Kind: StringLiteral, Text: string(l.src[start:l.pos])})
			return true
		}
		if c == '\n' {
			return false
		}
		l.pos++
	}
	return false
}

// lexTemplate consumes a template literal, tracking ${...} interpolation
// depth via brace counting so a brace inside an interpolated expression
// doesn't prematurely end the template.
func (l *lexer) lexTemplate() bool {
	start := l.pos
	l.pos++
	for l.pos < l.len() {
		c := l.src[l.pos]
		switch {
		case c == '\\':
			l.pos += 2
		case c == '`':
			l.pos++
			l.tokens = append(l.tokens, Token{Kind: TemplateLiteral, Text: string(l.src[start:l.pos])})
			return true
		case c == '$' && l.at(l.pos+1) == '{':
			l.pos += 2
			depth := 1
			for l.pos < l.len() && depth > 0 {
				switch l.src[l.pos] {
				case '{':
					depth++
				case '}':
					depth--
				case '`':
					// nested template inside interpolation; skip it wholesale
					nested := l.pos
					l.pos++
					for l.pos < l.len() && l.src[l.pos] != '`' {
						if l.src[l.pos] == '\\' {
							l.pos++
						}
						l.pos++
					}
					if l.pos >= l.len() {
						return false
					}
					_ = nested
				}
				l.pos++
			}
			if depth != 0 {
				return false
			}
			continue
		default:
			l.pos++
		}
	}
	return false
}

func (l *lexer) lexNumber() {
	start := l.pos
	for l.pos < l.len() && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.' || l.src[l.pos] == 'x' || l.src[l.pos] == 'X' ||
		l.src[l.pos] == 'b' || l.src[l.pos] == 'B' || l.src[l.pos] == 'o' || l.src[l.pos] == 'O' ||
		isHexDigit(l.src[l.pos])) {
		l.pos++
	}
	if l.pos < l.len() && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < l.len() && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < l.len() && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < l.len() && l.src[l.pos] == 'n' {
		l.pos++ // BigInt suffix
	}
	l.tokens = append(l.tokens, Token{Kind: Number, Text: string(l.src[start:l.pos])})
}

func (l *lexer) lexWord() {
	start := l.pos
	for l.pos < l.len() && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	l.tokens = append(l.tokens, Token{Kind: Word, Text: string(l.src[start:l.pos])})
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool   { return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') }
func isIdentStart(r rune) bool { return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 }
func isIdentPart(r rune) bool  { return isIdentStart(r) || isDigit(r) }
