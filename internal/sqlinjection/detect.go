// Package sqlinjection implements the SQL injection detector (spec §4.5,
// component C7): given a query, a user-input substring, and a target
// dialect, decide whether the user input altered the query's structural
// token shape.
package sqlinjection

import (
	"strings"
	"unicode"

	"github.com/runger/vetline/internal/commentdiff"
	"github.com/runger/vetline/internal/dialect"
	"github.com/runger/vetline/internal/sqllex"
	"github.com/runger/vetline/internal/sqlsafe"
)

// Reason documents why Detect returned the verdict it did.
type Reason string

const (
	ReasonNotInjection         Reason = "NotDetected"
	ReasonAlphanumeric         Reason = "UserInputAlphanumeric"
	ReasonTooSmall             Reason = "UserInputTooSmall"
	ReasonNotInQuery           Reason = "UserInputNotInQuery"
	ReasonCommonSQLString      Reason = "CommonSQLString"
	ReasonFailedToTokenize     Reason = "FailedToTokenize"
	ReasonTokensHaveDelta      Reason = "TokensHaveDelta"
	ReasonCommentStructureDiff Reason = "CommentStructureAltered"
)

// Result is the {detected, reason} pair from spec §6's entry point table.
type Result struct {
	Detected bool
	Reason   Reason
}

// replacementWord is substituted for the user input before the second
// tokenize pass. It must lex as a single safe Word under every dialect;
// "COUNT" is a keyword that's never itself dangerous punctuation.
const replacementWord = "count"

// Detect implements detect_sql_injection(query, user_input, dialect).
func Detect(query, userInput string, d dialect.SQL) Result {
	return DetectWithExtraSafeStrings(query, userInput, d, nil)
}

// DetectWithExtraSafeStrings is Detect extended with caller-supplied
// common-SQL-string exemptions (see sqlsafe.IsCommonSQLStringWithExtras),
// letting internal/config widen the safe-string allowlist per site.
func DetectWithExtraSafeStrings(query, userInput string, d dialect.SQL, extraSafeStrings []string) Result {
	trimmed := strings.Trim(userInput, " ")

	if isAlphanumeric(trimmed) {
		return Result{false, ReasonAlphanumeric}
	}
	if len(trimmed) <= 3 {
		return Result{false, ReasonTooSmall}
	}
	if len(query) < len(trimmed) {
		return Result{false, ReasonTooSmall}
	}

	queryLower := strings.ToLower(query)
	inputLower := strings.ToLower(trimmed)

	if !strings.Contains(queryLower, inputLower) {
		return Result{false, ReasonNotInQuery}
	}

	if sqlsafe.IsCommonSQLStringWithExtras(inputLower, extraSafeStrings) {
		return Result{false, ReasonCommonSQLString}
	}

	tokens := tokenizeWithFallback(query, d)
	if len(tokens) == 0 {
		return Result{false, ReasonFailedToTokenize}
	}

	replacedQuery := strings.Replace(queryLower, inputLower, replacementWord, 1)
	replacedTokens := tokenizeWithFallback(replacedQuery, d)

	delta := sqllex.CountDangerous(replacedTokens) - sqllex.CountDangerous(tokens)
	if delta < 0 {
		return Result{true, ReasonTokensHaveDelta}
	}

	if commentsChanged(tokens, replacedTokens) {
		return Result{true, ReasonCommentStructureDiff}
	}

	return Result{false, ReasonNotInjection}
}

func tokenizeWithFallback(query string, d dialect.SQL) []sqllex.Token {
	tokens := sqllex.Tokenize(query, d)
	if len(tokens) == 0 && d != dialect.Generic {
		return sqllex.Tokenize(query, dialect.Generic)
	}
	return tokens
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlnumRune(r) {
			return false
		}
	}
	return true
}

func isAlnumRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func commentsChanged(tokens1, tokens2 []sqllex.Token) bool {
	s1, m1 := commentSpans(tokens1)
	s2, m2 := commentSpans(tokens2)
	return commentdiff.Changed(s1, s2, m1, m2)
}

func commentSpans(tokens []sqllex.Token) (singleLine, multiLine []commentdiff.Span) {
	for _, t := range tokens {
		switch t.Kind {
		case sqllex.SingleLineComment:
			singleLine = append(singleLine, commentdiff.Span{Length: len(t.Text), Prefix: t.Prefix})
		case sqllex.MultiLineComment:
			multiLine = append(multiLine, commentdiff.Span{Length: len(t.Text)})
		}
	}
	return
}
