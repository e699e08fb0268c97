// Package sqlsafe implements the common-SQL / safe-SQL recognizer (spec
// §4.6, component C6): a whitelist of user-input shapes the injection
// detector must never flag, plus a stricter token-class whitelist used
// elsewhere in the library.
package sqlsafe

import (
	"regexp"
	"strings"

	"github.com/runger/vetline/internal/dialect"
	"github.com/runger/vetline/internal/sqllex"
)

// commonSQLStrings is the fixed 27-entry whitelist from spec §4.6,
// compared case-folded against the already-lowercased candidate.
var commonSQLStrings = []string{
	"select *",
	"select count(*)",
	"insert into",
	"inner join",
	"left join",
	"right join",
	"left outer join",
	"right outer join",
	"delete from",
	"order by",
	"group by",
	"on conflict",
	"on conflict do update",
	"on conflict do nothing",
	"on duplicate key",
	"on duplicate key update",
	"do update",
	"do nothing",
	"count(*)",
	"is null",
	"is not null",
	"is not",
	"not exists",
	"distinct on",
	"[]",
	"not in",
	"time zone",
}

var (
	reShortWords      = regexp.MustCompile(`^[a-z]+ [a-z]+$`)
	reShortFragment   = regexp.MustCompile(`^[ 0-9a-z]+$`)
	reLetterEquals    = regexp.MustCompile(`^[a-z]=$`)
	reAscDesc         = regexp.MustCompile(`^[a-z_][a-z0-9_]* +(asc|desc)$`)
	reInteger         = regexp.MustCompile(`^-?[0-9]+$`)
	reDecimal         = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
	reTableColumn     = regexp.MustCompile(`^(\.[a-z_][a-z0-9_]*|[a-z_][a-z0-9_]*\.|[a-z_][a-z0-9_]*\.[a-z_][a-z0-9_]*)$`)
	reWrapSingleOpen  = regexp.MustCompile(`^'[a-z0-9-]+$`)
	reWrapSingleClose = regexp.MustCompile(`^[a-z0-9-]+'$`)
	reWrapDoubleOpen  = regexp.MustCompile(`^"[a-z0-9-]+$`)
	reWrapDoubleClose = regexp.MustCompile(`^[a-z0-9-]+"$`)
)

// IsCommonSQLString implements C6's is_common_sql_string classifier.
// userInputLower must already be lowercased and trimmed by the caller
// (internal/sqlinjection does both before calling in).
func IsCommonSQLString(userInputLower string) bool {
	return IsCommonSQLStringWithExtras(userInputLower, nil)
}

// IsCommonSQLStringWithExtras is IsCommonSQLString extended with
// caller-supplied exemptions (already lowercased), checked as exact
// matches before the built-in list and regex shapes run. Lets
// internal/config add site-specific common strings without touching the
// built-in table.
func IsCommonSQLStringWithExtras(userInputLower string, extra []string) bool {
	for _, s := range extra {
		if userInputLower == s {
			return true
		}
	}
	for _, s := range commonSQLStrings {
		if userInputLower == s {
			return true
		}
	}

	if len(userInputLower) <= 5 && reShortWords.MatchString(userInputLower) {
		return true
	}

	if len(userInputLower) <= 3 && reShortFragment.MatchString(userInputLower) {
		return true
	}

	if len(userInputLower) == 2 && strings.HasSuffix(userInputLower, "=") && reLetterEquals.MatchString(userInputLower) {
		return true
	}

	if strings.Contains(userInputLower, "asc") || strings.Contains(userInputLower, "desc") {
		return reAscDesc.MatchString(userInputLower)
	}

	if strings.HasPrefix(userInputLower, "'") && len(userInputLower) <= 200 && !strings.Contains(userInputLower, "--") {
		if reWrapSingleOpen.MatchString(userInputLower) {
			return true
		}
	}
	if strings.HasSuffix(userInputLower, "'") && len(userInputLower) <= 200 && !strings.Contains(userInputLower, "--") {
		if reWrapSingleClose.MatchString(userInputLower) {
			return true
		}
	}
	if strings.HasPrefix(userInputLower, `"`) && len(userInputLower) <= 200 && !strings.Contains(userInputLower, "--") {
		if reWrapDoubleOpen.MatchString(userInputLower) {
			return true
		}
	}
	if strings.HasSuffix(userInputLower, `"`) && len(userInputLower) <= 200 && !strings.Contains(userInputLower, "--") {
		if reWrapDoubleClose.MatchString(userInputLower) {
			return true
		}
	}

	if strings.Contains(userInputLower, ".") {
		if reDecimal.MatchString(userInputLower) {
			return true
		}
		return reTableColumn.MatchString(userInputLower)
	}

	return reInteger.MatchString(userInputLower)
}

// IsSafeSQLString implements C6's is_safe_sql_string: tokenizes the
// candidate under dialect d and accepts iff every token is a minus,
// comma, space/tab, or number. Any other token — including a bare plus —
// makes it unsafe. An empty token stream is unsafe.
func IsSafeSQLString(userInput string, d dialect.SQL) bool {
	tokens := sqllex.Tokenize(userInput, d)
	if len(tokens) == 0 {
		return false
	}
	return sqllex.HasOnly(tokens, func(t sqllex.Token) bool {
		switch t.Kind {
		case sqllex.Number:
			return true
		case sqllex.Whitespace:
			// sqllex emits a run of blanks as one token.
			return strings.Trim(t.Text, " \t") == ""
		case sqllex.Other:
			return t.Text == "-" || t.Text == ","
		default:
			return false
		}
	})
}
