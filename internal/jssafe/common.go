// Package jssafe implements the common/safe JS input recognizers (spec
// §4.11, component C11): a regex whitelist for simple arithmetic input,
// plus a stricter structural check that accepts only numeric literals
// combined with the arithmetic binary operators.
package jssafe

import "regexp"

var mathOnly = regexp.MustCompile(`^[\d.,+\-*/%^\s]+$`)

// IsCommonJSInput reports whether userInput is composed solely of digits,
// punctuation, and the arithmetic operator characters — simple math that
// can't itself carry a statement or comment injection.
func IsCommonJSInput(userInput string) bool {
	return mathOnly.MatchString(userInput)
}
