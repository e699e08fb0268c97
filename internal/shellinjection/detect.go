// Package shellinjection implements the shell injection detector (spec
// §4.9, component C9): given a shell command and a user-input substring,
// decide whether the user input altered the command's token shape, with
// an additional dangerous-syntax/safe-encapsulation check layered on top
// at the host interface.
package shellinjection

import (
	"strings"
	"unicode"

	"github.com/runger/vetline/internal/shelllex"
	"github.com/runger/vetline/internal/shellsyntax"
)

// Reason documents why Detect returned the verdict it did.
type Reason string

const (
	ReasonUserInputNotInCommand Reason = "UserInputNotInCommand"
	ReasonUserInputTooSmall     Reason = "UserInputTooSmall"
	ReasonAllWhitespace         Reason = "AllWhitespace"
	ReasonFailedToTokenize      Reason = "FailedToTokenize"
	ReasonNoChangesFound        Reason = "NoChangesFound"
	ReasonTokensHaveDelta       Reason = "TokensHaveDelta"
	ReasonCommentStructureDiff Reason = "CommentStructureAltered"
)

// Result is the {detected, reason} pair from detect_shell_injection_str.
type Result struct {
	Detected bool
	Reason   Reason
}

// Detect implements detect_shell_injection_str(command, userinput).
func Detect(command, userInput string) Result {
	if userInput == "~" && len(command) > 1 && strings.Contains(command, "~") {
		return Result{true, ReasonTokensHaveDelta}
	}

	if len(userInput) <= 1 {
		return Result{false, ReasonUserInputTooSmall}
	}
	if len(userInput) > len(command) {
		return Result{false, ReasonUserInputNotInCommand}
	}
	if !strings.Contains(command, userInput) {
		return Result{false, ReasonUserInputNotInCommand}
	}

	trimmed := strings.Trim(userInput, " ")

	if isAllASCIIWhitespace(trimmed) {
		return Result{false, ReasonAllWhitespace}
	}
	if len(trimmed) <= 1 {
		return Result{false, ReasonUserInputTooSmall}
	}

	tokens := shelllex.Tokenize(command)
	if len(tokens) == 0 {
		return Result{false, ReasonFailedToTokenize}
	}

	safeReplace := strings.Repeat("a", len(trimmed))
	commandWithoutInput := strings.ReplaceAll(command, trimmed, safeReplace)
	tokensWithoutInput := shelllex.Tokenize(commandWithoutInput)

	if absDiff(len(tokens), len(tokensWithoutInput)) != 0 {
		return Result{true, ReasonTokensHaveDelta}
	}

	if commentsChanged(tokens, tokensWithoutInput) {
		return Result{true, ReasonCommentStructureDiff}
	}

	return Result{false, ReasonNoChangesFound}
}

// DetectStringified is the host-level entry point from spec §6: a string
// is flagged if either the raw token-shape detector fires, or the string
// contains recognized dangerous shell syntax that isn't safely quoted.
func DetectStringified(command, userInput string) bool {
	return DetectStringifiedWithExtraCommands(command, userInput, nil)
}

// DetectStringifiedWithExtraCommands is DetectStringified extended with
// caller-supplied dangerous command names (see
// shellsyntax.ContainsShellSyntaxWithExtraCommands), letting
// internal/config widen the dangerous-command list per site.
func DetectStringifiedWithExtraCommands(command, userInput string, extraCommands []string) bool {
	if Detect(command, userInput).Detected {
		return true
	}
	if !shellsyntax.ContainsShellSyntaxWithExtraCommands(command, userInput, extraCommands) {
		return false
	}
	return !shellsyntax.IsSafelyEncapsulated(command, userInput)
}

func isAllASCIIWhitespace(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func commentsChanged(tokens1, tokens2 []shelllex.Token) bool {
	c1 := commentTexts(tokens1)
	c2 := commentTexts(tokens2)
	if len(c1) != len(c2) {
		return true
	}
	for i := range c1 {
		if len(c1[i]) != len(c2[i]) {
			return true
		}
	}
	return false
}

func commentTexts(tokens []shelllex.Token) []string {
	var out []string
	for _, t := range tokens {
		if t.Kind == shelllex.Comment {
			out = append(out, t.Text)
		}
	}
	return out
}
