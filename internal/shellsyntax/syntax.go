package shellsyntax

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/shlex"
)

// commandsRegex matches an optional path prefix (or bare relative dots
// and slashes) followed by one of the known command names, longest name
// first so e.g. "killall5" wins over "killall".
var commandsRegex = buildCommandsRegex()

func buildCommandsRegex() *regexp.Regexp {
	return buildCommandsRegexFrom(commands)
}

func buildCommandsRegexFrom(names []string) *regexp.Regexp {
	prefixes := make([]string, len(pathPrefixes))
	for i, p := range pathPrefixes {
		prefixes[i] = regexp.QuoteMeta(p)
	}
	prefixPattern := strings.Join(prefixes, "|")

	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	cmdParts := make([]string, len(sorted))
	for i, c := range sorted {
		cmdParts[i] = regexp.QuoteMeta(c)
	}
	cmdPattern := strings.Join(cmdParts, "|")

	pattern := `(?is)([/.]*(` + prefixPattern + `)?(` + cmdPattern + `))`
	return regexp.MustCompile(pattern)
}

// ContainsShellSyntax implements contains_shell_syntax(command, user_input):
// true if the user-controlled substring introduces shell metacharacters,
// or names a recognized command at a token boundary inside command.
func ContainsShellSyntax(command, userInput string) bool {
	return ContainsShellSyntaxWithExtraCommands(command, userInput, nil)
}

// ContainsShellSyntaxWithExtraCommands is ContainsShellSyntax extended
// with caller-supplied dangerous command names, folded into the boundary
// regex alongside the built-in list. Lets internal/config add
// site-specific dangerous commands without touching the built-in table.
func ContainsShellSyntaxWithExtraCommands(command, userInput string, extraCommands []string) bool {
	if strings.TrimSpace(userInput) == "" {
		return false
	}

	for _, r := range userInput {
		if dangerousChars[r] {
			return true
		}
	}

	re := commandsRegex
	if len(extraCommands) > 0 {
		re = buildCommandsRegexWithExtras(extraCommands)
	}

	if command == userInput {
		loc := re.FindStringIndex(command)
		return loc != nil && loc[0] == 0 && loc[1] == len(command)
	}

	if shellWordMatchesCommandUsing(re, command, userInput) {
		return true
	}

	for _, loc := range re.FindAllStringIndex(command, -1) {
		matched := command[loc[0]:loc[1]]
		if userInput != matched {
			continue
		}

		startIdx := loc[0]
		endIdx := loc[1]

		var before, after rune
		hasBefore, hasAfter := false, false
		if startIdx > 0 {
			before, _ = utf8.DecodeLastRuneInString(command[:startIdx])
			hasBefore = true
		}
		if endIdx < len(command) {
			after, _ = utf8.DecodeRuneInString(command[endIdx:])
			hasAfter = true
		}

		switch {
		case hasBefore && hasAfter && separators[before] && separators[after]:
			return true
		case hasBefore && !hasAfter && separators[before]:
			return true
		case !hasBefore && hasAfter && separators[after]:
			return true
		}
	}
	return false
}

// shellWordMatchesCommand is a fast pre-check ahead of the full
// boundary-scanning regex pass: if command splits cleanly into shell
// words (mirroring internal/suggestions/normalize's parseCommandTokens
// fast path), and userInput is exactly one of those words and that word
// is itself a recognized dangerous command, the word's own shlex
// boundaries already satisfy the separator check, so we can report a
// hit without running commandsRegex.FindAllStringIndex over the whole
// string. A miss here never rules anything out — the full scan beneath
// it still runs. A command containing a quote or backslash skips this
// path, since shlex strips those and a word could then be bounded by a
// quote rather than a separator.
func shellWordMatchesCommand(command, userInput string) bool {
	return shellWordMatchesCommandUsing(commandsRegex, command, userInput)
}

func shellWordMatchesCommandUsing(re *regexp.Regexp, command, userInput string) bool {
	if strings.ContainsAny(command, "\"'\\") {
		return false
	}
	words, err := shlex.Split(command)
	if err != nil || len(words) == 0 {
		return false
	}
	for _, w := range words {
		if w != userInput {
			continue
		}
		loc := re.FindStringIndex(w)
		if loc != nil && loc[0] == 0 && loc[1] == len(w) {
			return true
		}
	}
	return false
}

// buildCommandsRegexWithExtras rebuilds the boundary regex with extra
// dangerous command names folded in alongside the built-in list.
func buildCommandsRegexWithExtras(extra []string) *regexp.Regexp {
	all := make([]string, 0, len(commands)+len(extra))
	all = append(all, commands...)
	all = append(all, extra...)
	return buildCommandsRegexFrom(all)
}

// escapeChars and dangerousCharsInsideDoubleQuotes ground IsSafelyEncapsulated.
var escapeChars = map[rune]bool{'"': true, '\'': true}
var dangerousCharsInsideDoubleQuotes = map[rune]bool{'$': true, '`': true, '\\': true, '!': true}

// IsSafelyEncapsulated implements is_safely_encapsulated(command, user_input):
// true iff every occurrence of user_input in command sits inside a matching
// pair of quote characters that user_input itself cannot break out of.
func IsSafelyEncapsulated(command, userInput string) bool {
	segments := strings.Split(command, userInput)

	for i := 0; i < len(segments)-1; i++ {
		before := lastRune(segments[i])
		after, hasAfter := firstRune(segments[i+1])

		hasBefore := before != 0
		if !hasBefore || !escapeChars[before] {
			return false
		}
		if !hasAfter || before != after {
			return false
		}
		if strings.ContainsRune(userInput, before) {
			return false
		}
		if before == '"' {
			for _, c := range userInput {
				if dangerousCharsInsideDoubleQuotes[c] {
					return false
				}
			}
		}
	}
	return true
}

func lastRune(s string) rune {
	if s == "" {
		return 0
	}
	r := []rune(s)
	return r[len(r)-1]
}

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r := []rune(s)
	return r[0], true
}
