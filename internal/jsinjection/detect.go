// Package jsinjection implements the JS/TS injection detector (spec
// §4.10, component C10): given a code snippet, a user-input substring,
// and a source type, decide whether the user input changed the code's
// top-level statement count or comment structure.
package jsinjection

import (
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/runger/vetline/internal/dialect"
	"github.com/runger/vetline/internal/jslex"
)

// replacementWord mirrors sqlinjection's replacement strategy: substitute
// a short, syntactically inert identifier for the user input before the
// second tokenize pass.
const replacementWord = "str"

// Detect implements detect_js_injection_str(code, userinput, sourcetype).
// sourceType picks the esbuild grammar (plain JS vs TypeScript/TSX) used
// to gate the differential tokenize pass: real syntax errors under that
// grammar fail the whole detector open, the same way an unterminated
// string fails jslex.Tokenize open.
func Detect(code, userInput string, sourceType dialect.JSSourceType) bool {
	if !strings.Contains(code, userInput) {
		return false
	}
	if len(userInput) <= 1 {
		return false
	}

	codeWithoutInput := strings.Replace(code, userInput, replacementWord, 1)

	loader := esbuildLoader(sourceType)
	if !parsesUnderGrammar(code, loader) || !parsesUnderGrammar(codeWithoutInput, loader) {
		return false
	}

	tokens := jslex.Tokenize(code)
	if tokens == nil {
		return false
	}
	tokensWithoutInput := jslex.Tokenize(codeWithoutInput)
	if tokensWithoutInput == nil {
		return false
	}

	if countTopLevelStatements(tokens) != countTopLevelStatements(tokensWithoutInput) {
		return true
	}

	if commentsChanged(tokens, tokensWithoutInput) {
		return true
	}

	return false
}

// esbuildLoader maps the host's source-type enum onto the esbuild grammar
// that can actually parse it — TypeScript/TSX syntax (type annotations,
// generics, JSX) isn't valid under the plain JS grammar.
func esbuildLoader(sourceType dialect.JSSourceType) api.Loader {
	switch sourceType {
	case dialect.TypeScript:
		return api.LoaderTS
	case dialect.TSX:
		return api.LoaderTSX
	default:
		return api.LoaderJS
	}
}

// parsesUnderGrammar runs src through esbuild's real JS/TS parser and
// reports whether it's syntactically valid. This catches cases the hand
// lexer can't: unbalanced brackets, invalid tokens, TS-only syntax fed to
// the JS grammar — any of which means the statement/comment counts below
// aren't trustworthy.
func parsesUnderGrammar(src string, loader api.Loader) bool {
	result := api.Transform(src, api.TransformOptions{
		Loader:   loader,
		LogLevel: api.LogLevelSilent,
	})
	return len(result.Errors) == 0
}

// countTopLevelStatements approximates program.body.length: it counts
// semicolon-terminated statements at bracket depth zero, plus one more
// for any trailing non-empty statement left unterminated at end of
// input (covering automatic-semicolon-insertion code).
func countTopLevelStatements(tokens []jslex.Token) int {
	depth := 0
	count := 0
	pending := false

	for _, t := range tokens {
		switch t.Kind {
		case jslex.Whitespace, jslex.Newline, jslex.LineComment, jslex.BlockComment:
			continue
		case jslex.Punct:
			switch t.Text {
			case "(", "{", "[":
				depth++
				pending = true
			case ")", "}", "]":
				if depth > 0 {
					depth--
				}
				if depth == 0 && t.Text == "}" {
					count++
					pending = false
				} else {
					pending = true
				}
			case ";":
				if depth == 0 {
					if pending {
						count++
					}
					pending = false
				} else {
					pending = true
				}
			default:
				pending = true
			}
		default:
			pending = true
		}
	}
	if depth == 0 && pending {
		count++
	}
	return count
}

func commentsChanged(tokens1, tokens2 []jslex.Token) bool {
	c1 := commentLens(tokens1)
	c2 := commentLens(tokens2)
	if len(c1) != len(c2) {
		return true
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			return true
		}
	}
	return false
}

func commentLens(tokens []jslex.Token) []int {
	var out []int
	for _, t := range tokens {
		if t.Kind == jslex.LineComment || t.Kind == jslex.BlockComment {
			out = append(out, len(t.Text))
		}
	}
	return out
}
