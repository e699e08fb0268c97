package jsinjection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runger/vetline/internal/dialect"
)

func TestDetectNotInCode(t *testing.T) {
	assert.False(t, Detect("let x = 1;", "missing", dialect.Script))
}

func TestDetectTooSmall(t *testing.T) {
	assert.False(t, Detect("let x = 1;", "1", dialect.Script))
}

func TestDetectStatementInjection(t *testing.T) {
	code := `doSomething(42); doEvil();`
	assert.True(t, Detect(code, `42); doEvil();`, dialect.Script))
}

func TestDetectBenignSubstitutionNotFlagged(t *testing.T) {
	code := `let total = price * quantity;`
	assert.False(t, Detect(code, "quantity", dialect.Script))
}

func TestDetectCommentInjection(t *testing.T) {
	code := "let x = 1; // short comment\n"
	assert.True(t, Detect(code, "short comment", dialect.Script))
}

func TestDetectSourceTypeDoesNotChangeVerdict(t *testing.T) {
	code := `let total = price * quantity;`
	a := Detect(code, "quantity", dialect.Script)
	b := Detect(code, "quantity", dialect.TypeScript)
	assert.Equal(t, a, b)
}

func TestDetectFailsOpenOnUnparseableCode(t *testing.T) {
	// unbalanced braces: not valid under any JS/TS grammar, so the esbuild
	// gate rejects it before the statement/comment heuristic ever runs.
	code := `function broken( { doSomethingWeird(payload);`
	assert.False(t, Detect(code, "payload", dialect.Script))
}

func TestDetectTypeScriptOnlySyntaxRejectedUnderPlainJSGrammar(t *testing.T) {
	code := `function f(x: number) { return x + value; }`
	// type annotations aren't valid plain JS, so the JS-grammar gate fails
	// this snippet open before the heuristic ever runs...
	assert.False(t, Detect(code, "value", dialect.Script))
	// ...but the same snippet parses fine under the TypeScript grammar, and
	// a benign operand substitution there is correctly not flagged.
	assert.False(t, Detect(code, "value", dialect.TypeScript))
}
