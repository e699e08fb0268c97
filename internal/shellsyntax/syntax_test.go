package shellsyntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsShellSyntaxDangerousChar(t *testing.T) {
	assert.True(t, ContainsShellSyntax("echo foo; rm -rf /", "foo; rm -rf /"))
}

func TestContainsShellSyntaxEmptyInput(t *testing.T) {
	assert.False(t, ContainsShellSyntax("echo foo", "   "))
}

func TestContainsShellSyntaxRecognizedCommand(t *testing.T) {
	assert.True(t, ContainsShellSyntax("run-script kill", "kill"))
}

func TestContainsShellSyntaxBenignWord(t *testing.T) {
	assert.False(t, ContainsShellSyntax("deploy staging", "staging"))
}

func TestContainsShellSyntaxWithExtraCommands(t *testing.T) {
	assert.False(t, ContainsShellSyntax("run-script frobnicate", "frobnicate"))
	assert.True(t, ContainsShellSyntaxWithExtraCommands("run-script frobnicate", "frobnicate", []string{"frobnicate"}))
}

func TestIsSafelyEncapsulated(t *testing.T) {
	assert.True(t, IsSafelyEncapsulated(`echo "hello"`, "hello"))
	assert.False(t, IsSafelyEncapsulated(`echo "$(rm -rf /)"`, "$(rm -rf /)"))
	assert.False(t, IsSafelyEncapsulated(`echo hello`, "hello"))
}

func TestIsSafelyEncapsulatedQuoteBreakout(t *testing.T) {
	// user input itself contains the quote char it's wrapped in: can break out.
	assert.False(t, IsSafelyEncapsulated(`echo "a"b""`, `a"b`))
}
