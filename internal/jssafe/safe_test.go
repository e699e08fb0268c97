package jssafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCommonJSInput(t *testing.T) {
	assert.True(t, IsCommonJSInput("1 + 2"))
	assert.True(t, IsCommonJSInput("3.14 * 2"))
	assert.False(t, IsCommonJSInput("alert(1)"))
	assert.False(t, IsCommonJSInput("1; DROP"))
}

func TestIsSafeJSInputArithmetic(t *testing.T) {
	assert.True(t, IsSafeJSInput("1 + 2"))
	assert.True(t, IsSafeJSInput("(1 + 2) * 3"))
	assert.True(t, IsSafeJSInput("1, 2, 3"))
}

func TestIsSafeJSInputEmpty(t *testing.T) {
	assert.False(t, IsSafeJSInput(""))
	assert.False(t, IsSafeJSInput("   "))
}

func TestIsSafeJSInputRejectsIdentifiers(t *testing.T) {
	assert.False(t, IsSafeJSInput("1 + x"))
	assert.False(t, IsSafeJSInput("alert(1)"))
}

func TestIsSafeJSInputRejectsComments(t *testing.T) {
	assert.False(t, IsSafeJSInput("1 // trailing"))
}

func TestIsSafeJSInputRejectsUnbalancedParens(t *testing.T) {
	assert.False(t, IsSafeJSInput("(1 + 2"))
}

func TestIsSafeJSInputRejectsTrailingGarbage(t *testing.T) {
	assert.False(t, IsSafeJSInput("1 + 2)"))
}
