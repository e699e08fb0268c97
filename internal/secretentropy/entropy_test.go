package secretentropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeSecretQualifies(t *testing.T) {
	assert.True(t, LooksLikeSecret("aB3$kZ9qWt1"))
}

func TestLooksLikeSecretTooShort(t *testing.T) {
	assert.False(t, LooksLikeSecret("abc123"))
}

func TestLooksLikeSecretNoDigit(t *testing.T) {
	assert.False(t, LooksLikeSecret("abcdefghijklmnop"))
}

func TestLooksLikeSecretSingleCharset(t *testing.T) {
	assert.False(t, LooksLikeSecret("password123"))
}

func TestLooksLikeSecretRejectsSpace(t *testing.T) {
	assert.False(t, LooksLikeSecret("ab 123456789"))
}

func TestLooksLikeSecretRejectsHyphen(t *testing.T) {
	assert.False(t, LooksLikeSecret("ab-123456789"))
}

func TestLooksLikeSecretLowUniqueness(t *testing.T) {
	assert.False(t, LooksLikeSecret("aaaaaaaaaaB1"))
}

func TestLooksLikeSecretWithThresholdLooserLength(t *testing.T) {
	assert.False(t, LooksLikeSecret("aB3$kZ9q"))
	assert.True(t, LooksLikeSecretWithThreshold("aB3$kZ9q", 5, 0.75))
}

func TestLooksLikeSecretWithThresholdStricterRatio(t *testing.T) {
	assert.True(t, LooksLikeSecret("aB3$kZ9qWt1"))
	assert.False(t, LooksLikeSecretWithThreshold("aB3$kZ9qWt1", 10, 1.0))
}
