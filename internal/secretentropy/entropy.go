// Package secretentropy implements the sliding-window character-diversity
// heuristic the route builder uses to recognize opaque secret tokens in
// URL path segments that don't match a more specific shape (spec §4.14,
// component C14).
package secretentropy

const minimumLength = 10

var special = map[rune]bool{
	'!': true, '#': true, '$': true, '%': true, '^': true, '&': true,
	'*': true, '|': true, ';': true, ':': true, '<': true, '>': true,
}

// LooksLikeSecret implements looks_like_a_secret: a segment qualifies
// only once it clears a length floor, mixes at least two of
// {lowercase, uppercase, special} alongside a digit, contains no
// space or hyphen, and keeps a high average unique-character ratio
// across every 10-rune window.
func LooksLikeSecret(s string) bool {
	return LooksLikeSecretWithThreshold(s, minimumLength, 0.75)
}

// LooksLikeSecretWithThreshold is LooksLikeSecret with the length floor
// and average-uniqueness-ratio threshold supplied by the caller, so
// internal/config can tune the heuristic without changing its shape.
// The sliding window width always matches minLength, as in the original.
func LooksLikeSecretWithThreshold(s string, minLength int, ratioThreshold float64) bool {
	windowSize := minLength
	runes := []rune(s)
	if len(runes) <= minLength {
		return false
	}

	var hasDigit, hasLower, hasUpper, hasSpecial bool
	for _, r := range runes {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case special[r]:
			hasSpecial = true
		case r == ' ':
			return false
		case r == '-':
			return false
		}
	}
	if !hasDigit {
		return false
	}

	charsetCount := 0
	for _, b := range []bool{hasLower, hasUpper, hasSpecial} {
		if b {
			charsetCount++
		}
	}
	if charsetCount < 2 {
		return false
	}

	n := len(runes)
	if n < windowSize {
		return false
	}

	var sumRatio float64
	windows := 0
	for i := 0; i+windowSize <= n; i++ {
		seen := make(map[rune]bool, windowSize)
		for j := i; j < i+windowSize; j++ {
			seen[runes[j]] = true
		}
		sumRatio += float64(len(seen)) / float64(windowSize)
		windows++
	}
	average := sumRatio / float64(windows)
	return average > ratioThreshold
}
