package urlpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryParsePathRootRelative(t *testing.T) {
	path, ok := TryParsePath("/users/123/profile")
	assert.True(t, ok)
	assert.Equal(t, "/users/123/profile", path)
}

func TestTryParsePathAbsoluteURL(t *testing.T) {
	path, ok := TryParsePath("https://example.com/api/v1/orders?id=5")
	assert.True(t, ok)
	assert.Equal(t, "/api/v1/orders", path)
}

func TestTryParsePathEmptyPathDefaultsToRoot(t *testing.T) {
	path, ok := TryParsePath("https://example.com")
	assert.True(t, ok)
	assert.Equal(t, "/", path)
}

func TestTryParsePathEmptyString(t *testing.T) {
	path, ok := TryParsePath("")
	assert.True(t, ok)
	assert.Equal(t, "/", path)
}

func TestTryParsePathWithFragmentAndQuery(t *testing.T) {
	path, ok := TryParsePath("/search?q=go#top")
	assert.True(t, ok)
	assert.Equal(t, "/search", path)
}
