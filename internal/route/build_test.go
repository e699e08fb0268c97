package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRouteFromURLRootRelative(t *testing.T) {
	route, ok := BuildRouteFromURL("/users/123/profile")
	assert.True(t, ok)
	assert.Equal(t, "/users/:number/profile", route)
}

func TestBuildRouteFromURLAbsolute(t *testing.T) {
	route, ok := BuildRouteFromURL("https://api.example.com/orders/507f1f77bcf86cd799439011")
	assert.True(t, ok)
	assert.Equal(t, "/orders/:objectId", route)
}

func TestBuildRouteFromURLRoot(t *testing.T) {
	route, ok := BuildRouteFromURL("/")
	assert.True(t, ok)
	assert.Equal(t, "/", route)
}

func TestBuildRouteFromURLTrailingSlashDropped(t *testing.T) {
	route, ok := BuildRouteFromURL("/a/b/")
	assert.True(t, ok)
	assert.Equal(t, "/a/b", route)
}

func TestBuildRouteFromURLUnparseable(t *testing.T) {
	_, ok := BuildRouteFromURL("%zz")
	assert.False(t, ok)
}

func TestBuildRouteFromURLUsingCustomClassifier(t *testing.T) {
	classify := func(s string) string {
		if s == "" {
			return s
		}
		return ":seg"
	}
	route, ok := BuildRouteFromURLUsing("/a/b", classify)
	assert.True(t, ok)
	assert.Equal(t, "/:seg/:seg", route)
}
