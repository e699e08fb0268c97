package route

import (
	"strings"

	"github.com/runger/vetline/internal/urlpath"
)

// BuildRouteFromURL implements build_route_from_url_str: extract the URL
// path, template each segment, and rejoin, dropping a single trailing
// slash unless the whole route collapsed to "/". Returns ok=false if the
// input isn't a parseable URL or root-relative path.
func BuildRouteFromURL(rawURL string) (route string, ok bool) {
	return BuildRouteFromURLUsing(rawURL, ReplaceSegmentWithParam)
}

// BuildRouteFromURLUsing is BuildRouteFromURL with the per-segment
// classifier supplied by the caller, letting internal/scanner wire in a
// config-tuned ReplaceSegmentWithParamUsing without this function taking
// on a config dependency of its own.
func BuildRouteFromURLUsing(rawURL string, classify func(string) string) (route string, ok bool) {
	path, ok := urlpath.TryParsePath(rawURL)
	if !ok {
		return "", false
	}

	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = classify(s)
	}
	route = strings.Join(segments, "/")

	if route == "/" {
		return "/", true
	}
	if strings.HasSuffix(route, "/") {
		return route[:len(route)-1], true
	}
	return route, true
}
