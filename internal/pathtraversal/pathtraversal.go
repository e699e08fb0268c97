// Package pathtraversal implements the path traversal detector (spec
// §4.16, component C16): given a file path a host is about to open, and
// the user-supplied substring that produced it, decide whether the path
// can escape its intended directory.
package pathtraversal

import "strings"

// dangerousPathParts are traversal segments checked anywhere in the path,
// for both path-separator conventions since callers run over POSIX and
// Windows inputs alike.
var dangerousPathParts = []string{"../", "..\\"}

// dangerousPathStarts are absolute-path prefixes that reach outside any
// reasonable upload/serving root. The first 19 are Unix top-level
// directories; the last two are Windows drive-letter roots.
var dangerousPathStarts = []string{
	"/bin/", "/boot/", "/dev/", "/etc/", "/home/", "/init/", "/lib/", "/media/", "/mnt/", "/opt/",
	"/proc/", "/root/", "/run/", "/sbin/", "/srv/", "/sys/", "/tmp/", "/usr/", "/var/", "c:/",
	"c:\\",
}

// ContainsUnsafePathParts implements contains_unsafe_path_parts: true if
// filePath contains a "../" or "..\" segment anywhere.
func ContainsUnsafePathParts(filePath string) bool {
	for _, part := range dangerousPathParts {
		if strings.Contains(filePath, part) {
			return true
		}
	}
	return false
}

// StartsWithUnsafePath implements starts_with_unsafe_path: true if
// filePath begins with one of the dangerous absolute roots and also
// begins with userInput, both compared case-insensitively. An empty
// userInput is a prefix of every path, so it does not by itself rule the
// check out.
func StartsWithUnsafePath(filePath, userInput string) bool {
	lowerPath := strings.ToLower(filePath)
	lowerInput := strings.ToLower(userInput)

	for _, start := range dangerousPathStarts {
		if strings.HasPrefix(lowerPath, start) && strings.HasPrefix(lowerPath, lowerInput) {
			return true
		}
	}
	return false
}

// Detect implements detect_path_traversal(file_path, user_input): true if
// either sub-check fires.
func Detect(filePath, userInput string) bool {
	return ContainsUnsafePathParts(filePath) || StartsWithUnsafePath(filePath, userInput)
}
