// Package route implements the route templating builder (spec §4.13,
// component C13): given a URL, produce a parameterized route by
// replacing path segments that look like identifiers, dates, emails,
// IPs, hashes, or secrets with named placeholders.
package route

import (
	"net"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/runger/vetline/internal/secretentropy"
)

var (
	uuidRegex = regexp.MustCompile(`(?:[0-9a-f]{8}-[0-9a-f]{4}-[1-8][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}|00000000-0000-0000-0000-000000000000|ffffffff-ffff-ffff-ffff-ffffffffffff)$`)
	numberRegex = regexp.MustCompile(`^\d+$`)
	dateRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}|\d{2}-\d{2}-\d{4}$`)
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	hashRegex   = regexp.MustCompile(`(?i)^(?:[a-f0-9]{32}|[a-f0-9]{40}|[a-f0-9]{64}|[a-f0-9]{128})$`)
	objectRegex = regexp.MustCompile(`(?i)^[0-9a-f]{24}$`)
)

var hashLengths = map[int]bool{32: true, 40: true, 64: true, 128: true}

// ReplaceSegmentWithParam implements replace_segment_with_param: classify
// one path segment and return its template placeholder, or the segment
// unchanged if nothing matches. Uses secretentropy's default thresholds
// for the trailing ":secret" classification.
func ReplaceSegmentWithParam(segment string) string {
	return ReplaceSegmentWithParamUsing(segment, secretentropy.LooksLikeSecret)
}

// ReplaceSegmentWithParamUsing is ReplaceSegmentWithParam with the secret
// heuristic supplied by the caller, so internal/config's tunable
// thresholds can reach the route builder without the classifier itself
// taking on a config dependency.
func ReplaceSegmentWithParamUsing(segment string, isSecret func(string) bool) string {
	if segment == "" {
		return segment
	}

	startsWithDigit := segment[0] >= '0' && segment[0] <= '9'

	if startsWithDigit && numberRegex.MatchString(segment) {
		return ":number"
	}
	if len(segment) == 36 {
		if _, err := uuid.Parse(segment); err == nil && uuidRegex.MatchString(segment) {
			return ":uuid"
		}
	}
	if len(segment) == 24 && objectRegex.MatchString(segment) {
		return ":objectId"
	}
	if startsWithDigit && dateRegex.MatchString(segment) {
		return ":date"
	}
	if strings.Contains(segment, "@") && emailRegex.MatchString(segment) {
		return ":email"
	}
	if net.ParseIP(segment) != nil {
		return ":ip"
	}
	if hashLengths[len(segment)] && hashRegex.MatchString(segment) {
		return ":hash"
	}
	if isSecret(segment) {
		return ":secret"
	}
	return segment
}
