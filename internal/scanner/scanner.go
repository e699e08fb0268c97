// Package scanner wires every detector package behind a single facade,
// the way internal/daemon/server.go wires the teacher's subsystems
// together behind one request dispatcher. It is the only package that
// knows about internal/config and internal/auditlog at once; every
// detector package underneath stays pure and config-free.
package scanner

import (
	"context"
	"io"
	"log/slog"

	"github.com/runger/vetline/internal/auditlog"
	"github.com/runger/vetline/internal/config"
	"github.com/runger/vetline/internal/dialect"
	"github.com/runger/vetline/internal/jsinjection"
	"github.com/runger/vetline/internal/pathtraversal"
	"github.com/runger/vetline/internal/route"
	"github.com/runger/vetline/internal/secretentropy"
	"github.com/runger/vetline/internal/shellinjection"
	"github.com/runger/vetline/internal/sqlast"
	"github.com/runger/vetline/internal/sqlinjection"
)

// Scanner is the embeddable entry point bundling config and an optional
// audit sink around the six detectors. The zero value is usable: nil
// Config and Audit mean "built-in defaults, no recording".
type Scanner struct {
	Config *config.Config
	Audit  *auditlog.Log
	Logger *slog.Logger
}

// New returns a Scanner. A nil cfg uses built-in defaults; a nil audit
// disables recording; a nil logger discards log output.
func New(cfg *config.Config, audit *auditlog.Log, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{Config: cfg, Audit: audit, Logger: logger}
}

func (s *Scanner) record(ctx context.Context, component string, detected bool, reason, input string) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, auditlog.Entry{
		Component: component,
		Detected:  detected,
		Reason:    reason,
		Input:     input,
	}); err != nil {
		s.Logger.Warn("scanner: audit record failed", "component", component, "error", err)
	}
}

// ScanSQL implements the sql-scan entry point (spec §6): detect whether
// userInput altered query's structural shape under dialect d.
func (s *Scanner) ScanSQL(ctx context.Context, query, userInput string, d dialect.SQL) sqlinjection.Result {
	var extra []string
	if s.Config != nil {
		extra = s.Config.SQL.ExtraSafeStrings
	}
	result := sqlinjection.DetectWithExtraSafeStrings(query, userInput, d, extra)
	s.record(ctx, "sql", result.Detected, string(result.Reason), userInput)
	return result
}

// ScanShell implements the shell-scan entry point (spec §6): the
// disjunction of token-shape delta and unsafe dangerous-syntax exposure.
func (s *Scanner) ScanShell(ctx context.Context, command, userInput string) bool {
	var extra []string
	if s.Config != nil {
		extra = s.Config.Shell.ExtraDangerousCommands
	}
	detected := shellinjection.DetectStringifiedWithExtraCommands(command, userInput, extra)
	reason := "NotDetected"
	if detected {
		reason = "Detected"
	}
	s.record(ctx, "shell", detected, reason, userInput)
	return detected
}

// ScanJS implements the js-scan entry point (spec §6): differential
// parse of code with and without userInput under the given source type.
func (s *Scanner) ScanJS(ctx context.Context, code, userInput string, sourceType dialect.JSSourceType) bool {
	detected := jsinjection.Detect(code, userInput, sourceType)
	reason := "NotDetected"
	if detected {
		reason = "Detected"
	}
	s.record(ctx, "js", detected, reason, userInput)
	return detected
}

// ScanIDOR implements the idor entry point (spec §6): parse query and
// return, per statement, the tables, filters, and insert columns
// reachable for an insecure-direct-object-reference check.
func (s *Scanner) ScanIDOR(ctx context.Context, query string, d dialect.SQL) ([]sqlast.QueryResult, error) {
	results, err := sqlast.Analyze(query, d)
	reason := "Analyzed"
	if err != nil {
		reason = "Error"
	}
	s.record(ctx, "idor", err == nil, reason, query)
	return results, err
}

// ScanRoute implements the route entry point (spec §6): build a
// parameterized route template from rawURL, using internal/config's
// secret-entropy tunables if set.
func (s *Scanner) ScanRoute(ctx context.Context, rawURL string) (string, bool) {
	isSecret := secretentropy.LooksLikeSecret
	if s.Config != nil && (s.Config.Route.SecretMinLength != 0 || s.Config.Route.SecretEntropyThreshold != 0) {
		minLen := s.Config.Route.SecretMinLength
		ratio := s.Config.Route.SecretEntropyThreshold
		isSecret = func(seg string) bool {
			return secretentropy.LooksLikeSecretWithThreshold(seg, minLen, ratio)
		}
	}
	classify := func(seg string) string { return route.ReplaceSegmentWithParamUsing(seg, isSecret) }
	result, ok := route.BuildRouteFromURLUsing(rawURL, classify)
	s.record(ctx, "route", ok, "BuiltRoute", rawURL)
	return result, ok
}

// ScanPathTraversal implements the path-scan entry point: decide whether
// filePath, as produced from userInput, can escape its intended
// directory.
func (s *Scanner) ScanPathTraversal(ctx context.Context, filePath, userInput string) bool {
	detected := pathtraversal.Detect(filePath, userInput)
	reason := "NotDetected"
	if detected {
		reason = "Detected"
	}
	s.record(ctx, "path", detected, reason, filePath)
	return detected
}
