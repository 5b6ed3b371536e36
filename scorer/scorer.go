/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package scorer grades a participant's submitted documentation
// against a test case's ground truth with a four-tier rubric summing
// to 100 points: structural checks, required-section keywords, judged
// factual accuracy, and judged quality.
//
// Tiers 1 and 2 are deterministic and side-effect-free. Tiers 3 and 4
// call the injected judge; a judge failure zeroes the affected
// sub-score and records a diagnostic instead of failing the case.
package scorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/aeobench/fixture"
	"chainguard.dev/aeobench/judge"
	"chainguard.dev/aeobench/participant"
)

// Point allocations per tier and sub-criterion.
const (
	docValidPoints     = 5
	readmeLengthPoints = 5
	metadataPoints     = 5

	installPoints = 8
	usagePoints   = 9
	examplePoints = 8

	purposePoints    = 12
	dependencyPoints = 10
	runCommandPoints = 8

	clarityPoints      = 12
	completenessPoints = 10
	formattingPoints   = 8

	maxTotal = 100

	// minReadmeLength is the exclusive threshold for length credit.
	minReadmeLength = 100
)

// DefaultJudgeTimeout bounds each judged sub-criterion call.
const DefaultJudgeTimeout = 60 * time.Second

// Report is the tier breakdown for one scored case.
type Report struct {
	Tier1 float64 `json:"tier1"`
	Tier2 float64 `json:"tier2"`
	Tier3 float64 `json:"tier3"`
	Tier4 float64 `json:"tier4"`
	Total float64 `json:"total"`

	// Diagnostics records judge failures and degraded scoring
	// decisions; it never affects the numbers.
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Scorer grades documents. It is stateless apart from its judge and
// safe for concurrent use across cases.
type Scorer struct {
	judge        judge.Interface
	judgeTimeout time.Duration
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithJudgeTimeout overrides the per-sub-criterion judge deadline.
func WithJudgeTimeout(d time.Duration) Option {
	return func(s *Scorer) {
		s.judgeTimeout = d
	}
}

// New returns a scorer using the given judge for tiers 3 and 4.
func New(j judge.Interface, opts ...Option) *Scorer {
	s := &Scorer{judge: j, judgeTimeout: DefaultJudgeTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score grades a submitted document against the test case's ground
// truth. A nil doc short-circuits to all zeros.
func (s *Scorer) Score(ctx context.Context, doc *participant.Doc, tc *fixture.TestCase) *Report {
	rep := &Report{}
	if doc == nil {
		rep.Diagnostics = append(rep.Diagnostics, "no document submitted")
		return rep
	}
	rep.Tier1 = scoreStructural(doc)
	rep.Tier2 = scoreSections(doc.Readme)
	rep.Tier3 = s.scoreAccuracy(ctx, doc.Readme, tc.Facts, rep)
	rep.Tier4 = s.scoreQuality(ctx, doc.Readme, rep)
	rep.Total = min(rep.Tier1+rep.Tier2+rep.Tier3+rep.Tier4, maxTotal)
	return rep
}

// ScoreResult grades a finished participant run. Runs that never
// responded are failures on every output-dependent tier; a fallback
// document, when present, earns structural credit only.
func (s *Scorer) ScoreResult(ctx context.Context, res *participant.Result, tc *fixture.TestCase) *Report {
	if res.Outcome == participant.OutcomeResponded {
		return s.Score(ctx, res.Doc, tc)
	}

	rep := &Report{}
	reason := string(res.Outcome)
	if res.Reason != "" {
		reason += ": " + res.Reason
	}
	rep.Diagnostics = append(rep.Diagnostics, reason)
	if res.Doc != nil {
		rep.Tier1 = scoreStructural(res.Doc)
		rep.Total = rep.Tier1
		rep.Diagnostics = append(rep.Diagnostics, "fallback document scored on structure only")
	}
	return rep
}

// scoreStructural is tier 1: document shape checks, no external calls.
func scoreStructural(doc *participant.Doc) float64 {
	score := float64(docValidPoints)
	if len(doc.Readme) > minReadmeLength {
		score += readmeLengthPoints
	}
	if hasSchemaOrgShape(doc.Metadata) {
		score += metadataPoints
	}
	return score
}

// hasSchemaOrgShape requires non-empty @context and @type plus the
// identifying keys a schema.org SoftwareSourceCode record carries.
func hasSchemaOrgShape(metadata map[string]any) bool {
	if !hasNonEmpty(metadata, "@context") || !hasNonEmpty(metadata, "@type") {
		return false
	}
	for _, key := range []string{"name", "description", "programmingLanguage"} {
		if _, ok := metadata[key]; !ok {
			return false
		}
	}
	return true
}

func hasNonEmpty(metadata map[string]any, key string) bool {
	v, ok := metadata[key]
	if !ok {
		return false
	}
	str, isStr := v.(string)
	return !isStr || str != ""
}

// Section keyword sets for tier 2. Matching is case-insensitive
// substring, all-or-nothing per sub-criterion.
var (
	installKeywords = []string{"install", "pip", "requirements", "setup"}
	usageKeywords   = []string{"usage", "run", "execute", "command"}
	exampleKeywords = []string{"example", "output", "demo", "```"}
)

// scoreSections is tier 2: required-section keyword detection.
func scoreSections(readme string) float64 {
	lower := strings.ToLower(readme)
	var score float64
	if containsAny(lower, installKeywords) {
		score += installPoints
	}
	if containsAny(lower, usageKeywords) {
		score += usagePoints
	}
	if containsAny(lower, exampleKeywords) {
		score += examplePoints
	}
	return score
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// scoreAccuracy is tier 3: judged factual accuracy against the facts
// record.
func (s *Scorer) scoreAccuracy(ctx context.Context, readme string, facts fixture.Facts, rep *Report) float64 {
	purpose := s.judged(ctx, "tier3/purpose", purposePoints, &judge.Request{
		Criterion: "Does the README's stated purpose match the reference purpose? Grade semantic agreement, not wording.",
		Reference: facts.MainPurpose,
		Actual:    readme,
	}, rep)

	deps := s.judged(ctx, "tier3/dependencies", dependencyPoints, &judge.Request{
		Criterion: "Does the README correctly describe the project's dependencies as given in the reference? When the reference says there are none, stating that the standard library suffices is a fully correct answer.",
		Reference: dependencyReference(facts.Dependencies),
		Actual:    readme,
	}, rep)

	runCmd := s.judged(ctx, "tier3/run_command", runCommandPoints, &judge.Request{
		Criterion: "Does the README document an invocation that semantically matches the reference run command? An exact string match is not required.",
		Reference: facts.RunCommand,
		Actual:    readme,
	}, rep)

	return purpose + deps + runCmd
}

// dependencyReference renders the facts' dependency list for judging.
// An empty list is a real answer, not missing data.
func dependencyReference(deps []string) string {
	if len(deps) == 0 {
		return "No third-party dependencies; the standard library alone is sufficient."
	}
	return strings.Join(deps, ", ")
}

// scoreQuality is tier 4: judged standalone quality.
func (s *Scorer) scoreQuality(ctx context.Context, readme string, rep *Report) float64 {
	clarity := s.judged(ctx, "tier4/clarity", clarityPoints, &judge.Request{
		Criterion: "Is the README clear and readable for a developer encountering the project for the first time?",
		Actual:    readme,
	}, rep)

	completeness := s.judged(ctx, "tier4/completeness", completenessPoints, &judge.Request{
		Criterion: "Is the README complete enough for a new user to understand, set up, and run the project?",
		Actual:    readme,
	}, rep)

	formatting := s.judged(ctx, "tier4/formatting", formattingPoints, &judge.Request{
		Criterion: "Is the README professionally formatted, with sensible headings, code blocks, and structure?",
		Actual:    readme,
	}, rep)

	return clarity + completeness + formatting
}

// judged runs one judge call under the per-call deadline, scales the
// continuous grade by the sub-criterion maximum, and degrades to zero
// with a diagnostic on any failure.
func (s *Scorer) judged(ctx context.Context, label string, max float64, req *judge.Request, rep *Report) float64 {
	jctx := ctx
	if s.judgeTimeout > 0 {
		var cancel context.CancelFunc
		jctx, cancel = context.WithTimeout(ctx, s.judgeTimeout)
		defer cancel()
	}
	j, err := s.judge.Judge(jctx, req)
	if err != nil {
		rep.Diagnostics = append(rep.Diagnostics, fmt.Sprintf("%s: %v", label, err))
		return 0
	}
	return clamp01(j.Score) * max
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
