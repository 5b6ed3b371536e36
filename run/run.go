/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package run orchestrates a benchmark run: for each requested test
// case it executes the participant loop, scores the outcome, and
// aggregates everything into a run-level report.
//
// Per-case failures never abort a run. Every requested case appears in
// the report, zero-scored with a reason when its loop or driver
// failed. Only fixture-store problems abort before the first case.
package run

import (
	"context"
	"fmt"
	"time"

	"chainguard.dev/aeobench/fixture"
	"chainguard.dev/aeobench/participant"
	"chainguard.dev/aeobench/scorer"
	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is how many cases run in parallel by default.
const DefaultConcurrency = 2

// CaseResult is one test case's line in the run report.
type CaseResult struct {
	ID      string              `json:"id"`
	Total   float64             `json:"total"`
	Tiers   *scorer.Report      `json:"tier_breakdown"`
	Steps   int                 `json:"steps_taken"`
	Outcome participant.Outcome `json:"outcome,omitempty"`
	Error   string              `json:"error,omitempty"`
	Elapsed float64             `json:"elapsed_seconds"`
}

// Report is the aggregated output of one run.
type Report struct {
	OverallTotal float64      `json:"overall_total"`
	Average      float64      `json:"average"`
	Elapsed      float64      `json:"elapsed_seconds"`
	TestCases    []CaseResult `json:"test_cases"`
}

// Runner executes benchmark runs. The driver and scorer it holds must
// be safe for concurrent use when Concurrency exceeds one.
type Runner struct {
	store  *fixture.Store
	driver participant.Driver
	scorer *scorer.Scorer

	concurrency int
	caseTimeout time.Duration
	maxSteps    int
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets how many cases run in parallel.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithCaseTimeout bounds each case's loop plus scoring wall clock.
// Zero means no per-case deadline.
func WithCaseTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.caseTimeout = d
	}
}

// WithMaxSteps overrides the participant step budget.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.maxSteps = n
	}
}

// New returns a runner over the given fixture store, participant
// driver, and scorer.
func New(store *fixture.Store, driver participant.Driver, s *scorer.Scorer, opts ...Option) *Runner {
	r := &Runner{
		store:       store,
		driver:      driver,
		scorer:      s,
		concurrency: DefaultConcurrency,
		maxSteps:    participant.DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates the given cases, or every discovered case when ids is
// empty. The returned report covers every requested case; it errors
// only when the fixture set itself is unusable.
func (r *Runner) Run(ctx context.Context, ids []string) (*Report, error) {
	cases, err := r.store.LoadAll(ids)
	if err != nil {
		return nil, fmt.Errorf("loading test cases: %w", err)
	}

	start := time.Now()
	results := make([]CaseResult, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, tc := range cases {
		g.Go(func() error {
			results[i] = r.runCase(gctx, tc)
			return nil
		})
	}
	// Workers record failures in their results instead of returning
	// them, so Wait only observes context plumbing.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{
		Elapsed:   time.Since(start).Seconds(),
		TestCases: results,
	}
	for _, cr := range results {
		rep.OverallTotal += cr.Total
	}
	rep.Average = rep.OverallTotal / float64(len(results))
	return rep, nil
}

// runCase executes one case end to end. All failures become a
// zero-scored result with a reason; nothing propagates.
func (r *Runner) runCase(ctx context.Context, tc *fixture.TestCase) CaseResult {
	log := clog.FromContext(ctx).With("case", tc.ID)
	if r.caseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.caseTimeout)
		defer cancel()
	}

	start := time.Now()
	cr := CaseResult{ID: tc.ID}

	loop := participant.NewLoop(r.driver, participant.WithMaxSteps(r.maxSteps))
	res, err := loop.Run(ctx, tc)
	if err != nil {
		cr.Error = err.Error()
		cr.Tiers = &scorer.Report{Diagnostics: []string{cr.Error}}
		cr.Elapsed = time.Since(start).Seconds()
		log.With("error", cr.Error).Error("Case failed before scoring")
		return cr
	}

	rep := r.scorer.ScoreResult(ctx, res, tc)
	cr.Tiers = rep
	cr.Total = rep.Total
	cr.Steps = res.Steps
	cr.Outcome = res.Outcome
	if res.Outcome != participant.OutcomeResponded {
		cr.Error = res.Reason
	}
	cr.Elapsed = time.Since(start).Seconds()
	log.With("total", cr.Total).
		With("steps", cr.Steps).
		With("outcome", string(cr.Outcome)).
		Info("Scored case")
	return cr
}
