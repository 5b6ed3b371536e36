/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge scores documentation text against a single criterion,
// returning a continuous grade between 0.0 and 1.0 with reasoning.
//
// Remote implementations (Anthropic, OpenAI, Gemini) are stateless and
// safe for concurrent use; they run at low temperature for
// reproducibility and honor the caller's context deadline. The Func
// adapter and the Heuristic judge let the scorer be exercised without
// network access.
package judge

import (
	"context"
	"fmt"

	"chainguard.dev/aeobench/result"
)

// Request asks for one criterion to be judged.
type Request struct {
	// Criterion describes what to evaluate, including any scoring
	// guidance (e.g. what counts as a correct empty-dependency
	// answer).
	Criterion string `json:"criterion"`

	// Reference is the ground-truth answer to compare against.
	// Empty means standalone judging: grade the response on the
	// criterion alone.
	Reference string `json:"reference,omitempty"`

	// Actual is the text under evaluation.
	Actual string `json:"actual"`
}

// Judgement is the graded outcome for one criterion.
type Judgement struct {
	// Score is the continuous grade from 0.0 (failing) to 1.0
	// (perfect).
	Score float64 `json:"score"`

	// Reasoning explains the grade.
	Reasoning string `json:"reasoning"`
}

// Interface is the contract for judge implementations.
type Interface interface {
	// Judge grades the request's Actual text against its Criterion.
	Judge(ctx context.Context, req *Request) (*Judgement, error)
}

// Func adapts a plain function to Interface. It is the seam that lets
// scoring be tested with deterministic stubs.
type Func func(ctx context.Context, req *Request) (*Judgement, error)

// Judge implements Interface.
func (f Func) Judge(ctx context.Context, req *Request) (*Judgement, error) {
	return f(ctx, req)
}

// validate rejects requests no implementation can grade.
func (r *Request) validate() error {
	if r.Criterion == "" {
		return fmt.Errorf("criterion is required")
	}
	if r.Actual == "" {
		return fmt.Errorf("actual text is required")
	}
	return nil
}

// parseJudgement extracts and validates a judgement from model text.
func parseJudgement(text string) (*Judgement, error) {
	j, err := result.Extract[Judgement](text)
	if err != nil {
		return nil, fmt.Errorf("malformed judge response: %w", err)
	}
	if j.Score < 0 || j.Score > 1 {
		return nil, fmt.Errorf("judge score %.2f is out of range [0, 1]", j.Score)
	}
	return &j, nil
}
