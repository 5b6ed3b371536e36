/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package participant

import (
	"context"
	"encoding/json"
	"fmt"

	"chainguard.dev/aeobench/explore"
	"chainguard.dev/aeobench/fixture"
	"github.com/chainguard-dev/clog"
)

// Outcome is the terminal state of a participant run.
type Outcome string

const (
	// OutcomeResponded means the participant submitted a document.
	OutcomeResponded Outcome = "responded"

	// OutcomeStepLimitExceeded means the step budget ran out before a
	// respond action.
	OutcomeStepLimitExceeded Outcome = "step_limit_exceeded"

	// OutcomeMalformedOutput means the driver emitted text that does
	// not parse into a recognized action.
	OutcomeMalformedOutput Outcome = "malformed_output"
)

// DefaultMaxSteps is the tool-call budget per run.
const DefaultMaxSteps = 15

// Result is what a finished run hands to the scorer. Doc is nil unless
// the run responded or the driver supplied a fallback document.
type Result struct {
	Outcome Outcome
	Doc     *Doc
	Steps   int
	Reason  string
}

// Loop drives one participant over one test case's exploration
// surface, enforcing the action protocol and the step budget.
type Loop struct {
	driver   Driver
	maxSteps int
}

// Option configures a Loop.
type Option func(*Loop)

// WithMaxSteps overrides the tool-call budget.
func WithMaxSteps(n int) Option {
	return func(l *Loop) {
		l.maxSteps = n
	}
}

// NewLoop returns a loop around the given driver.
func NewLoop(driver Driver, opts ...Option) *Loop {
	l := &Loop{driver: driver, maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes the participant loop for one test case. Protocol and
// step-limit failures terminate the run with a Result; only driver and
// context errors are returned as errors, for the orchestrator to
// convert into a zero-scored case.
func (l *Loop) Run(ctx context.Context, tc *fixture.TestCase) (*Result, error) {
	log := clog.FromContext(ctx).With("case", tc.ID)
	task, err := BuildTask(tc, l.maxSteps)
	if err != nil {
		return nil, fmt.Errorf("building task for %s: %w", tc.ID, err)
	}
	surface := explore.NewSurface(tc)
	state := explore.NewState()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := l.driver.Next(ctx, task, state.Observations())
		if err != nil {
			return nil, fmt.Errorf("participant driver: %w", err)
		}
		action, err := ParseAction(raw)
		if err != nil {
			log.With("error", err.Error()).Warn("Malformed participant output")
			return &Result{
				Outcome: OutcomeMalformedOutput,
				Doc:     l.fallback(task, state),
				Steps:   state.Steps(),
				Reason:  err.Error(),
			}, nil
		}

		if action.Action == ActionRespond {
			log.With("steps", state.Steps()).Info("Participant responded")
			return &Result{
				Outcome: OutcomeResponded,
				Doc:     &Doc{Readme: action.Readme, Metadata: action.Metadata},
				Steps:   state.Steps(),
			}, nil
		}

		state.Record(l.callTool(surface, action))
		if state.Advance() >= l.maxSteps {
			log.With("limit", l.maxSteps).Warn("Step limit reached without respond")
			return &Result{
				Outcome: OutcomeStepLimitExceeded,
				Doc:     l.fallback(task, state),
				Steps:   state.Steps(),
				Reason:  fmt.Sprintf("step limit %d reached without respond", l.maxSteps),
			}, nil
		}
	}
}

// callTool executes one tool action against the surface. Tool errors
// become error observations for the participant, never run failures.
func (l *Loop) callTool(surface *explore.Surface, action *Action) explore.Observation {
	obs := explore.Observation{Action: action.Action, Path: action.Path}
	var payload any
	var err error
	switch action.Action {
	case ActionListDirectory:
		payload, err = surface.ListDirectory(action.Path)
	case ActionReadFile:
		payload, err = surface.ReadFile(action.Path)
	}
	if err != nil {
		obs.IsError = true
		payload = err.Error()
	}
	obs.Payload = toolResult(payload)
	return obs
}

func (l *Loop) fallback(task Task, state *explore.State) *Doc {
	f, ok := l.driver.(Fallbacker)
	if !ok {
		return nil
	}
	return f.Fallback(task, state.Observations())
}

// toolResult wraps a tool outcome in the result envelope the
// participant expects.
func toolResult(v any) string {
	b, err := json.Marshal(map[string]any{"result": v})
	if err != nil {
		return `{"result": "internal encoding error"}`
	}
	return string(b)
}
