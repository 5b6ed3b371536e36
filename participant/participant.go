/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package participant runs the bounded tool-call loop that turns a
// test-case repository into a submitted README and metadata document.
//
// The loop is agnostic to how actions are produced: a Driver may be
// model-backed, heuristic, or scripted, as long as it emits one
// recognized action per turn. All run state lives in the loop; drivers
// can be shared across concurrent runs.
package participant

import (
	"context"

	"chainguard.dev/aeobench/explore"
	"chainguard.dev/aeobench/fixture"
)

// Doc is the participant's submitted documentation: the README text
// and a schema.org-shaped metadata object.
type Doc struct {
	Readme   string         `json:"readme"`
	Metadata map[string]any `json:"metadata"`
}

// Task is the assignment handed to a driver at the start of a run:
// rendered instructions for model-backed drivers, plus the structured
// project metadata for drivers that reason directly.
type Task struct {
	Prompt string
	Meta   fixture.Meta
}

// Driver produces the participant's next action as raw text, given the
// task and everything observed so far. The loop parses and validates
// the text; drivers never see ground truth.
type Driver interface {
	Next(ctx context.Context, task Task, observations []explore.Observation) (string, error)
}

// Fallbacker is optionally implemented by drivers that can produce a
// best-effort document when the loop terminates without a respond
// action. The fallback is graded on structure only, so even a minimal
// document beats none.
type Fallbacker interface {
	Fallback(task Task, observations []explore.Observation) *Doc
}
