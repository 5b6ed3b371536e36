/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package participant

import (
	"context"
	"errors"

	"chainguard.dev/aeobench/explore"
)

// ScriptDriver replays a fixed sequence of raw replies, one per turn.
// It is the scripted implementation of the action protocol, for
// harness self-tests and deterministic runs. A ScriptDriver carries
// per-run state; use one instance per loop.
type ScriptDriver struct {
	// Replies are the raw texts to emit in order.
	Replies []string

	// Doc, when set, is offered as the fallback document if the loop
	// terminates without a respond action.
	Doc *Doc

	next int
}

// Next implements Driver.
func (d *ScriptDriver) Next(_ context.Context, _ Task, _ []explore.Observation) (string, error) {
	if d.next >= len(d.Replies) {
		return "", errors.New("script exhausted")
	}
	r := d.Replies[d.next]
	d.next++
	return r, nil
}

// Fallback implements Fallbacker.
func (d *ScriptDriver) Fallback(Task, []explore.Observation) *Doc {
	return d.Doc
}
