/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package explore

// Observation is one recorded tool interaction: the action taken, the
// path it targeted, and the payload (listing, content, or error text)
// returned to the participant.
type Observation struct {
	Action  string
	Path    string
	Payload string
	IsError bool
}

// State is the exploration state for a single participant run: what
// has been observed so far and how many steps have been spent. It is
// owned by exactly one run and needs no synchronization.
type State struct {
	steps        int
	observations []Observation
}

// NewState returns an empty exploration state.
func NewState() *State {
	return &State{}
}

// Advance consumes one step and returns the new step count.
func (s *State) Advance() int {
	s.steps++
	return s.steps
}

// Steps returns the number of steps consumed so far.
func (s *State) Steps() int {
	return s.steps
}

// Record appends an observation to the accumulated context.
func (s *State) Record(obs Observation) {
	s.observations = append(s.observations, obs)
}

// Observations returns the accumulated context in order.
func (s *State) Observations() []Observation {
	return s.observations
}
