/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package participant

import (
	"fmt"

	"chainguard.dev/aeobench/result"
)

// Recognized action names in the participant protocol.
const (
	ActionListDirectory = "list_directory"
	ActionReadFile      = "read_file"
	ActionRespond       = "respond"
)

// Action is one parsed participant turn. Path is set for tool actions;
// Readme and Metadata are set for respond.
type Action struct {
	Action   string         `json:"action"`
	Path     string         `json:"path,omitempty"`
	Readme   string         `json:"readme,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ParseAction extracts an action from raw driver text, tolerating
// markdown fences and surrounding prose. Unparseable text and unknown
// action names are protocol errors.
func ParseAction(text string) (*Action, error) {
	a, err := result.Extract[Action](text)
	if err != nil {
		return nil, fmt.Errorf("unparseable action: %w", err)
	}
	switch a.Action {
	case ActionListDirectory, ActionReadFile, ActionRespond:
		return &a, nil
	default:
		return nil, fmt.Errorf("unrecognized action %q", a.Action)
	}
}
