/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package participant

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chainguard.dev/aeobench/explore"
	"chainguard.dev/aeobench/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driverFunc adapts a function to Driver for test inspection.
type driverFunc func(ctx context.Context, task Task, observations []explore.Observation) (string, error)

func (f driverFunc) Next(ctx context.Context, task Task, observations []explore.Observation) (string, error) {
	return f(ctx, task, observations)
}

func newTestCase(t *testing.T) *fixture.TestCase {
	t.Helper()
	root := t.TempDir()
	src := "import sys\n\ndef main():\n    print('counted')\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "wordcount.py"), []byte(src), 0o644))
	return &fixture.TestCase{
		ID:   "word_counter",
		Root: root,
		Meta: fixture.Meta{
			Name:        "word_counter",
			Description: "Counts words in text files",
			Language:    "Python",
			Domain:      "cli",
			Files:       []string{"wordcount.py"},
		},
	}
}

func TestLoopResponds(t *testing.T) {
	driver := &ScriptDriver{Replies: []string{
		`{"action": "list_directory", "path": ""}`,
		`{"action": "read_file", "path": "wordcount.py"}`,
		`{"action": "respond", "readme": "# word_counter", "metadata": {"@context": "https://schema.org"}}`,
	}}

	res, err := NewLoop(driver).Run(context.Background(), newTestCase(t))
	require.NoError(t, err)
	assert.Equal(t, OutcomeResponded, res.Outcome)
	assert.Equal(t, 2, res.Steps)
	require.NotNil(t, res.Doc)
	assert.Equal(t, "# word_counter", res.Doc.Readme)
	assert.Equal(t, "https://schema.org", res.Doc.Metadata["@context"])
}

func TestLoopRespondsWithFencedReadme(t *testing.T) {
	doc := Doc{
		Readme:   "# word_counter\n\n## Example\n\n```\npython wordcount.py notes.txt\n```\n",
		Metadata: map[string]any{"@context": "https://schema.org"},
	}
	reply, err := json.Marshal(Action{Action: ActionRespond, Readme: doc.Readme, Metadata: doc.Metadata})
	require.NoError(t, err)

	res, err := NewLoop(&ScriptDriver{Replies: []string{string(reply)}}).Run(context.Background(), newTestCase(t))
	require.NoError(t, err)
	assert.Equal(t, OutcomeResponded, res.Outcome)
	require.NotNil(t, res.Doc)
	assert.Equal(t, doc.Readme, res.Doc.Readme)
}

func TestLoopStepLimit(t *testing.T) {
	replies := make([]string, 16)
	for i := range replies {
		replies[i] = `{"action": "read_file", "path": "wordcount.py"}`
	}
	fallback := &Doc{Readme: "partial notes"}
	driver := &ScriptDriver{Replies: replies, Doc: fallback}

	res, err := NewLoop(driver).Run(context.Background(), newTestCase(t))
	require.NoError(t, err)
	assert.Equal(t, OutcomeStepLimitExceeded, res.Outcome)
	assert.Equal(t, DefaultMaxSteps, res.Steps)
	assert.Equal(t, fallback, res.Doc)
	assert.Contains(t, res.Reason, "step limit")
}

func TestLoopStepLimitOverride(t *testing.T) {
	driver := &ScriptDriver{Replies: []string{
		`{"action": "list_directory", "path": ""}`,
		`{"action": "read_file", "path": "wordcount.py"}`,
	}}

	res, err := NewLoop(driver, WithMaxSteps(2)).Run(context.Background(), newTestCase(t))
	require.NoError(t, err)
	assert.Equal(t, OutcomeStepLimitExceeded, res.Outcome)
	assert.Equal(t, 2, res.Steps)
	assert.Nil(t, res.Doc)
}

func TestLoopMalformedOutput(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		reason string
	}{{
		name:   "prose",
		reply:  "I will start by exploring the repository.",
		reason: "unparseable action",
	}, {
		name:   "unknown action",
		reply:  `{"action": "write_file", "path": "README.md"}`,
		reason: "unrecognized action",
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			driver := &ScriptDriver{Replies: []string{tc.reply}}
			res, err := NewLoop(driver).Run(context.Background(), newTestCase(t))
			require.NoError(t, err)
			assert.Equal(t, OutcomeMalformedOutput, res.Outcome)
			assert.Equal(t, 0, res.Steps)
			assert.Contains(t, res.Reason, tc.reason)
		})
	}
}

func TestLoopToolErrorsAreObservations(t *testing.T) {
	var secondTurn []explore.Observation
	turn := 0
	driver := driverFunc(func(_ context.Context, _ Task, observations []explore.Observation) (string, error) {
		turn++
		if turn == 1 {
			return `{"action": "read_file", "path": "no_such_file.py"}`, nil
		}
		secondTurn = observations
		return `{"action": "respond", "readme": "# done", "metadata": {}}`, nil
	})

	res, err := NewLoop(driver).Run(context.Background(), newTestCase(t))
	require.NoError(t, err)
	assert.Equal(t, OutcomeResponded, res.Outcome)

	require.Len(t, secondTurn, 1)
	assert.True(t, secondTurn[0].IsError)
	assert.Contains(t, secondTurn[0].Payload, `"result"`)
	assert.Contains(t, secondTurn[0].Payload, "not found")
}

func TestLoopGroundTruthInvisible(t *testing.T) {
	tc := newTestCase(t)
	require.NoError(t, os.MkdirAll(filepath.Join(tc.Root, fixture.GroundTruthDir), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(tc.Root, fixture.GroundTruthDir, "facts.json"), []byte(`{"leak": true}`), 0o644))

	var payloads []string
	turn := 0
	driver := driverFunc(func(_ context.Context, _ Task, observations []explore.Observation) (string, error) {
		turn++
		if len(observations) > 0 {
			payloads = append(payloads, observations[len(observations)-1].Payload)
		}
		switch turn {
		case 1:
			return `{"action": "list_directory", "path": ""}`, nil
		case 2:
			return `{"action": "read_file", "path": "ground_truth/facts.json"}`, nil
		default:
			return `{"action": "respond", "readme": "# done", "metadata": {}}`, nil
		}
	})

	res, err := NewLoop(driver).Run(context.Background(), tc)
	require.NoError(t, err)
	assert.Equal(t, OutcomeResponded, res.Outcome)
	require.Len(t, payloads, 2)
	for _, p := range payloads {
		assert.NotContains(t, p, "leak")
	}
	assert.NotContains(t, payloads[0], fixture.GroundTruthDir)
	assert.Contains(t, payloads[1], "not found")
}

func TestLoopDriverError(t *testing.T) {
	driver := driverFunc(func(context.Context, Task, []explore.Observation) (string, error) {
		return "", errors.New("model unavailable")
	})

	_, err := NewLoop(driver).Run(context.Background(), newTestCase(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestLoopContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := &ScriptDriver{Replies: []string{`{"action": "list_directory", "path": ""}`}}
	_, err := NewLoop(driver).Run(ctx, newTestCase(t))
	require.ErrorIs(t, err, context.Canceled)
}
