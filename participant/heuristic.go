/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package participant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"chainguard.dev/aeobench/explore"
	"chainguard.dev/aeobench/fixture"
)

// HeuristicDriver is a deterministic, model-free participant: it lists
// the root, reads the declared source files, and assembles a README
// from the project metadata and what it read. It exists for offline
// smoke runs and as a floor for model-backed drivers to beat.
type HeuristicDriver struct {
	// MaxReads caps how many declared files are read before
	// responding.
	MaxReads int
}

// NewHeuristicDriver returns a heuristic driver reading up to three
// files per run.
func NewHeuristicDriver() *HeuristicDriver {
	return &HeuristicDriver{MaxReads: 3}
}

// Next implements Driver.
func (d *HeuristicDriver) Next(_ context.Context, task Task, observations []explore.Observation) (string, error) {
	if len(observations) == 0 {
		return encodeAction(Action{Action: ActionListDirectory, Path: ""})
	}
	if next := d.nextUnread(task.Meta, observations); next != "" {
		return encodeAction(Action{Action: ActionReadFile, Path: next})
	}
	doc := d.compose(task.Meta, observations)
	return encodeAction(Action{Action: ActionRespond, Readme: doc.Readme, Metadata: doc.Metadata})
}

// Fallback implements Fallbacker with a metadata-only document, for
// runs cut off before compose.
func (d *HeuristicDriver) Fallback(task Task, observations []explore.Observation) *Doc {
	return d.compose(task.Meta, observations)
}

// nextUnread returns the first declared file not yet read, up to the
// read cap.
func (d *HeuristicDriver) nextUnread(meta fixture.Meta, observations []explore.Observation) string {
	read := make(map[string]bool)
	reads := 0
	for _, obs := range observations {
		if obs.Action == ActionReadFile {
			read[obs.Path] = true
			reads++
		}
	}
	if reads >= d.MaxReads {
		return ""
	}
	for _, f := range meta.Files {
		if !read[f] {
			return f
		}
	}
	return ""
}

func (d *HeuristicDriver) compose(meta fixture.Meta, observations []explore.Observation) *Doc {
	main := mainFileGuess(meta)
	runCmd := runCommandGuess(meta.Language, main)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n%s\n\n", meta.Name, meta.Description)
	fmt.Fprintf(&sb, "## Installation\n\nNo installation is required beyond a working %s environment. Clone or download the repository to get started.\n\n", meta.Language)
	fmt.Fprintf(&sb, "## Usage\n\nRun the tool from the repository root with the command:\n\n```\n%s\n```\n\n", runCmd)
	sb.WriteString("## Example\n\n")
	if excerpt := firstExcerpt(observations); excerpt != "" {
		fmt.Fprintf(&sb, "The entry point %s begins:\n\n```\n%s\n```\n", main, excerpt)
	} else {
		fmt.Fprintf(&sb, "```\n%s\n```\n", runCmd)
	}

	return &Doc{
		Readme: sb.String(),
		Metadata: map[string]any{
			"@context":            "https://schema.org",
			"@type":               "SoftwareSourceCode",
			"name":                meta.Name,
			"description":         meta.Description,
			"programmingLanguage": meta.Language,
		},
	}
}

// firstExcerpt returns the head of the first successful file read.
func firstExcerpt(observations []explore.Observation) string {
	for _, obs := range observations {
		if obs.Action != ActionReadFile || obs.IsError {
			continue
		}
		var env struct {
			Result string `json:"result"`
		}
		if err := json.Unmarshal([]byte(obs.Payload), &env); err != nil || env.Result == "" {
			continue
		}
		lines := strings.Split(env.Result, "\n")
		if len(lines) > 12 {
			lines = lines[:12]
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func mainFileGuess(meta fixture.Meta) string {
	ext := map[string]string{"python": ".py", "go": ".go", "javascript": ".js", "ruby": ".rb"}[strings.ToLower(meta.Language)]
	for _, f := range meta.Files {
		if ext != "" && strings.HasSuffix(f, ext) {
			return f
		}
	}
	if len(meta.Files) > 0 {
		return meta.Files[0]
	}
	return "main"
}

func runCommandGuess(language, main string) string {
	switch strings.ToLower(language) {
	case "python":
		return "python " + main
	case "go":
		return "go run " + main
	case "javascript":
		return "node " + main
	case "ruby":
		return "ruby " + main
	default:
		return "./" + main
	}
}

func encodeAction(a Action) (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encoding action: %w", err)
	}
	return string(b), nil
}
