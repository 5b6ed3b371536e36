/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package participant

import (
	"fmt"
	"strconv"
	"strings"

	"chainguard.dev/aeobench/fixture"
	"chainguard.dev/aeobench/prompt"
)

var taskTmpl = prompt.MustNew(`<task>
You are documenting an unfamiliar software repository. Explore it with the
tools below, then submit a README and schema.org metadata for the project.
</task>

{{project}}

<tools>
Reply with exactly one JSON object per turn and no other text. Recognized
actions:
  {"action": "list_directory", "path": "<relative path, empty for the root>"}
  {"action": "read_file", "path": "<relative path>"}
  {"action": "respond", "readme": "<full README markdown>", "metadata": {<schema.org object>}}
Tool results arrive as {"result": <listing | file content | error>}. You have
{{steps}} tool calls before you must respond.
</tools>

<requirements>
The README must cover installation, usage with the exact command to run the
project, and at least one example. The metadata object must include
"@context", "@type", "name", "description", and "programmingLanguage".
</requirements>`)

// BuildTask renders the assignment for one test case. Only the public
// project metadata is included; ground truth never appears here.
func BuildTask(tc *fixture.TestCase, maxSteps int) (Task, error) {
	block := fmt.Sprintf("name: %s\ndescription: %s\nlanguage: %s\ndomain: %s\nfiles: %s",
		tc.Meta.Name, tc.Meta.Description, tc.Meta.Language, tc.Meta.Domain,
		strings.Join(tc.Meta.Files, ", "))
	t, err := taskTmpl.BindSection("project", block)
	if err != nil {
		return Task{}, err
	}
	if t, err = t.BindRaw("steps", strconv.Itoa(maxSteps)); err != nil {
		return Task{}, err
	}
	p, err := t.Build()
	if err != nil {
		return Task{}, err
	}
	return Task{Prompt: p, Meta: tc.Meta}, nil
}
