/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"chainguard.dev/aeobench/prompt"
)

const systemInstructions = "You are a strict documentation quality evaluator. Respond with valid JSON only."

// referenceTmpl grades a response against a ground-truth answer.
var referenceTmpl = prompt.MustNew(`<task>
You are evaluating generated documentation against a reference answer.
Score only the criterion provided; ignore every other quality of the text.
</task>

{{reference}}

{{response}}

{{criterion}}

<instructions>
Compare the response to the reference for the given criterion and score it
from 0.0 to 1.0:
- 1.0: semantically equivalent to the reference, or better while staying correct.
- 0.75-0.99: correct with minor gaps or phrasing differences.
- 0.50-0.74: partially correct with notable gaps.
- 0.25-0.49: significant problems, some correct elements.
- 0.0-0.24: wrong, contradictory, or missing entirely.
Exact wording never matters; semantic agreement does.
</instructions>

<output_format>
{"score": <0.0-1.0>, "reasoning": "<one or two sentences>"}
</output_format>

Respond with only the JSON object, no additional text.`)

// standaloneTmpl grades a response on a criterion with no reference.
var standaloneTmpl = prompt.MustNew(`<task>
You are evaluating generated documentation.
Score only the criterion provided; ignore every other quality of the text.
</task>

{{response}}

{{criterion}}

<instructions>
Score how well the response meets the criterion, from 0.0 to 1.0:
- 1.0: fully meets the criterion with no meaningful gaps.
- 0.75-0.99: meets it well with minor issues.
- 0.50-0.74: adequate, with notable gaps.
- 0.25-0.49: poor, major gaps.
- 0.0-0.24: fails the criterion.
</instructions>

<output_format>
{"score": <0.0-1.0>, "reasoning": "<one or two sentences>"}
</output_format>

Respond with only the JSON object, no additional text.`)

// buildPrompt renders the judging prompt for a request.
func buildPrompt(req *Request) (string, error) {
	var (
		tmpl *prompt.Template
		err  error
	)
	if req.Reference != "" {
		tmpl = referenceTmpl
		if tmpl, err = tmpl.BindSection("reference", req.Reference); err != nil {
			return "", err
		}
	} else {
		tmpl = standaloneTmpl
	}
	if tmpl, err = tmpl.BindSection("response", req.Actual); err != nil {
		return "", err
	}
	if tmpl, err = tmpl.BindSection("criterion", req.Criterion); err != nil {
		return "", err
	}
	return tmpl.Build()
}
