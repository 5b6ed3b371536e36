/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scorer

import (
	"context"

	"chainguard.dev/aeobench/fixture"
	"chainguard.dev/aeobench/participant"
)

// calibrationCase is the synthetic ground truth the calibration docs
// are scored against. It never touches the filesystem.
var calibrationCase = &fixture.TestCase{
	ID: "calibration",
	Meta: fixture.Meta{
		Name:        "word_counter",
		Description: "Counts words, lines, and characters in text files",
		Language:    "Python",
	},
	Facts: fixture.Facts{
		MainPurpose: "Counts words, lines, and characters in text files",
		RunCommand:  "python wordcount.py [files...]",
	},
}

// CalibrationDoc pairs a fixed synthetic document with the total-score
// range a well-calibrated rubric must place it in.
type CalibrationDoc struct {
	Name     string
	Doc      *participant.Doc
	Min, Max float64
}

// CalibrationResult is the verdict for one calibration document.
type CalibrationResult struct {
	Name     string
	Report   *Report
	Min, Max float64
	Pass     bool
}

const perfectReadme = `# word_counter

word_counter counts words, lines, and characters in text files. Point it at
one or more files and it prints a per-file breakdown followed by a combined
total, in the style of the classic wc utility.

## Installation

No installation step is needed: the tool has no third-party dependencies;
the standard library alone is sufficient. Any recent Python interpreter can
run it directly from a checkout of this repository.

## Usage

Run the tool with one or more text files as arguments:

` + "```" + `
python wordcount.py [files...]
` + "```" + `

Each named file is read as text and tallied separately. Passing several
files appends a TOTAL row covering the whole set.

## Example

Counting two files produces output like:

` + "```" + `
$ python wordcount.py notes.txt draft.txt
notes.txt: 120 words, 14 lines, 770 characters
draft.txt: 340 words, 41 lines, 2102 characters
TOTAL: 460 words, 55 lines, 2872 characters
` + "```" + `

## Features

- Counts words, lines, and characters per file
- Aggregates a combined total across all inputs
- Reports missing files with a clear error instead of crashing
`

const partialReadme = `# word_counter

word_counter is a small helper that counts words in files you pass to it.
It was written for quick checks on prose drafts.

## Install

Install a recent Python interpreter, then fetch this repository. The tool
requires the PyYAML package for its configuration handling.

## Running

Run the helper against one or more files:

    python counter.py notes.md

It prints a word tally for every file it was given.
`

const minimalReadme = `Run wordcount.`

// CalibrationDocs returns the fixed rubric-calibration set: a document
// that should score near the top, one with known gaps in every tier,
// and one that barely qualifies as documentation.
func CalibrationDocs() []CalibrationDoc {
	return []CalibrationDoc{{
		Name: "perfect_documentation",
		Min:  75, Max: 100,
		Doc: &participant.Doc{
			Readme: perfectReadme,
			Metadata: map[string]any{
				"@context":            "https://schema.org",
				"@type":               "SoftwareSourceCode",
				"name":                "word_counter",
				"description":         "Counts words, lines, and characters in text files",
				"programmingLanguage": "Python",
			},
		},
	}, {
		Name: "partial_documentation",
		Min:  35, Max: 65,
		Doc: &participant.Doc{
			Readme: partialReadme,
			Metadata: map[string]any{
				"@context":    "https://schema.org",
				"@type":       "SoftwareSourceCode",
				"name":        "word_counter",
				"description": "A word tally helper",
			},
		},
	}, {
		Name: "minimal_documentation",
		Min:  15, Max: 35,
		Doc: &participant.Doc{
			Readme:   minimalReadme,
			Metadata: map[string]any{"name": "wordcount"},
		},
	}}
}

// ValidateCalibration scores the fixed documents and checks each total
// lands in its expected range. It is a self-test of the rubric, not of
// any participant.
func (s *Scorer) ValidateCalibration(ctx context.Context) []CalibrationResult {
	docs := CalibrationDocs()
	results := make([]CalibrationResult, 0, len(docs))
	for _, cd := range docs {
		rep := s.Score(ctx, cd.Doc, calibrationCase)
		results = append(results, CalibrationResult{
			Name:   cd.Name,
			Report: rep,
			Min:    cd.Min,
			Max:    cd.Max,
			Pass:   rep.Total >= cd.Min && rep.Total <= cd.Max,
		})
	}
	return results
}
