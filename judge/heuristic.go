/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Heuristic returns a deterministic, offline judge. Reference-backed
// requests are graded by term overlap with the reference; standalone
// requests by document structure. It exists for rubric calibration and
// environments without model access; it is intentionally coarse.
func Heuristic() Interface {
	return Func(heuristicJudge)
}

func heuristicJudge(_ context.Context, req *Request) (*Judgement, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.Reference != "" {
		score, matched, total := overlapScore(req.Reference, req.Actual)
		return &Judgement{
			Score:     score,
			Reasoning: fmt.Sprintf("matched %d of %d reference terms", matched, total),
		}, nil
	}
	score := structureScore(req.Actual)
	return &Judgement{
		Score:     score,
		Reasoning: fmt.Sprintf("structural heuristic over %d chars", len(req.Actual)),
	}, nil
}

// overlapScore grades by the fraction of the reference's significant
// terms that appear in the actual text.
func overlapScore(reference, actual string) (score float64, matched, total int) {
	terms := significantTerms(reference)
	if len(terms) == 0 {
		return 0, 0, 0
	}
	haystack := strings.ToLower(actual)
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms)), matched, len(terms)
}

// structureScore grades standalone quality criteria from gross
// document shape: enough text, headings, code fences, lists.
func structureScore(actual string) float64 {
	var s float64
	if len(actual) >= 200 {
		s += 0.25
	}
	if len(actual) >= 800 {
		s += 0.25
	}
	if strings.Contains(actual, "# ") {
		s += 0.2
	}
	if strings.Contains(actual, "```") {
		s += 0.2
	}
	if strings.HasPrefix(actual, "- ") || strings.Contains(actual, "\n- ") {
		s += 0.1
	}
	return min(s, 1)
}

// significantTerms returns the deduplicated lowercase terms of at
// least three characters, in first-seen order.
func significantTerms(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(fields))
	var terms []string
	for _, f := range fields {
		if len(f) < 3 || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}
