/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package result parses structured output from model responses, which
// often arrives wrapped in markdown code fences or surrounded by prose.
package result

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON returns the JSON payload of a model response. A response
// that already is a whole JSON object is returned trimmed, even when a
// string value inside it carries a code fence. Otherwise it prefers the
// first ```json fence, then a generic ``` fence, and finally falls back
// to the first balanced {...} region (models sometimes lead with a
// sentence before the object).
func ExtractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return trimmed
	}

	if body, ok := fencedBlock(text, "```json"); ok {
		return body
	}
	if body, ok := fencedBlock(text, "```"); ok {
		return body
	}

	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	// Prose-wrapped object: take the outermost braces.
	start := strings.IndexByte(trimmed, '{')
	end := strings.LastIndexByte(trimmed, '}')
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}

// fencedBlock returns the content of the first code fence opened by
// marker, trimmed. Unterminated fences run to end of input.
func fencedBlock(text, marker string) (string, bool) {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return "", false
	}
	rest := text[idx+len(marker):]
	// A bare ``` opener may carry a language tag; drop the opener line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && marker == "```" {
		first := strings.TrimSpace(rest[:nl])
		if first != "" && !strings.HasPrefix(first, "{") {
			rest = rest[nl+1:]
		}
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}

// Extract parses the JSON payload of a model response into T.
func Extract[T any](text string) (T, error) {
	var out T
	payload := ExtractJSON(text)
	if payload == "" {
		return out, fmt.Errorf("no JSON payload in response")
	}
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return out, fmt.Errorf("parsing response JSON: %w", err)
	}
	return out, nil
}
