/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/aeobench/retry"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// geminiJudge implements Interface using Google Gemini with structured
// JSON output.
type geminiJudge struct {
	client *genai.Client
	model  string
	retry  retry.Config
}

// NewGemini returns a judge backed by a Gemini model. An empty model
// selects the default.
func NewGemini(client *genai.Client, model string) Interface {
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiJudge{client: client, model: model, retry: retry.Default()}
}

// Judge implements Interface.
func (g *geminiJudge) Judge(ctx context.Context, req *Request) (*Judgement, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p, err := buildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("building judge prompt: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](judgeTemperature),
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"score":     {Type: "number", Description: "Grade from 0.0 to 1.0"},
				"reasoning": {Type: "string", Description: "Explanation of the grade"},
			},
			Required: []string{"score", "reasoning"},
		},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstructions}},
		},
	}

	resp, err := retry.Do(ctx, g.retry, "gemini_judge", isRetryableGeminiError, func() (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(ctx, g.model, genai.Text(p), config)
	})
	if err != nil {
		return nil, fmt.Errorf("gemini judge call: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, errors.New("gemini judge returned no text content")
	}
	return parseJudgement(text)
}

// isRetryableGeminiError reports quota and transient server errors
// worth retrying. The genai SDK does not expose a stable typed error,
// so this matches on message text like the quota errors themselves.
func isRetryableGeminiError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "Internal error")
}
