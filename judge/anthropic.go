/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/aeobench/retry"
	"github.com/anthropics/anthropic-sdk-go"
)

const (
	defaultAnthropicModel = "claude-sonnet-4-5"

	// judgeTemperature keeps judged sub-scores reproducible across
	// runs of the same input.
	judgeTemperature = 0.3

	judgeMaxTokens = 1024
)

// anthropicJudge implements Interface using the Anthropic API.
type anthropicJudge struct {
	client anthropic.Client
	model  string
	retry  retry.Config
}

// NewAnthropic returns a judge backed by Claude. An empty model
// selects the default.
func NewAnthropic(client anthropic.Client, model string) Interface {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &anthropicJudge{client: client, model: model, retry: retry.Default()}
}

// Judge implements Interface.
func (a *anthropicJudge) Judge(ctx context.Context, req *Request) (*Judgement, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p, err := buildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("building judge prompt: %w", err)
	}

	msg, err := retry.Do(ctx, a.retry, "anthropic_judge", isRetryableAnthropicError, func() (*anthropic.Message, error) {
		return a.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(a.model),
			MaxTokens:   judgeMaxTokens,
			Temperature: anthropic.Float(judgeTemperature),
			System:      []anthropic.TextBlockParam{{Text: systemInstructions}},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(p)),
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic judge call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
		}
	}
	if text == "" {
		return nil, errors.New("anthropic judge returned no text content")
	}
	return parseJudgement(text)
}

// isRetryableAnthropicError reports rate-limit and transient server
// errors worth retrying.
func isRetryableAnthropicError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
