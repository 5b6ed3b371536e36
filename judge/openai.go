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
	"github.com/openai/openai-go"
)

const defaultOpenAIModel = openai.ChatModelGPT4oMini

// openaiJudge implements Interface using the OpenAI chat completions
// API.
type openaiJudge struct {
	client openai.Client
	model  string
	retry  retry.Config
}

// NewOpenAI returns a judge backed by an OpenAI model. An empty model
// selects gpt-4o-mini.
func NewOpenAI(client openai.Client, model string) Interface {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openaiJudge{client: client, model: model, retry: retry.Default()}
}

// Judge implements Interface.
func (o *openaiJudge) Judge(ctx context.Context, req *Request) (*Judgement, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p, err := buildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("building judge prompt: %w", err)
	}

	resp, err := retry.Do(ctx, o.retry, "openai_judge", isRetryableOpenAIError, func() (*openai.ChatCompletion, error) {
		return o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       o.model,
			Temperature: openai.Float(judgeTemperature),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemInstructions),
				openai.UserMessage(p),
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("openai judge call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai judge returned no choices")
	}
	return parseJudgement(resp.Choices[0].Message.Content)
}

// isRetryableOpenAIError reports rate-limit and transient server
// errors worth retrying.
func isRetryableOpenAIError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 503, 504:
			return true
		}
	}
	return false
}
