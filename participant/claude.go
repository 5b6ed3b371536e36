/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package participant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chainguard.dev/aeobench/explore"
	"chainguard.dev/aeobench/retry"
	"github.com/anthropics/anthropic-sdk-go"
)

const (
	defaultClaudeModel = "claude-sonnet-4-5"

	claudeSystem = "You are a careful technical writer producing documentation for software repositories. Follow the action protocol exactly: one JSON object per reply, nothing else."

	claudeTemperature = 0.7
	claudeMaxTokens   = 4096
)

// ClaudeDriver produces participant actions with Claude. It is
// stateless and safe to share across concurrent runs; the loop owns
// the transcript.
type ClaudeDriver struct {
	client anthropic.Client
	model  string
	retry  retry.Config
}

// NewClaudeDriver returns a Claude-backed driver. An empty model
// selects the default.
func NewClaudeDriver(client anthropic.Client, model string) *ClaudeDriver {
	if model == "" {
		model = defaultClaudeModel
	}
	return &ClaudeDriver{client: client, model: model, retry: retry.Default()}
}

// Next implements Driver by replaying the run as an alternating
// transcript: the task, then each prior action and its tool result.
func (d *ClaudeDriver) Next(ctx context.Context, task Task, observations []explore.Observation) (string, error) {
	msgs := make([]anthropic.MessageParam, 0, 1+2*len(observations))
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(task.Prompt)))
	for _, obs := range observations {
		call, err := json.Marshal(Action{Action: obs.Action, Path: obs.Path})
		if err != nil {
			return "", fmt.Errorf("encoding transcript action: %w", err)
		}
		msgs = append(msgs,
			anthropic.NewAssistantMessage(anthropic.NewTextBlock(string(call))),
			anthropic.NewUserMessage(anthropic.NewTextBlock(obs.Payload)))
	}

	msg, err := retry.Do(ctx, d.retry, "claude_participant", isRetryableClaudeError, func() (*anthropic.Message, error) {
		return d.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(d.model),
			MaxTokens:   claudeMaxTokens,
			Temperature: anthropic.Float(claudeTemperature),
			System:      []anthropic.TextBlockParam{{Text: claudeSystem}},
			Messages:    msgs,
		})
	})
	if err != nil {
		return "", fmt.Errorf("claude participant call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
		}
	}
	if text == "" {
		return "", errors.New("claude participant returned no text content")
	}
	return text, nil
}

func isRetryableClaudeError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
