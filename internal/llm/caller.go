// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package llm implements LLM-assisted match review: the rule engine's decision
// is re-examined by a language model using the full article context, with the
// rule-based result retained as fallback when the model is unavailable.
package llm

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "You are an expert analyst for individual person adverse media screening in regulated financial services. Follow the response format exactly."

// DefaultModel is used when the configuration does not name one.
const DefaultModel = string(anthropic.ModelClaudeSonnet4_20250514)

// Caller generates a completion for a screening prompt.
type Caller interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Messager is the slice of the Anthropic client the caller needs; it exists so
// tests can substitute a fake.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicCaller calls the Anthropic Messages API with deterministic
// settings (temperature zero) so repeated screenings of the same article
// stay reproducible.
type AnthropicCaller struct {
	messages Messager
	model    anthropic.Model
}

// NewAnthropicCallerFromEnv builds a caller from the ANTHROPIC_API_KEY
// environment variable.
func NewAnthropicCallerFromEnv(model string) (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewAnthropicCaller(&c.Messages, model), nil
}

// NewAnthropicCaller builds a caller around an existing Messages client.
func NewAnthropicCaller(messages Messager, model string) *AnthropicCaller {
	if model == "" {
		model = DefaultModel
	}
	return &AnthropicCaller{messages: messages, model: anthropic.Model(model)}
}

// Generate sends the prompt, retrying transient transport failures.
func (a *AnthropicCaller) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
			Model:       a.model,
			MaxTokens:   1024,
			System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
			Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
			Temperature: anthropic.Float(0),
		})
		if err != nil {
			lastErr = err
			if retryableTransportError(err) && attempt < 3 {
				time.Sleep(backoffDelay(attempt))
				continue
			}
			return "", err
		}
		var sb strings.Builder
		for _, b := range resp.Content {
			if b.Type == "text" {
				sb.WriteString(b.Text)
			}
		}
		return sb.String(), nil
	}
	return "", lastErr
}

func retryableTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "server error") || strings.Contains(msg, "status code: 5")
}

func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 1 * time.Second
	}
	return 2 * time.Second
}
