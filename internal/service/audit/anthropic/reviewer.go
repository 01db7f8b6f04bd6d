// Package anthropic implements audit.Reviewer on the Anthropic messages API.
package anthropic

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

const compliancePrompt = `You are a Senior Compliance Auditor at a financial services firm.
Review the following transcript for:
- Guaranteed returns (e.g. "I promise 20%% gain")
- Aggressive sentiment
- Unauthorized financial advice

Provide a JSON response with:
- "severity": (Low/Medium/High)
- "issues_found": list of specific flags
- "summary": 2-sentence overview

Transcript:
%s`

// Reviewer calls a hosted Claude model with a fixed compliance prompt.
type Reviewer struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// New creates a Reviewer for the given API key and model name.
func New(apiKey, model string) *Reviewer {
	return &Reviewer{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     anthropic.Model(model),
		maxTokens: 1000,
	}
}

// Review sends the transcript to the model and returns the verdict text.
func (r *Reviewer) Review(ctx context.Context, transcript string) (string, error) {
	start := time.Now()

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: r.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf(compliancePrompt, transcript))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("compliance review: %w", err)
	}

	verdict := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			verdict += block.Text
		}
	}

	log.Info().
		Str("model", string(resp.Model)).
		Int64("inputTokens", resp.Usage.InputTokens).
		Int64("outputTokens", resp.Usage.OutputTokens).
		Dur("duration", time.Since(start)).
		Msg("Compliance review completed")
	return verdict, nil
}
