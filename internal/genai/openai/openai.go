// Package openai implements the genai capabilities over the OpenAI REST API.
package openai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider calls the chat completions endpoint for generation and the
// moderations endpoint for classification.
type Provider struct {
	client          *resty.Client
	genModel        string
	moderationModel string
}

// New constructs a provider. Base URL and API key come from OPENAI_BASE_URL
// and OPENAI_API_KEY.
func New(genModel, moderationModel string) *Provider {
	base := os.Getenv("OPENAI_BASE_URL")
	if base == "" {
		base = "https://api.openai.com"
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	client := resty.New().
		SetBaseURL(base).
		SetAuthToken(os.Getenv("OPENAI_API_KEY")).
		SetTimeout(30 * time.Second)
	return &Provider{client: client, genModel: genModel, moderationModel: moderationModel}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the chat model for a warm notification text. Callers are
// expected to fall back to their own text when this fails or comes back empty.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	// Allow tests to simulate provider failure
	if os.Getenv("GENAI_FAIL") == "1" {
		return "", fmt.Errorf("genai simulated failure")
	}

	var out chatResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: p.genModel,
			Messages: []chatMessage{
				{Role: "system", Content: "You are a positive, helpful and empathetic assistant."},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("openai chat completions status %d", resp.StatusCode())
	}
	if out.Error != nil {
		return "", fmt.Errorf("openai chat completions error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged bool `json:"flagged"`
	} `json:"results"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Classify runs the moderation model over the text.
func (p *Provider) Classify(ctx context.Context, text string) (bool, error) {
	if os.Getenv("GENAI_FAIL") == "1" {
		return false, fmt.Errorf("genai simulated failure")
	}

	var out moderationResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(moderationRequest{Model: p.moderationModel, Input: text}).
		SetResult(&out).
		Post("/v1/moderations")
	if err != nil {
		return false, err
	}
	if resp.IsError() {
		return false, fmt.Errorf("openai moderations status %d", resp.StatusCode())
	}
	if out.Error != nil {
		return false, fmt.Errorf("openai moderations error: %s", out.Error.Message)
	}
	if len(out.Results) == 0 {
		return false, fmt.Errorf("openai moderations: empty results")
	}
	return out.Results[0].Flagged, nil
}
