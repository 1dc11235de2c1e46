// Package gemini implements chat.Generator on the Generative Language API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	glang "google.golang.org/api/generativelanguage/v1beta"
	goption "google.golang.org/api/option"

	"viagens/internal/chat"
)

const DefaultModel = "gemini-2.5-flash"

var _ chat.Generator = (*Client)(nil)

type Client struct {
	svc   *glang.Service
	model string
}

// New creates a client for model. Extra options are appended after the API
// key, so tests can point the client at another endpoint.
func New(ctx context.Context, apiKey, model string, opts ...goption.ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" && len(opts) == 0 {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if model == "" {
		model = DefaultModel
	}
	all := append([]goption.ClientOption{goption.WithAPIKey(apiKey)}, opts...)
	svc, err := glang.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("create generative language service: %w", err)
	}
	return &Client{svc: svc, model: model}, nil
}

func (c *Client) Model() string {
	return c.model
}

// Generate sends a single user turn with the system instruction and joins
// the text parts of the first candidate.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	req := &glang.GenerateContentRequest{
		Contents: []*glang.Content{{
			Role:  "user",
			Parts: []*glang.Part{{Text: prompt}},
		}},
	}
	if system != "" {
		req.SystemInstruction = &glang.Content{Parts: []*glang.Part{{Text: system}}}
	}

	resp, err := c.svc.Models.GenerateContent(modelName(c.model), req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return replyText(resp)
}

func modelName(model string) string {
	if strings.HasPrefix(model, "models/") {
		return model
	}
	return "models/" + model
}

func replyText(resp *glang.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", chat.ErrNoReply
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", chat.ErrNoReply
	}
	return text, nil
}
