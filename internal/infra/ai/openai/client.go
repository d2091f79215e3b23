package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/analysis"
	"github.com/bryanwahyu/guest-pulse/internal/infra/ai/prompt"
)

const maxTokens = 512

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Classify issues one JSON-mode chat completion and parses the structured
// result. Out-of-schema values are coerced, not rejected.
func (c *Client) Classify(ctx context.Context, text string) (domain.Result, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(text)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return domain.Result{}, fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
		}
		return domain.Result{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Result{}, fmt.Errorf("empty completion response")
	}

	var parsed prompt.ReviewAnalysis
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return domain.Result{}, fmt.Errorf("unmarshal analysis response: %w", err)
	}

	return domain.Normalize(parsed.Sentiment, parsed.Topics, parsed.Urgency, parsed.Reasoning), nil
}
