package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
)

const maxRetries = 3

type openAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewOpenAIClient(opts Options) Client {
	cfg := openai.DefaultConfig(opts.OpenAIAPIKey)
	if opts.OpenAIBaseURL != "" {
		cfg.BaseURL = opts.OpenAIBaseURL
	}

	return &openAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
}

func (c *openAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	var resp openai.CompletionResponse
	operation := func() error {
		var err error
		resp, err = c.client.CreateCompletion(ctx, openai.CompletionRequest{
			Model:       c.model,
			Prompt:      prompt,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
		})
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("create openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Text), nil
}
