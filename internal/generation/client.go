// Package generation produces blueprint documents, section refinements and
// chat replies through OpenAI chat completions, grounded on retrieved
// corpus context.
package generation

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
)

// DefaultModel is the chat model used for all generation calls.
const DefaultModel = openai.ChatModelGPT4o

// Completer is the single-call chat completion contract. Satisfied by
// *Client; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

// Client wraps the OpenAI client for chat completion calls.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a chat completion client. It reads the OPENAI_API_KEY
// from the environment and returns an error if not set.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	// openai-go automatically reads OPENAI_API_KEY from environment
	client := openai.NewClient()

	return &Client{client: &client, model: DefaultModel}, nil
}

// Complete runs one system+user chat completion and returns the raw
// assistant message content.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:       c.model,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
