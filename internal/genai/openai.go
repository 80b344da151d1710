package genai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// chatCompleter is the slice of the go-openai client this provider needs;
// tests substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient generates text through the OpenAI chat-completions API. It is
// the alternative provider for deployments that hold an OpenAI credential
// instead of a Gemini one.
type OpenAIClient struct {
	client chatCompleter
	model  string
}

// NewOpenAIClient constructs a provider using the given API key and model
// (e.g. openai.GPT4o).
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

// GenerateText sends prompt as a single user message and returns the first
// choice. API errors carry their HTTP status into *RequestError so callers
// classify them the same way as Gemini failures.
func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &RequestError{StatusCode: apiErr.HTTPStatusCode, Err: err}
		}
		return "", &RequestError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ParseError{Reason: "completion contains no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}
