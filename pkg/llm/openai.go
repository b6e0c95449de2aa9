package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Completer using the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates an OpenAI client. baseURL may be empty to use the public API.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration) (client *OpenAIClient) {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	client = &OpenAIClient{
		client: openai.NewClientWithConfig(config),
	}
	return client
}

// Name returns the provider name.
func (o *OpenAIClient) Name() (name string) {
	name = "OpenAI"
	return name
}

// Complete sends one chat completion request and returns the first choice.
func (o *OpenAIClient) Complete(ctx context.Context, req Request) (text string, err error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	var resp openai.ChatCompletionResponse
	resp, err = o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
	})
	if err != nil {
		err = classifyOpenAIError(err)
		return text, err
	}

	if len(resp.Choices) == 0 {
		err = &APIError{StatusCode: http.StatusOK, Message: "no choices in OpenAI response"}
		return text, err
	}

	text = resp.Choices[0].Message.Content
	return text, err
}

// classifyOpenAIError maps SDK errors onto the error taxonomy.
func classifyOpenAIError(err error) (classified error) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		classified = classifyStatus(apiErr.HTTPStatusCode, apiErr.Message)
		return classified
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		classified = classifyStatus(reqErr.HTTPStatusCode, reqErr.Error())
		return classified
	}

	classified = &APIError{Message: err.Error()}
	return classified
}
