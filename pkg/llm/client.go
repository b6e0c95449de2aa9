package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// ClaudeAPIEndpoint is the Anthropic API endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeAPIVersion is the API version.
	ClaudeAPIVersion = "2023-06-01"
	// ClaudeMaxTokens caps the length of a regenerated section.
	ClaudeMaxTokens = 4096
)

// Client represents a Claude API client.
type Client struct {
	apiKey     string
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new Claude API client.
func NewClient(apiKey string, timeout time.Duration) (client *Client) {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	client = &Client{
		apiKey:   apiKey,
		endpoint: ClaudeAPIEndpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	return client
}

// Name returns the provider name.
func (c *Client) Name() (name string) {
	name = "Anthropic"
	return name
}

// Complete sends the conversation to Claude. System messages are lifted into
// the top-level system field as the messages API requires.
func (c *Client) Complete(ctx context.Context, req Request) (responseText string, err error) {
	claudeReq := ClaudeRequest{
		Model:       req.Model,
		MaxTokens:   ClaudeMaxTokens,
		Temperature: req.Temperature,
	}

	var system []string
	for _, msg := range req.Messages {
		if msg.Role == RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		claudeReq.Messages = append(claudeReq.Messages, msg)
	}
	claudeReq.System = strings.Join(system, "\n\n")

	var reqBody []byte
	reqBody, err = json.Marshal(claudeReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	// Create HTTP request
	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", ClaudeAPIVersion)

	// Send request
	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = &APIError{Message: errors.Wrap(err, "HTTP request failed").Error()}
		return responseText, err
	}
	defer resp.Body.Close()

	// Read response body
	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = &APIError{StatusCode: resp.StatusCode, Message: errors.Wrap(err, "failed to read response body").Error()}
		return responseText, err
	}

	// Check status code
	if resp.StatusCode != http.StatusOK {
		err = classifyStatus(resp.StatusCode, claudeErrorMessage(respBody))
		return responseText, err
	}

	// Parse Claude response
	var claudeResp ClaudeResponse
	err = json.Unmarshal(respBody, &claudeResp)
	if err != nil {
		err = &APIError{StatusCode: resp.StatusCode, Message: errors.Wrapf(err, "failed to parse Claude response: %s", string(respBody)).Error()}
		return responseText, err
	}

	// Extract text content
	if len(claudeResp.Content) == 0 {
		err = &APIError{StatusCode: resp.StatusCode, Message: "no content in Claude response"}
		return responseText, err
	}

	responseText = claudeResp.Content[0].Text

	return responseText, err
}

// claudeErrorMessage extracts the message from an error body, falling back to the raw body.
func claudeErrorMessage(body []byte) (message string) {
	var claudeErr ClaudeError
	if json.Unmarshal(body, &claudeErr) == nil && claudeErr.Error.Message != "" {
		message = claudeErr.Error.Message
		return message
	}
	message = strings.TrimSpace(string(body))
	return message
}
