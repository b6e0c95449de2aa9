package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestNewClient(t *testing.T) {
	apiKey := "test-api-key"
	client := NewClient(apiKey, 0)

	if client == nil {
		t.Fatal("Expected non-nil client")
	}

	if client.apiKey != apiKey {
		t.Errorf("Expected API key '%s', got '%s'", apiKey, client.apiKey)
	}

	if client.endpoint != ClaudeAPIEndpoint {
		t.Errorf("Expected endpoint '%s', got '%s'", ClaudeAPIEndpoint, client.endpoint)
	}

	if client.httpClient == nil {
		t.Fatal("Expected non-nil HTTP client")
	}

	if client.httpClient.Timeout != 120*time.Second {
		t.Errorf("Expected default timeout of 120s, got %s", client.httpClient.Timeout)
	}

	if client.Name() != "Anthropic" {
		t.Errorf("Expected name Anthropic, got %s", client.Name())
	}
}

func TestClientComplete(t *testing.T) {
	var got ClaudeRequest

	// Create test server.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request.
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Error("Missing or incorrect API key header")
		}

		if r.Header.Get("Anthropic-Version") != ClaudeAPIVersion {
			t.Error("Missing or incorrect API version header")
		}

		err := json.NewDecoder(r.Body).Decode(&got)
		if err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		claudeResp := ClaudeResponse{
			ID:   "test-id",
			Type: "message",
			Role: "assistant",
			Content: []Content{
				{
					Type: "text",
					Text: `{"bio":"x"}`,
				},
			},
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(claudeResp)
	}))
	defer server.Close()

	// Create client pointing to test server.
	client := NewClient("test-key", time.Second)
	client.endpoint = server.URL

	text, err := client.Complete(context.Background(), Request{
		Model:       "claude-test",
		Temperature: Temperature,
		Messages: []Message{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "rewrite this"},
		},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if text != `{"bio":"x"}` {
		t.Errorf("Expected response text, got %q", text)
	}

	if got.System != "be brief" {
		t.Errorf("Expected system prompt to be lifted, got %q", got.System)
	}

	if len(got.Messages) != 1 || got.Messages[0].Role != RoleUser {
		t.Errorf("Expected a single user message, got %+v", got.Messages)
	}

	if got.Model != "claude-test" {
		t.Errorf("Expected model claude-test, got %s", got.Model)
	}

	if got.Temperature != Temperature {
		t.Errorf("Expected temperature %v, got %v", Temperature, got.Temperature)
	}

	if got.MaxTokens != ClaudeMaxTokens {
		t.Errorf("Expected max tokens %d, got %d", ClaudeMaxTokens, got.MaxTokens)
	}
}

func TestClientErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		check      func(err error) bool
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			check:      func(err error) bool { return errors.Is(err, ErrAuthentication) },
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			check:      func(err error) bool { return errors.Is(err, ErrRateLimit) },
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			check: func(err error) bool {
				var apiErr *APIError
				return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusInternalServerError && apiErr.Message == "overloaded"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
			}))
			defer server.Close()

			client := NewClient("test-key", time.Second)
			client.endpoint = server.URL

			_, err := client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			if !tt.check(err) {
				t.Errorf("Unexpected error classification: %v", err)
			}
		})
	}
}

func TestClientEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ClaudeResponse{})
	}))
	defer server.Close()

	client := NewClient("test-key", time.Second)
	client.endpoint = server.URL

	_, err := client.Complete(context.Background(), Request{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
}

func TestClientConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient("test-key", time.Second)
	client.endpoint = url

	_, err := client.Complete(context.Background(), Request{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError for transport failure, got %v", err)
	}

	if apiErr.StatusCode != 0 {
		t.Errorf("Expected no status code, got %d", apiErr.StatusCode)
	}
}
