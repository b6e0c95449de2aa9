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

// chatRequest mirrors the fields of the chat completions body the tests inspect.
type chatRequest struct {
	Model       string    `json:"model"`
	Temperature float32   `json:"temperature"`
	Messages    []Message `json:"messages"`
}

func newOpenAITestServer(t *testing.T, handler http.HandlerFunc) (client *OpenAIClient) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client = NewOpenAIClient("test-key", server.URL+"/v1", time.Second)
	return client
}

func TestOpenAIComplete(t *testing.T) {
	var got chatRequest

	client := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Missing or incorrect authorization header")
		}

		err := json.NewDecoder(r.Body).Decode(&got)
		if err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "[{\"title\":\"x\"}]"}, "finish_reason": "stop"}]
		}`))
	})

	text, err := client.Complete(context.Background(), Request{
		Model:       "gpt-3.5-turbo",
		Temperature: Temperature,
		Messages: []Message{
			{Role: RoleSystem, Content: "system text"},
			{Role: RoleUser, Content: "user text"},
		},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if text != `[{"title":"x"}]` {
		t.Errorf("Unexpected text %q", text)
	}

	if got.Model != "gpt-3.5-turbo" {
		t.Errorf("Expected model gpt-3.5-turbo, got %s", got.Model)
	}

	if got.Temperature != Temperature {
		t.Errorf("Expected temperature %v, got %v", Temperature, got.Temperature)
	}

	if len(got.Messages) != 2 || got.Messages[0].Role != RoleSystem || got.Messages[1].Content != "user text" {
		t.Errorf("Unexpected messages %+v", got.Messages)
	}

	if client.Name() != "OpenAI" {
		t.Errorf("Expected name OpenAI, got %s", client.Name())
	}
}

func TestOpenAIErrorClassification(t *testing.T) {
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
			name:       "bad request",
			statusCode: http.StatusBadRequest,
			check: func(err error) bool {
				var apiErr *APIError
				return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error","code":"x"}}`))
			})

			_, err := client.Complete(context.Background(), Request{Model: "gpt-3.5-turbo"})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			if !tt.check(err) {
				t.Errorf("Unexpected error classification: %v", err)
			}
		})
	}
}

func TestOpenAINoChoices(t *testing.T) {
	client := newOpenAITestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`))
	})

	_, err := client.Complete(context.Background(), Request{Model: "gpt-3.5-turbo"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
}
