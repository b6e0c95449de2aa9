package llm

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	// ErrAuthentication is returned when the provider rejects the credential.
	ErrAuthentication = errors.New("authentication failed")
	// ErrRateLimit is returned when the provider throttles the request.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrNotConfigured is returned when no credential is available.
	ErrNotConfigured = errors.New("api key not configured")
)

// APIError is any other failure reported by, or on the way to, the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// classifyStatus maps a provider HTTP status onto the error taxonomy.
func classifyStatus(status int, message string) (err error) {
	switch status {
	case http.StatusUnauthorized:
		err = errors.Wrap(ErrAuthentication, message)
	case http.StatusTooManyRequests:
		err = errors.Wrap(ErrRateLimit, message)
	default:
		err = &APIError{StatusCode: status, Message: message}
	}
	return err
}
