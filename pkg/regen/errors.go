package regen

// Kind classifies a failed regeneration.
type Kind int

const (
	// KindValidation means the inbound request was missing data.
	KindValidation Kind = iota + 1
	// KindConfiguration means the completion service has no credential.
	KindConfiguration
	// KindAuthentication means the completion service rejected the credential.
	KindAuthentication
	// KindRateLimit means the completion service throttled the request.
	KindRateLimit
	// KindUpstream is any other completion service failure.
	KindUpstream
	// KindResponseShape means the model output was not valid JSON.
	KindResponseShape
	// KindInternal is an unexpected failure.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindRateLimit:
		return "rate_limit"
	case KindUpstream:
		return "upstream"
	case KindResponseShape:
		return "response_shape"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a terminal regeneration failure. Message is safe to show callers.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}
