package regen

import (
	"context"

	"github.com/nikogura/resume-regen/pkg/llm"
	"github.com/nikogura/resume-regen/pkg/logging"
	"github.com/nikogura/resume-regen/pkg/prompt"
	"github.com/nikogura/resume-regen/pkg/reconcile"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Service turns regeneration requests into a single completion call.
type Service struct {
	completer llm.Completer
	provider  string
	model     string
	logger    *zap.Logger
}

// NewService creates a Service. A nil completer means the completion service
// has no credential; every request then fails with KindConfiguration.
// provider is the display name used in caller-facing messages.
func NewService(completer llm.Completer, provider, model string, logger *zap.Logger) (svc *Service) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if completer != nil {
		provider = completer.Name()
	}
	svc = &Service{
		completer: completer,
		provider:  provider,
		model:     model,
		logger:    logger,
	}
	return svc
}

// Configured reports whether a completion client is available.
func (s *Service) Configured() (ok bool) {
	ok = s.completer != nil
	return ok
}

// Messages returns the system and user messages sent for a request.
func Messages(req Request) (messages []llm.Message) {
	p := prompt.Build(prompt.ParseSection(req.Section), Options(req))

	messages = []llm.Message{
		{Role: llm.RoleSystem, Content: p.System},
		{Role: llm.RoleUser, Content: prompt.UserMessage(req.Content, p.Format)},
	}
	return messages
}

// Options derives prompt options from a request.
func Options(req Request) (opts prompt.Options) {
	opts = prompt.Options{
		UseFantasy:         req.UseFantasy,
		IsFullRegeneration: req.IsFullRegeneration,
		RegenerateTarget:   RegenerateTarget(req.Content),
	}
	return opts
}

// Regenerate validates the request, calls the completion service once and
// reconciles its output. The returned Result is always a well-formed
// envelope; err is non-nil exactly when Result.Success is false and is
// always an *Error.
func (s *Service) Regenerate(ctx context.Context, req Request) (result reconcile.Result, err error) {
	logger := logging.FromContext(ctx, s.logger)

	if req.Section == "" {
		result, err = fail(logger, &Error{Kind: KindValidation, Message: "Section not specified"})
		return result, err
	}

	opts := Options(req)
	section := prompt.ParseSection(req.Section)

	logger.Info("regenerating section",
		zap.String("section", req.Section),
		zap.Bool("is_full_regeneration", req.IsFullRegeneration),
		zap.Bool("use_fantasy", req.UseFantasy),
		zap.String("regenerate_target", opts.RegenerateTarget),
	)

	if section == prompt.SectionGeneric {
		logger.Info("unrecognized section, using generic template", zap.String("section", req.Section))
	}

	if opts.RegenerateTarget != "" && !prompt.IsKnownTarget(opts.RegenerateTarget) {
		logger.Info("ignoring unrecognized regenerate target", zap.String("regenerate_target", opts.RegenerateTarget))
	}

	if s.completer == nil {
		result, err = fail(logger, &Error{Kind: KindConfiguration, Message: s.provider + " API key not configured"})
		return result, err
	}

	messages := Messages(req)
	logger.Debug("completion request",
		zap.String("model", s.model),
		zap.String("system", messages[0].Content),
		zap.String("user", messages[1].Content),
	)

	var text string
	text, err = s.completer.Complete(ctx, llm.Request{
		Model:       s.model,
		Temperature: llm.Temperature,
		Messages:    messages,
	})
	if err != nil {
		result, err = fail(logger, s.classify(err))
		return result, err
	}

	logger.Debug("completion response", zap.String("content", text))

	result = reconcile.Reconcile(s.provider, text)
	if !result.Success {
		logger.Error("failed to parse completion as JSON",
			zap.String("error", result.Error),
			zap.String("raw_content", result.Raw()),
		)
		err = &Error{Kind: KindResponseShape, Message: result.Error}
		return result, err
	}

	if !reconcile.ShapeMatches(req.Content, result.Content) {
		logger.Warn("regenerated content shape differs from original", zap.String("section", req.Section))
	}

	return result, err
}

// classify maps completion errors onto regeneration error kinds.
func (s *Service) classify(err error) (regenErr *Error) {
	var apiErr *llm.APIError

	switch {
	case errors.Is(err, llm.ErrAuthentication):
		regenErr = &Error{Kind: KindAuthentication, Message: "Invalid " + s.provider + " API key", Cause: err}
	case errors.Is(err, llm.ErrRateLimit):
		regenErr = &Error{Kind: KindRateLimit, Message: s.provider + " rate limit exceeded", Cause: err}
	case errors.As(err, &apiErr):
		regenErr = &Error{Kind: KindUpstream, Message: s.provider + " API error: " + apiErr.Error(), Cause: err}
	default:
		regenErr = &Error{Kind: KindInternal, Message: "Request processing error", Cause: err}
	}

	return regenErr
}

// fail logs a terminal error and wraps it in a failure envelope.
func fail(logger *zap.Logger, regenErr *Error) (result reconcile.Result, err error) {
	logger.Error("regeneration failed",
		zap.Stringer("kind", regenErr.Kind),
		zap.Error(regenErr),
	)

	result = reconcile.Failure(regenErr.Message)
	err = regenErr
	return result, err
}
