package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/nikogura/resume-regen/pkg/logging"
	"github.com/nikogura/resume-regen/pkg/reconcile"
	"github.com/nikogura/resume-regen/pkg/regen"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds the size of a regeneration request body.
const MaxBodyBytes = 1 << 20

// Static token accounting reported by /api/limits. Usage is not tracked.
const (
	TokenLimit      = 1000000
	TokenUsage      = 0
	RemainingTokens = TokenLimit - TokenUsage
)

// Limits is the body of GET /api/limits.
type Limits struct {
	TokenLimit      int `json:"token_limit"`
	TokenUsage      int `json:"token_usage"`
	RemainingTokens int `json:"remaining_tokens"`
}

// Server exposes the regeneration service over HTTP.
type Server struct {
	svc     *regen.Service
	origins map[string]struct{}
	logger  *zap.Logger
}

// New creates a Server allowing CORS requests from allowedOrigins.
func New(svc *regen.Service, allowedOrigins []string, logger *zap.Logger) (server *Server, err error) {
	if svc == nil {
		err = errors.New("regeneration service required")
		return server, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = struct{}{}
	}

	server = &Server{
		svc:     svc,
		origins: origins,
		logger:  logger,
	}
	return server, err
}

// Routes returns the HTTP handler with all middleware applied.
func (s *Server) Routes() (handler http.Handler) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/regenerate", s.handleRegenerate)
	mux.HandleFunc("GET /api/limits", s.handleLimits)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("/api/regenerate", methodNotAllowed(http.MethodPost))
	mux.HandleFunc("/api/limits", methodNotAllowed(http.MethodGet))
	mux.HandleFunc("/healthz", methodNotAllowed(http.MethodGet))
	mux.HandleFunc("/", handleNotFound)

	handler = s.withRequestLog(s.withRecovery(s.withCORS(mux)))
	return handler
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		logging.FromContext(r.Context(), s.logger).Warn("failed to read request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, reconcile.Failure("Failed to read request body"))
		return
	}

	var req regen.Request
	req, err = regen.DecodeRequest(body)
	if err != nil {
		s.writeFailure(w, r, reconcile.Failure(publicMessage(err)), err)
		return
	}

	var result reconcile.Result
	result, err = s.svc.Regenerate(r.Context(), req)
	if err != nil {
		s.writeFailure(w, r, result, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleLimits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Limits{
		TokenLimit:      TokenLimit,
		TokenUsage:      TokenUsage,
		RemainingTokens: RemainingTokens,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// methodNotAllowed answers a known path requested with the wrong method.
func methodNotAllowed(allowed string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allowed+", "+http.MethodOptions)
		writeJSON(w, http.StatusMethodNotAllowed, reconcile.Failure("Method not allowed"))
	}
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, reconcile.Failure("Not found"))
}

// writeFailure writes an error envelope with the status for err's kind.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, result reconcile.Result, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context(), s.logger).Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, result)
}

// StatusCode maps a regeneration error onto an HTTP status.
func StatusCode(err error) (status int) {
	var regenErr *regen.Error
	if !errors.As(err, &regenErr) {
		status = http.StatusInternalServerError
		return status
	}

	switch regenErr.Kind {
	case regen.KindValidation, regen.KindResponseShape:
		status = http.StatusBadRequest
	case regen.KindAuthentication:
		status = http.StatusUnauthorized
	case regen.KindRateLimit:
		status = http.StatusTooManyRequests
	default:
		status = http.StatusInternalServerError
	}
	return status
}

// publicMessage returns the caller-facing message for err.
func publicMessage(err error) (message string) {
	var regenErr *regen.Error
	if errors.As(err, &regenErr) {
		message = regenErr.Message
		return message
	}
	message = "Request processing error"
	return message
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
