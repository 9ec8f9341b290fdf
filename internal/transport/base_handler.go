package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lukmanhakim/user-portal/internal"
	"github.com/lukmanhakim/user-portal/pkg/logger"
)

// HTTPResponse is the uniform error body: every authentication and
// authorization failure in the API renders this shape, never a stack trace.
type HTTPResponse struct {
	Timestamp      time.Time `json:"timestamp"`
	HTTPStatusCode int       `json:"httpStatusCode"`
	HTTPStatus     string    `json:"httpStatus"`
	Reason         string    `json:"reason"`
	Message        string    `json:"message"`
}

func NewHTTPResponse(status int, message string) HTTPResponse {
	return HTTPResponse{
		Timestamp:      time.Now(),
		HTTPStatusCode: status,
		HTTPStatus:     http.StatusText(status),
		Reason:         strings.ToUpper(http.StatusText(status)),
		Message:        message,
	}
}

// BaseHandler provides common functionality for HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an HTTPResponse-shaped error body.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	WriteErrorResponse(w, h.Logger, status, message)
}

// WriteAppError maps a domain error onto the wire. Unknown error types are
// flattened to 500 without leaking internals.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		WriteErrorResponse(w, h.Logger, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error("unhandled error reached the transport layer", "error", err)
	WriteErrorResponse(w, h.Logger, http.StatusInternalServerError, "An error occurred while processing the request")
}

// WriteErrorResponse is the package-level variant for middleware that has no
// BaseHandler at hand.
func WriteErrorResponse(w http.ResponseWriter, lg *slog.Logger, status int, message string) {
	if lg == nil {
		lg = logger.L()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(NewHTTPResponse(status, message)); err != nil {
		lg.Error("failed to encode error response", "error", err)
	}
}
