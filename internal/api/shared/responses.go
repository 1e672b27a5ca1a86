package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// EmptyData is the data payload used when an endpoint has nothing to return,
// serialized as {} rather than null.
var EmptyData = map[string]interface{}{}

// RespondWithJSON writes a JSON response with the given status code and payload.
// For 204 No Content the body is suppressed: net/http forbids a body on 204
// responses, so the envelope is dropped there instead of producing a write error.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// Respond writes the standard {message, data} envelope with the given status
// code. A nil data payload is written as {}.
func Respond(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	if data == nil {
		data = EmptyData
	}
	RespondWithJSON(w, r, status, Envelope{Message: message, Data: data})
}

// RespondWithError writes the envelope for a failed operation, exposing the
// underlying error text in the data field, and logs the error with the
// request's trace ID for correlation.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	traceID := GetTraceID(r.Context())

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("error", err.Error()),
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	Respond(w, r, status, message, err.Error())
}
