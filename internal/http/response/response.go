// Package response provides JSON response helpers for the plain chi
// routes that handle CSV uploads and downloads outside the typed API
// surface. The envelope shape matches the typed API's transformer.
package response

import (
	"encoding/json/v2"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
)

// Envelope is the consistent JSON response structure.
type Envelope struct {
	V       int       `json:"v"`
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *ErrorRef `json:"error,omitempty"`
}

// ErrorRef is the error payload inside an envelope.
type ErrorRef struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes a success envelope with the given status code.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{V: 1, Success: status < 400, Data: data}
	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a 200 success envelope.
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Error writes an error envelope with the given status and code.
func Error(w http.ResponseWriter, status int, code, message string, details any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		V:     1,
		Error: &ErrorRef{Code: code, Message: message, Details: details},
	}
	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode error response", "error", err)
		}
	}
}

// DomainError writes an error envelope for any error, mapping domain
// errors to their HTTP status and code.
func DomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var derr *domainerrors.Error
	if errors.As(err, &derr) {
		Error(w, derr.HTTPStatus(), string(derr.Code), derr.Message, derr.Details, logger)
		return
	}
	Error(w, http.StatusInternalServerError, string(domainerrors.CodeInternal), "internal server error", nil, logger)
}

// BadRequest writes a 400 validation error envelope.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, string(domainerrors.CodeValidation), message, nil, logger)
}

// TooManyRequests writes a 429 error envelope.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusTooManyRequests, string(domainerrors.CodeRateLimited), message, nil, logger)
}
