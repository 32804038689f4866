package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Nikolas7zip/shareit/internal/domain"
)

var (
	errMissingUserHeader = errors.New(userIDHeader + " header is required")
	errBadUserHeader     = errors.New(userIDHeader + " header must be a UUID")
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeDomainError maps a service error onto the HTTP status for its kind
// (404 for not found, 400 for validation, 409 for conflict) and writes the
// unwrapped human-readable message. Unrecognized errors become a bare 500;
// the logging middleware has already recorded them.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: unwrapMessage(err, "validation error")})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: unwrapMessage(err, "conflict")})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// writeBadRequest rejects a request before it reaches the service layer
// (missing header, malformed body or params).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// unwrapMessage extracts the human-readable tail of a wrapped sentinel
// error, e.g. "service.BookingService.Create: validation error: item not
// available" → "item not available". Falls back to the full message when
// the sentinel carries no detail.
func unwrapMessage(err error, sentinel string) string {
	msg := err.Error()
	marker := sentinel + ": "
	if idx := strings.LastIndex(msg, marker); idx >= 0 {
		return msg[idx+len(marker):]
	}
	return msg
}
