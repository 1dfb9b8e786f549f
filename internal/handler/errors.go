package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pmartell/driveledger/internal/domain"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps service-layer sentinel errors to HTTP status codes.
// Anything unrecognized is a 500; the original error is logged, never leaked.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{
			Code:    "validation_error",
			Message: messageFor(err, domain.ErrValidation),
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{errorDetail{
			Code:    "not_found",
			Message: "resource not found",
		}})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{errorDetail{
			Code:    "unauthorized",
			Message: messageFor(err, domain.ErrUnauthorized),
		}})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{errorDetail{
			Code:    "conflict",
			Message: messageFor(err, domain.ErrConflict),
		}})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{errorDetail{
			Code:    "internal_error",
			Message: "internal server error",
		}})
	}
}

// writeRequestError rejects a request before it reaches the service layer
// (malformed body, bad UUID, bad query parameter).
func writeRequestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{
		Code:    "validation_error",
		Message: message,
	}})
}

// writeForbidden responds 403 for an authenticated user touching another
// driver's records.
func writeForbidden(w http.ResponseWriter) {
	writeJSON(w, http.StatusForbidden, errorResponse{errorDetail{
		Code:    "forbidden",
		Message: "you do not have access to this driver's records",
	}})
}

// messageFor extracts the human-readable tail from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: miles must be
// non-negative" → "miles must be non-negative".
func messageFor(err error, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
