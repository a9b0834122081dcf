package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/meshwork-social/meshwork/internal/apperr"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	}
	WriteJSON(w, statusCode, response)
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteDomainError maps a domain error to its HTTP status. Storage faults
// never leak verbatim; the structured message describes the violated
// invariant only.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsNotFound(err):
		WriteError(w, http.StatusNotFound, err.Error())
	case apperr.IsNotAllowed(err):
		WriteError(w, http.StatusForbidden, err.Error())
	case apperr.IsValidation(err):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Stack().Err(err).Msg("internal error")
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
