// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairyhunter13/salon-management-service/internal/model"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// errorKinds maps domain error kinds to HTTP status codes. Business-rule
// violations map to 400 just like the original API surface.
var errorKinds = []struct {
	kind   error
	status int
}{
	{model.ErrNotFound, http.StatusNotFound},
	{model.ErrProductNotFound, http.StatusNotFound},
	{model.ErrForbidden, http.StatusForbidden},
	{model.ErrValidation, http.StatusBadRequest},
	{model.ErrInvalidTransition, http.StatusBadRequest},
	{model.ErrInsufficientStock, http.StatusBadRequest},
	{model.ErrDuplicateShift, http.StatusBadRequest},
	{model.ErrTooLate, http.StatusBadRequest},
	{model.ErrAlreadyCheckedIn, http.StatusBadRequest},
	{model.ErrAlreadyCheckedOut, http.StatusBadRequest},
	{model.ErrNotCheckedIn, http.StatusBadRequest},
	{model.ErrWrongDay, http.StatusBadRequest},
}

// WriteDomainError maps a domain error to its status code and writes it. The
// sentinel's text becomes the machine-readable error code and the full chain
// the human-readable details.
func WriteDomainError(w http.ResponseWriter, err error) {
	for _, ek := range errorKinds {
		if errors.Is(err, ek.kind) {
			WriteJSONError(w, ek.status, ek.kind.Error(), err.Error())
			return
		}
	}
	WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
}
