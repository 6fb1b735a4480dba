// Package handler exposes the ledger over REST using gorilla/mux.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tudorv/payme/internal/apperr"
	"github.com/tudorv/payme/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, errorMsg, details string) {
	writeJSON(w, status, models.ErrorResponse{
		Error:   errorMsg,
		Message: details,
	})
}

// writeServiceError maps domain errors to HTTP statuses. Everything the
// error taxonomy doesn't name is an internal error.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), "")
	case apperr.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error(), "")
	case apperr.IsInsufficientFunds(err):
		writeError(w, http.StatusBadRequest, err.Error(), "")
	case apperr.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error(), "")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
