package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atanum62/shyama-erp-sub000/inspection"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps inspection errors onto HTTP statuses. Precondition
// violations are the caller's fault, not the server's.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, inspection.ErrLotNotFound),
		errors.Is(err, inspection.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, inspection.ErrInvalidCause),
		errors.Is(err, inspection.ErrNotReturned),
		errors.Is(err, inspection.ErrNotWeightRejected),
		errors.Is(err, inspection.ErrNotArchivable),
		errors.Is(err, inspection.ErrNegativeQuantity):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, ApiResponse{Success: false, Message: err.Error()})
}
