package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/apperrors"
)

// errorBody is the envelope every failed request maps to.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps an error from the taxonomy to its status and envelope.
// Anything outside the taxonomy becomes an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body.Error.Message = appErr.Message
		body.Error.Status = appErr.Status
	} else {
		log.Error().Err(err).Msg("Unexpected error")
		body.Error.Message = "internal server error"
		body.Error.Status = http.StatusInternalServerError
	}
	writeJSON(w, body.Error.Status, body)
}
