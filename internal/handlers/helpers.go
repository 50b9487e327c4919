package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkondo/giveaway/internal/entities"
)

// errorResponse is the JSON body returned for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// readJSON decodes the request body into v, rejecting unknown fields so
// client typos surface as 400s instead of silently dropped data.
func readJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeRepoError maps repository errors to HTTP statuses:
// not found -> 404, name/key conflicts -> 409, everything else -> 500.
func writeRepoError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var nameConflict *entities.NameConflictError
	var keyConflict *entities.DuplicateAttributeKeyError

	switch {
	case errors.Is(err, entities.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.As(err, &nameConflict):
		writeError(w, http.StatusConflict, nameConflict.Error())
	case errors.As(err, &keyConflict):
		writeError(w, http.StatusConflict, keyConflict.Error())
	default:
		logger.Error("repository error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
