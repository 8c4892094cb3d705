package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmynk/telefonbuch/internal/auth"
	"github.com/mmynk/telefonbuch/internal/models"
	"github.com/mmynk/telefonbuch/internal/storage"
)

// errorBody is the JSON error envelope returned by all handlers.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// unauthenticated 401, validation 400, duplicate conflicts 409, and
// everything else 503 as a generic retryable store failure.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	switch {
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, storage.ErrDuplicateEntry):
		writeError(w, http.StatusConflict, "duplicate_entry", err.Error())
	case errors.Is(err, auth.ErrUsernameTaken), errors.Is(err, storage.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "username_taken", err.Error())
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmptyUsername):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "invalid_argument", ve.Error())
	default:
		// Do not leak internals; the caller may retry the whole operation.
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "storage temporarily unavailable")
	}
}
