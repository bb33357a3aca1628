// internal/app/system/httpx/httpx.go

// Package httpx holds the JSON request/response helpers shared by all
// feature handlers, including the mapping from the apperr taxonomy to
// HTTP status codes.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aulahub/aulahub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; the largest legitimate payload is a
// group-create with a full roster, far below this.
const maxBodyBytes = 1 << 20

// WriteJSON encodes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteMessage writes a {"message": ...} body, the shape the client
// expects from mutation endpoints.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}

// errorBody is the uniform failure shape: a stable status code plus a
// human-readable reason.
type errorBody struct {
	Error string `json:"error"`
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalid:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err at the handler boundary. Unclassified errors are
// logged at error level and surface only a generic reason.
func WriteError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
	}
	WriteJSON(w, status, errorBody{Error: apperr.Reason(err)})
}

// Decode reads a JSON body into dst, returning an Invalid error for
// malformed or oversized input.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("request body is required")
		}
		return apperr.Wrap(apperr.KindInvalid, err, "malformed JSON body")
	}
	return nil
}
