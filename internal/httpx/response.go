package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/diewo77/supplier-demand/internal/apperr"
)

// maxBodyBytes bounds request bodies; every record fits in a few hundred bytes.
const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// DecodeJSON reads a single JSON object from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// ErrorFor maps a classified error to a status code and client-safe body.
// Storage and unknown errors collapse to an opaque internal_error.
func ErrorFor(err error) (int, ErrorResponse) {
	var (
		ve *apperr.ValidationError
		nf *apperr.NotFoundError
		ce *apperr.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Details: ve.Violations}
	case errors.As(err, &nf):
		return http.StatusNotFound, ErrorResponse{Error: "not_found", Details: map[string]string{"entity": nf.Entity, "key": nf.Key}}
	case errors.As(err, &ce):
		return http.StatusConflict, ErrorResponse{Error: "conflict", Details: map[string]string{"entity": ce.Entity, "reason": ce.Reason}}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal_error"}
	}
}
