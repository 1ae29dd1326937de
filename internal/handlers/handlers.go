// Package handlers implements the JSON endpoints of the service. Handlers
// decode and validate input, call the store or a service and map the
// classified outcome to a status code.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/diewo77/supplier-demand/internal/apperr"
	"github.com/diewo77/supplier-demand/internal/httpx"
	"github.com/diewo77/supplier-demand/internal/middleware"
)

type listResponse struct {
	Count int `json:"count"`
	Data  any `json:"data"`
}

type createdResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type changedResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
	Data    any    `json:"data,omitempty"`
}

// errInvalidID is returned by parseID for non-numeric or zero ids.
var errInvalidID = errors.New("invalid id")

func parseID(r *http.Request) (uint, error) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, errInvalidID
	}
	return uint(n), nil
}

func invalidID(w http.ResponseWriter, r *http.Request) {
	httpx.JSONError(w, http.StatusBadRequest, "invalid_id", map[string]string{"id": r.PathValue("id")})
}

func invalidJSON(w http.ResponseWriter, err error) {
	httpx.JSONError(w, http.StatusBadRequest, "invalid_json", map[string]string{"reason": err.Error()})
}

// writeError renders err through httpx.ErrorFor. Storage and unclassified
// errors are logged with their cause, which never reaches the client.
func writeError(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, body := httpx.ErrorFor(err)
	if status >= http.StatusInternalServerError {
		var se *apperr.StorageError
		fields := []zap.Field{
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.RequestID(r.Context())),
		}
		if errors.As(err, &se) {
			fields = append(fields, zap.String("op", se.Op))
		}
		log.Error("request failed", fields...)
	}
	httpx.JSON(w, status, body)
}
