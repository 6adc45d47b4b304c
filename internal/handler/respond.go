package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/meditactive/meditactive/internal/ctxkeys"
	"github.com/meditactive/meditactive/internal/service"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps a service error kind to an HTTP status. Internal errors
// are logged with the request id and answered with a generic message so
// database details never reach clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	message := "internal server error"
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}

	var status int
	switch service.KindOf(err) {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindInsufficientFunds:
		status = http.StatusBadRequest
	case service.KindInvalid:
		status = http.StatusBadRequest
	case service.KindUnauthorized:
		status = http.StatusUnauthorized
	default:
		status = http.StatusInternalServerError
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", ctxkeys.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		message = "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads the request body into v, rejecting unknown garbage early.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	err := dec.Decode(v)
	if err != nil {
		return service.Invalid("invalid JSON body")
	}
	return nil
}

// pathID parses a numeric path value, e.g. r.PathValue("id").
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.Invalid("invalid " + name)
	}
	return id, nil
}
