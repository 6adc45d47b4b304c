package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meditactive/meditactive/internal/service"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", service.NotFound("gone"), http.StatusNotFound},
		{"conflict", service.Conflict("dup"), http.StatusConflict},
		{"insufficient funds", service.InsufficientFunds("broke"), http.StatusBadRequest},
		{"invalid", service.Invalid("bad"), http.StatusBadRequest},
		{"unauthorized", service.Unauthorized("who"), http.StatusUnauthorized},
		{"internal", service.Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{"plain error", errors.New("raw"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			writeError(rec, req, tt.err)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q, want application/json", ct)
			}
		})
	}
}

// Internal failures must never leak their cause to the client.
func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	writeError(rec, req, service.Internal("load user", errors.New("dial tcp: connection refused")))

	var resp errorResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Errorf("error = %q, want generic message", resp.Error)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Error("response leaks internal error detail")
	}
}

func TestPathID(t *testing.T) {
	mux := http.NewServeMux()
	var gotID int64
	var gotErr error
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = pathID(r, "id")
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	if gotErr != nil || gotID != 42 {
		t.Errorf("id = %d, err = %v, want 42, nil", gotID, gotErr)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	if service.KindOf(gotErr) != service.KindInvalid {
		t.Errorf("kind = %v, want KindInvalid", service.KindOf(gotErr))
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/-1", nil))
	if service.KindOf(gotErr) != service.KindInvalid {
		t.Errorf("kind = %v, want KindInvalid for negative id", service.KindOf(gotErr))
	}
}

func TestDecodeJSONInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("{not json"))

	var v struct{}
	err := decodeJSON(req, &v)
	if service.KindOf(err) != service.KindInvalid {
		t.Errorf("kind = %v, want KindInvalid", service.KindOf(err))
	}
}
