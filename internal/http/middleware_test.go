package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docqa/internal/contextutil"
)

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func TestRequestLogger(t *testing.T) {
	var sawLogger, sawRequestID bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if contextutil.LoggerFromContext(ctx) != nil {
			sawLogger = true
		}
		if contextutil.RequestIDFromContext(ctx) != "" {
			sawRequestID = true
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	w := httptest.NewRecorder()
	RequestLogger(next).ServeHTTP(w, req)

	if !sawLogger {
		t.Error("request context missing logger")
	}
	if !sawRequestID {
		t.Error("request context missing request ID")
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("adds headers on normal request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/anything", nil)
		w := httptest.NewRecorder()
		CORS(next).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
	})

	t.Run("echoes origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/anything", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()
		CORS(next).ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})

	t.Run("short-circuits preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
		w := httptest.NewRecorder()
		CORS(next).ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want 204", w.Code)
		}
	})
}
