package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"docqa/internal/rag"
	"docqa/internal/storage"
	storagemocks "docqa/internal/storage/mocks"
)

func configForTest() rag.Config {
	return rag.DefaultConfig()
}

func newQueryPageRouter(h *QueryLogPageHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/queries/{id}", h.ServeHTTP)
	return r
}

func TestQueryLogPageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queryLogs := storagemocks.NewMockQueryLogStore(ctrl)
	queryLogs.EXPECT().
		GetByID(gomock.Any(), "q-1").
		Return(&storage.QueryLog{
			ID:              "q-1",
			QueryText:       "What are the payment terms?",
			ResponseText:    "## Terms\n\nNet **thirty** days.",
			ConfidenceScore: 0.82,
			ProcessingTime:  1.4,
			SourcesCount:    2,
			Status:          storage.QueryStatusCompleted,
			CreatedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}, nil)

	router := newQueryPageRouter(NewQueryLogPageHandler(queryLogs))

	req := httptest.NewRequest(http.MethodGet, "/queries/q-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); !strings.Contains(got, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", got)
	}

	body := w.Body.String()
	if !strings.Contains(body, "What are the payment terms?") {
		t.Error("page missing query text")
	}
	// Markdown answer rendered to HTML.
	if !strings.Contains(body, "<strong>thirty</strong>") {
		t.Errorf("page missing rendered markdown:\n%s", body)
	}
	if !strings.Contains(body, "confidence: 0.82") {
		t.Error("page missing confidence")
	}
}

func TestQueryLogPageHandlerNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queryLogs := storagemocks.NewMockQueryLogStore(ctrl)
	queryLogs.EXPECT().
		GetByID(gomock.Any(), "missing").
		Return(nil, storage.ErrNotFound)

	router := newQueryPageRouter(NewQueryLogPageHandler(queryLogs))

	req := httptest.NewRequest(http.MethodGet, "/queries/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
