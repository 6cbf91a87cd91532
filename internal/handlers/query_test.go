package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/rag"
	"docqa/internal/service"
	"docqa/internal/service/mocks"
)

func TestQueryHandlerServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       any
		mockSetup  func(*mocks.MockQueryService)
		wantStatus int
	}{
		{
			name:   "successful query",
			method: http.MethodPost,
			body:   rag.QueryRequest{Query: "What are the payment terms?"},
			mockSetup: func(m *mocks.MockQueryService) {
				m.EXPECT().
					ProcessQuery(gomock.Any(), rag.QueryRequest{Query: "What are the payment terms?"}).
					Return(rag.Response{Answer: "Net thirty days [Source: doc-1]."}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "invalid body",
			method:     http.MethodPost,
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			body:   rag.QueryRequest{Query: ""},
			mockSetup: func(m *mocks.MockQueryService) {
				m.EXPECT().
					ProcessQuery(gomock.Any(), gomock.Any()).
					Return(rag.Response{}, &service.ValidationError{Field: "query", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "retrieval failure maps to 503",
			method: http.MethodPost,
			body:   rag.QueryRequest{Query: "anything"},
			mockSetup: func(m *mocks.MockQueryService) {
				m.EXPECT().
					ProcessQuery(gomock.Any(), gomock.Any()).
					Return(rag.Response{}, service.WrapError(rag.ErrRetrieval, "failed to process query"))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:   "generation failure maps to 502",
			method: http.MethodPost,
			body:   rag.QueryRequest{Query: "anything"},
			mockSetup: func(m *mocks.MockQueryService) {
				m.EXPECT().
					ProcessQuery(gomock.Any(), gomock.Any()).
					Return(rag.Response{}, service.WrapError(rag.ErrGeneration, "failed to process query"))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:   "unexpected failure maps to 500",
			method: http.MethodPost,
			body:   rag.QueryRequest{Query: "anything"},
			mockSetup: func(m *mocks.MockQueryService) {
				m.EXPECT().
					ProcessQuery(gomock.Any(), gomock.Any()).
					Return(rag.Response{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			queryService := mocks.NewMockQueryService(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(queryService)
			}
			handler := NewQueryHandler(queryService)

			var body bytes.Buffer
			if s, ok := tt.body.(string); ok {
				body.WriteString(s)
			} else if tt.body != nil {
				_ = json.NewEncoder(&body).Encode(tt.body)
			}

			req := httptest.NewRequest(tt.method, "/api/v1/query", &body)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var resp rag.Response
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Answer == "" {
					t.Error("response missing answer")
				}
			} else {
				var errResp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if errResp.Error == "" {
					t.Error("error response missing message")
				}
			}
		})
	}
}
