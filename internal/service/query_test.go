package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"docqa/internal/rag"
	ragmocks "docqa/internal/rag/mocks"
	"docqa/internal/storage"
	storagemocks "docqa/internal/storage/mocks"
)

func TestProcessQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := ragmocks.NewMockEngine(ctrl)
	queryLogs := storagemocks.NewMockQueryLogStore(ctrl)

	resp := rag.Response{
		Query:           "What are the payment terms?",
		Answer:          "Net thirty days [Source: doc-1].",
		Sources:         []rag.Source{{ID: "doc-1"}},
		ConfidenceScore: 0.8,
		ProcessingTime:  1.2,
	}
	engine.EXPECT().
		Query(gomock.Any(), rag.QueryRequest{Query: "What are the payment terms?", MaxResults: 5}).
		Return(resp, nil)

	var logged *storage.QueryLog
	queryLogs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *storage.QueryLog) error {
			logged = record
			return nil
		})

	s := NewQueryService(engine, queryLogs)
	got, err := s.ProcessQuery(context.Background(), rag.QueryRequest{Query: "What are the payment terms?"})
	if err != nil {
		t.Fatalf("ProcessQuery() error: %v", err)
	}

	if got.Answer != resp.Answer {
		t.Errorf("Answer = %q", got.Answer)
	}
	if logged == nil {
		t.Fatal("query log not recorded")
	}
	if logged.Status != storage.QueryStatusCompleted {
		t.Errorf("logged status = %q, want completed", logged.Status)
	}
	if logged.SourcesCount != 1 || logged.ConfidenceScore != 0.8 {
		t.Errorf("logged record = %+v", logged)
	}
	if logged.ID == "" {
		t.Error("logged record missing ID")
	}
}

func TestProcessQueryValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Neither the engine nor the log store may be reached for invalid input.
	s := NewQueryService(ragmocks.NewMockEngine(ctrl), storagemocks.NewMockQueryLogStore(ctrl))

	tests := []struct {
		name  string
		query string
	}{
		{name: "empty query", query: ""},
		{name: "oversized query", query: strings.Repeat("q", 2001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ProcessQuery(context.Background(), rag.QueryRequest{Query: tt.query})
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("ProcessQuery() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestProcessQueryClampsMaxResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := ragmocks.NewMockEngine(ctrl)
	queryLogs := storagemocks.NewMockQueryLogStore(ctrl)
	queryLogs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	engine.EXPECT().
		Query(gomock.Any(), rag.QueryRequest{Query: "q longer than nothing", MaxResults: 20}).
		Return(rag.Response{}, nil)

	s := NewQueryService(engine, queryLogs)
	_, err := s.ProcessQuery(context.Background(), rag.QueryRequest{Query: "q longer than nothing", MaxResults: 99})
	if err != nil {
		t.Fatalf("ProcessQuery() error: %v", err)
	}
}

func TestProcessQueryEngineFailureLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := ragmocks.NewMockEngine(ctrl)
	queryLogs := storagemocks.NewMockQueryLogStore(ctrl)

	engine.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(rag.Response{}, rag.ErrRetrieval)

	var logged *storage.QueryLog
	queryLogs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *storage.QueryLog) error {
			logged = record
			return nil
		})

	s := NewQueryService(engine, queryLogs)
	_, err := s.ProcessQuery(context.Background(), rag.QueryRequest{Query: "anything"})
	if !errors.Is(err, rag.ErrRetrieval) {
		t.Errorf("ProcessQuery() error = %v, want ErrRetrieval preserved", err)
	}
	if logged == nil || logged.Status != storage.QueryStatusFailed {
		t.Errorf("failed query not logged as failed: %+v", logged)
	}
	if logged != nil && logged.ErrorMsg == "" {
		t.Error("failed query log missing error message")
	}
}

func TestProcessQueryLogFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := ragmocks.NewMockEngine(ctrl)
	queryLogs := storagemocks.NewMockQueryLogStore(ctrl)

	engine.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(rag.Response{Answer: "fine"}, nil)
	queryLogs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	s := NewQueryService(engine, queryLogs)
	got, err := s.ProcessQuery(context.Background(), rag.QueryRequest{Query: "anything"})
	if err != nil {
		t.Fatalf("ProcessQuery() error: %v, log failure must not fail the query", err)
	}
	if got.Answer != "fine" {
		t.Errorf("Answer = %q", got.Answer)
	}
}
