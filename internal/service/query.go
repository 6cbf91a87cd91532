package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_query_service.go -package=mocks -mock_names=QueryService=MockQueryService docqa/internal/service QueryService

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"docqa/internal/contextutil"
	"docqa/internal/rag"
	"docqa/internal/storage"
)

const (
	maxQueryLength    = 2000
	defaultMaxResults = 5
	maxMaxResults     = 20
)

// QueryService answers document questions and records each query.
type QueryService interface {
	// ProcessQuery validates the request, runs the answer pipeline, and logs
	// the outcome.
	ProcessQuery(ctx context.Context, req rag.QueryRequest) (rag.Response, error)
}

// queryService implements QueryService.
type queryService struct {
	engine    rag.Engine
	queryLogs storage.QueryLogStore
	logger    *slog.Logger
}

// NewQueryService creates a new QueryService.
func NewQueryService(engine rag.Engine, queryLogs storage.QueryLogStore) QueryService {
	return &queryService{
		engine:    engine,
		queryLogs: queryLogs,
		logger:    slog.Default(),
	}
}

// ProcessQuery validates the request, runs the answer pipeline, and logs the
// outcome. A query log write failure is logged but never fails the query.
func (s *queryService) ProcessQuery(ctx context.Context, req rag.QueryRequest) (rag.Response, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Query == "" {
		logger.WarnContext(ctx, "empty query in request")
		return rag.Response{}, &ValidationError{
			Field:   "query",
			Message: "cannot be empty",
		}
	}
	if len(req.Query) > maxQueryLength {
		logger.WarnContext(ctx, "query too long", "query_length", len(req.Query))
		return rag.Response{}, &ValidationError{
			Field:   "query",
			Message: "must be at most 2000 characters",
		}
	}

	if req.MaxResults <= 0 {
		req.MaxResults = defaultMaxResults
	}
	if req.MaxResults > maxMaxResults {
		req.MaxResults = maxMaxResults
	}

	resp, err := s.engine.Query(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "query failed", "error", err)
		s.recordQuery(ctx, req, rag.Response{}, err)
		return rag.Response{}, WrapError(err, "failed to process query")
	}

	s.recordQuery(ctx, req, resp, nil)
	return resp, nil
}

// recordQuery persists one query log row.
func (s *queryService) recordQuery(ctx context.Context, req rag.QueryRequest, resp rag.Response, queryErr error) {
	logger := contextutil.LoggerFromContext(ctx)

	record := &storage.QueryLog{
		ID:         uuid.New().String(),
		QueryText:  req.Query,
		MaxResults: req.MaxResults,
	}
	if queryErr != nil {
		record.Status = storage.QueryStatusFailed
		record.ErrorMsg = queryErr.Error()
	} else {
		record.Status = storage.QueryStatusCompleted
		record.ResponseText = resp.Answer
		record.ConfidenceScore = resp.ConfidenceScore
		record.ProcessingTime = resp.ProcessingTime
		record.SourcesCount = len(resp.Sources)
	}

	if err := s.queryLogs.Create(ctx, record); err != nil {
		logger.ErrorContext(ctx, "failed to record query log", "error", err)
	}
}
