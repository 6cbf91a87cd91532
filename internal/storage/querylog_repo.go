package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_query_log_store.go -package=mocks docqa/internal/storage QueryLogStore

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryLogStore defines the interface for query log operations.
type QueryLogStore interface {
	// Create inserts a new query log record.
	Create(ctx context.Context, log *QueryLog) error
	// GetByID gets a query log by ID. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*QueryLog, error)
	// List returns the most recent query logs, newest first.
	List(ctx context.Context, limit int) ([]*QueryLog, error)
	// Analytics aggregates the query log into summary statistics.
	Analytics(ctx context.Context) (*Analytics, error)
}

// QueryLogRepo provides methods for query log operations.
// It implements the QueryLogStore interface.
type QueryLogRepo struct {
	db *sql.DB
}

// NewQueryLogRepo creates a new QueryLogRepo.
func NewQueryLogRepo(db *sql.DB) *QueryLogRepo {
	return &QueryLogRepo{db: db}
}

// Create inserts a new query log record.
func (r *QueryLogRepo) Create(ctx context.Context, log *QueryLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO query_logs (id, query_text, response_text, confidence_score, processing_time, sources_count, max_results, status, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.QueryText, log.ResponseText, log.ConfidenceScore,
		log.ProcessingTime, log.SourcesCount, log.MaxResults, log.Status, log.ErrorMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to insert query log: %w", err)
	}
	return nil
}

// GetByID gets a query log by ID. Returns nil and ErrNotFound if not found.
func (r *QueryLogRepo) GetByID(ctx context.Context, id string) (*QueryLog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, query_text, response_text, confidence_score, processing_time, sources_count, max_results, status, error_message, created_at
		 FROM query_logs WHERE id = ?`, id)

	log, err := scanQueryLog(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query query log: %w", err)
	}
	return log, nil
}

// List returns the most recent query logs, newest first.
func (r *QueryLogRepo) List(ctx context.Context, limit int) ([]*QueryLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, query_text, response_text, confidence_score, processing_time, sources_count, max_results, status, error_message, created_at
		 FROM query_logs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query query logs: %w", err)
	}
	defer rows.Close()

	var logs []*QueryLog
	for rows.Next() {
		log, err := scanQueryLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan query log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate query logs: %w", err)
	}
	return logs, nil
}

// Analytics aggregates the query log into summary statistics. Confidence and
// processing time averages cover completed queries only.
func (r *QueryLogRepo) Analytics(ctx context.Context) (*Analytics, error) {
	var a Analytics
	var avgConfidence, avgProcessing sql.NullFloat64

	err := r.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			AVG(CASE WHEN status = 'completed' THEN confidence_score END),
			AVG(CASE WHEN status = 'completed' THEN processing_time END)
		 FROM query_logs`,
	).Scan(&a.TotalQueries, &a.CompletedQueries, &a.FailedQueries, &avgConfidence, &avgProcessing)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate query logs: %w", err)
	}

	a.AvgConfidence = avgConfidence.Float64
	a.AvgProcessingTime = avgProcessing.Float64
	if a.TotalQueries > 0 {
		a.SuccessRate = float64(a.CompletedQueries) / float64(a.TotalQueries)
	}
	return &a, nil
}

func scanQueryLog(s scanner) (*QueryLog, error) {
	var log QueryLog
	var responseText, errMsg sql.NullString
	var confidence, processing sql.NullFloat64
	var createdAtStr string

	err := s.Scan(&log.ID, &log.QueryText, &responseText, &confidence,
		&processing, &log.SourcesCount, &log.MaxResults, &log.Status,
		&errMsg, &createdAtStr)
	if err != nil {
		return nil, err
	}

	log.ResponseText = responseText.String
	log.ErrorMsg = errMsg.String
	log.ConfidenceScore = confidence.Float64
	log.ProcessingTime = processing.Float64

	log.CreatedAt, err = parseSQLiteTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	return &log, nil
}
