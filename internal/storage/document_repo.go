package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docqa/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document registry operations.
type DocumentStore interface {
	// Create inserts a new document record.
	Create(ctx context.Context, doc *Document) error
	// GetByID gets a document by ID. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Document, error)
	// List returns all documents, newest first.
	List(ctx context.Context) ([]*Document, error)
	// MarkProcessed sets the terminal status of a document. The errMsg is
	// stored only for a failed status.
	MarkProcessed(ctx context.Context, id, status, errMsg string) error
	// Delete removes a document record. Returns ErrNotFound if not found.
	Delete(ctx context.Context, id string) error
}

// DocumentRepo provides methods for document registry operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Create inserts a new document record.
func (r *DocumentRepo) Create(ctx context.Context, doc *Document) error {
	chunkIDs, err := json.Marshal(doc.ChunkIDs)
	if err != nil {
		return fmt.Errorf("failed to encode chunk IDs: %w", err)
	}
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, file_type, file_size, total_chunks, chunk_ids, status, error_message, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.FileType, doc.FileSize, doc.TotalChunks,
		string(chunkIDs), doc.Status, doc.ErrorMsg, string(metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetByID gets a document by ID. Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, filename, file_type, file_size, total_chunks, chunk_ids, status, error_message, metadata, created_at, processed_at
		 FROM documents WHERE id = ?`, id)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return doc, nil
}

// List returns all documents, newest first.
func (r *DocumentRepo) List(ctx context.Context) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, file_type, file_size, total_chunks, chunk_ids, status, error_message, metadata, created_at, processed_at
		 FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

// MarkProcessed sets the terminal status of a document.
func (r *DocumentRepo) MarkProcessed(ctx context.Context, id, status, errMsg string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = ?, error_message = ?, processed_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document record. Returns ErrNotFound if not found.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanDocument.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*Document, error) {
	var doc Document
	var chunkIDs, createdAtStr string
	var errMsg, metadata, processedAtStr sql.NullString

	err := s.Scan(&doc.ID, &doc.Filename, &doc.FileType, &doc.FileSize,
		&doc.TotalChunks, &chunkIDs, &doc.Status, &errMsg, &metadata,
		&createdAtStr, &processedAtStr)
	if err != nil {
		return nil, err
	}

	doc.ErrorMsg = errMsg.String
	if err := json.Unmarshal([]byte(chunkIDs), &doc.ChunkIDs); err != nil {
		return nil, fmt.Errorf("failed to decode chunk IDs: %w", err)
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}

	doc.CreatedAt, err = parseSQLiteTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	if processedAtStr.Valid && processedAtStr.String != "" {
		doc.ProcessedAt, err = parseSQLiteTime(processedAtStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse processed_at timestamp: %w", err)
		}
	}
	return &doc, nil
}

// parseSQLiteTime parses a DATETIME column value. SQLite emits either its
// native "YYYY-MM-DD HH:MM:SS" format or RFC3339 depending on how the value
// was written.
func parseSQLiteTime(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
