package storage

import "time"

// Document statuses. A document is "processing" while its chunks are being
// embedded and indexed, then "completed" or "failed".
const (
	DocumentStatusProcessing = "processing"
	DocumentStatusCompleted  = "completed"
	DocumentStatusFailed     = "failed"
)

// Query log statuses.
const (
	QueryStatusCompleted = "completed"
	QueryStatusFailed    = "failed"
)

// Document represents a registered document in the database. The document
// text itself is not stored here; chunks live in the vector index under the
// IDs recorded in ChunkIDs.
type Document struct {
	ID          string // UUID
	Filename    string
	FileType    string // e.g. "pdf", "txt", "md"
	FileSize    int64  // Bytes of the original file
	TotalChunks int
	ChunkIDs    []string       // Vector index point IDs
	Status      string         // One of the DocumentStatus constants
	ErrorMsg    string         // Populated when Status is "failed"
	Metadata    map[string]any // Caller-supplied document attributes
	CreatedAt   time.Time
	ProcessedAt time.Time // Zero while Status is "processing"
}

// QueryLog represents one answered (or failed) query in the database.
type QueryLog struct {
	ID              string // UUID
	QueryText       string
	ResponseText    string
	ConfidenceScore float64
	ProcessingTime  float64 // Seconds
	SourcesCount    int
	MaxResults      int
	Status          string // One of the QueryStatus constants
	ErrorMsg        string // Populated when Status is "failed"
	CreatedAt       time.Time
}

// Analytics summarizes the query log.
type Analytics struct {
	TotalQueries      int     `json:"total_queries"`
	CompletedQueries  int     `json:"completed_queries"`
	FailedQueries     int     `json:"failed_queries"`
	SuccessRate       float64 `json:"success_rate"`
	AvgConfidence     float64 `json:"avg_confidence"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
}
