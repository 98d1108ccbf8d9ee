// Package documents implements the document domain for Docket.
// It provides types, data access, and business logic for PDF upload, batch
// ZIP intake, text extraction, and blob storage integration.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document statuses.
const (
	StatusUploaded   = "uploaded"
	StatusClassified = "classified"
)

// Document represents an uploaded case document with its metadata and blob
// storage reference. Extracted text is stored alongside the row and exposed
// through System.Text rather than carried on the struct.
type Document struct {
	ID          uuid.UUID `json:"id"`
	CaseID      uuid.UUID `json:"case_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new
// document. Data holds the raw file bytes; page count and text extraction
// happen during creation.
type CreateCommand struct {
	CaseID      uuid.UUID
	Data        []byte
	Filename    string
	ContentType string
}

// BatchResult reports the outcome of a single file within a ZIP batch
// upload. On success, Document is populated and Error is empty. On failure,
// Error describes the problem and Document is nil.
type BatchResult struct {
	Document *Document `json:"document,omitempty"`
	Filename string    `json:"filename"`
	Error    string    `json:"error,omitempty"`
}
