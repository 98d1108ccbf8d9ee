// Package classifications implements the classification domain for Docket.
// It runs the classification backend over uploaded documents, persists the
// results, and supports manual overrides.
package classifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/caseprep/docket/internal/classify"
)

// Classification represents the persisted classification of a document
// against its case's criterion taxonomy. A nil CriterionLetter marks an
// administrative document that claims no criterion.
type Classification struct {
	ID              uuid.UUID              `json:"id"`
	DocumentID      uuid.UUID              `json:"document_id"`
	CaseID          uuid.UUID              `json:"case_id"`
	CriterionLetter *string                `json:"criterion_letter"`
	CriterionName   string                 `json:"criterion_name"`
	DocumentType    string                 `json:"document_type"`
	Confidence      float64                `json:"confidence"`
	Reasoning       string                 `json:"reasoning"`
	Method          string                 `json:"method"`
	Alternatives    []classify.Alternative `json:"alternatives,omitempty"`
	ClassifiedAt    time.Time              `json:"classified_at"`
}

// OverrideCommand carries a manual classification. A nil CriterionLetter
// clears the criterion assignment.
type OverrideCommand struct {
	CriterionLetter *string `json:"criterion_letter"`
	DocumentType    string  `json:"document_type"`
	Reasoning       string  `json:"reasoning"`
}

// CaseResult reports the outcome of classifying one document during a
// case-wide run.
type CaseResult struct {
	DocumentID     uuid.UUID       `json:"document_id"`
	Classification *Classification `json:"classification,omitempty"`
	Error          string          `json:"error,omitempty"`
}
