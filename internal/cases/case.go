// Package cases implements the visa case domain for Docket.
// A case groups uploaded documents, their classifications, and the exhibit
// list that assembly renders into a final package.
package cases

import (
	"time"

	"github.com/google/uuid"
)

// Case statuses. A case starts in draft, moves to assembling while a
// package build runs, and lands in complete when a package finishes.
const (
	StatusDraft      = "draft"
	StatusAssembling = "assembling"
	StatusComplete   = "complete"
)

// Case represents a visa petition case and its exhibit settings.
type Case struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Beneficiary     string    `json:"beneficiary"`
	Petitioner      string    `json:"petitioner"`
	FieldOfEndeavor string    `json:"field_of_endeavor"`
	VisaType        string    `json:"visa_type"`
	NumberingStyle  string    `json:"numbering_style"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to open a new case. VisaType and
// NumberingStyle fall back to defaults when empty.
type CreateCommand struct {
	Title           string `json:"title"`
	Beneficiary     string `json:"beneficiary"`
	Petitioner      string `json:"petitioner"`
	FieldOfEndeavor string `json:"field_of_endeavor"`
	VisaType        string `json:"visa_type"`
	NumberingStyle  string `json:"numbering_style"`
}

// UpdateCommand carries optional field updates. Nil fields are left unchanged.
type UpdateCommand struct {
	Title           *string `json:"title,omitempty"`
	Beneficiary     *string `json:"beneficiary,omitempty"`
	Petitioner      *string `json:"petitioner,omitempty"`
	FieldOfEndeavor *string `json:"field_of_endeavor,omitempty"`
	VisaType        *string `json:"visa_type,omitempty"`
	NumberingStyle  *string `json:"numbering_style,omitempty"`
}

// ValidStatus reports whether s is a known case status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusAssembling, StatusComplete:
		return true
	}
	return false
}

// CanTransition reports whether a case may move from one status to another.
// Draft cases start assembling; assembling cases complete or fall back to
// draft when a build fails or is cancelled; complete cases reopen as draft.
func CanTransition(from, to string) bool {
	switch from {
	case StatusDraft:
		return to == StatusAssembling
	case StatusAssembling:
		return to == StatusComplete || to == StatusDraft
	case StatusComplete:
		return to == StatusDraft
	}
	return false
}
