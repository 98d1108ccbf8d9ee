// Package classify implements document classification against the visa
// criterion taxonomy. A Backend is selected once at construction: rule-based
// keyword matching is always available; a model-assisted backend wraps it
// when a model endpoint is configured and degrades to rules on any failure.
package classify

import (
	"context"

	"github.com/caseprep/docket/internal/registry"
)

// Classification method tags. Closed set; persisted with each result.
const (
	MethodRule   = "rule-based"
	MethodModel  = "model-assisted"
	MethodManual = "manual"
)

// ValidMethod reports whether m is one of the known classification methods.
func ValidMethod(m string) bool {
	return m == MethodRule || m == MethodModel || m == MethodManual
}

// Input carries the document view the classifier operates on. Text is
// best-effort extracted text and may be empty; classification then degrades
// to filename-only matching.
type Input struct {
	DocumentID string
	Filename   string
	Text       string
	VisaType   string
}

// Alternative is a lower-ranked criterion candidate.
type Alternative struct {
	CriterionLetter string  `json:"criterion_letter"`
	Confidence      float64 `json:"confidence"`
}

// Result is one classification outcome. CriterionLetter is nil for
// administrative or unclassified documents. Confidence is always in [0,1].
type Result struct {
	DocumentID      string        `json:"document_id"`
	Filename        string        `json:"filename"`
	CriterionLetter *string       `json:"criterion_letter"`
	CriterionName   string        `json:"criterion_name,omitempty"`
	DocumentType    string        `json:"document_type"`
	Confidence      float64       `json:"confidence"`
	Reasoning       string        `json:"reasoning"`
	Method          string        `json:"method"`
	Alternatives    []Alternative `json:"alternatives,omitempty"`
}

// Backend classifies one document. Implementations are total over all
// inputs: the rule backend never fails, and the model backend falls back to
// rules internally rather than returning an error.
type Backend interface {
	Classify(ctx context.Context, in Input) (Result, error)
}

// MissingCriteria returns the criterion definitions under the visa type with
// zero occurrences among the results. Purely advisory.
func MissingCriteria(results []Result, visaType string) []registry.Criterion {
	covered := make(map[string]struct{})
	for _, r := range results {
		if r.CriterionLetter != nil && *r.CriterionLetter != "" {
			covered[*r.CriterionLetter] = struct{}{}
		}
	}

	missing := make([]registry.Criterion, 0)
	for _, c := range registry.Criteria(visaType) {
		if _, ok := covered[c.Letter]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}
