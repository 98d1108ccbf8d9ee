package classifications

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/caseprep/docket/pkg/query"
	"github.com/caseprep/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classifications", "cl").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("case_id", "CaseID").
	Project("criterion_letter", "CriterionLetter").
	Project("criterion_name", "CriterionName").
	Project("document_type", "DocumentType").
	Project("confidence", "Confidence").
	Project("reasoning", "Reasoning").
	Project("method", "Method").
	Project("alternatives", "Alternatives").
	Project("classified_at", "ClassifiedAt")

var defaultSort = query.SortField{
	Field:      "ClassifiedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored; all filters use exact matching.
type Filters struct {
	CaseID          *uuid.UUID `json:"case_id,omitempty"`
	DocumentID      *uuid.UUID `json:"document_id,omitempty"`
	CriterionLetter *string    `json:"criterion_letter,omitempty"`
	DocumentType    *string    `json:"document_type,omitempty"`
	Method          *string    `json:"method,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("CaseID", f.CaseID).
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("CriterionLetter", f.CriterionLetter).
		WhereEquals("DocumentType", f.DocumentType).
		WhereEquals("Method", f.Method)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if cid := values.Get("case_id"); cid != "" {
		if id, err := uuid.Parse(cid); err == nil {
			f.CaseID = &id
		}
	}

	if did := values.Get("document_id"); did != "" {
		if id, err := uuid.Parse(did); err == nil {
			f.DocumentID = &id
		}
	}

	if cl := values.Get("criterion_letter"); cl != "" {
		f.CriterionLetter = &cl
	}

	if dt := values.Get("document_type"); dt != "" {
		f.DocumentType = &dt
	}

	if m := values.Get("method"); m != "" {
		f.Method = &m
	}

	return f
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var c Classification
	var alternatives []byte

	err := s.Scan(
		&c.ID,
		&c.DocumentID,
		&c.CaseID,
		&c.CriterionLetter,
		&c.CriterionName,
		&c.DocumentType,
		&c.Confidence,
		&c.Reasoning,
		&c.Method,
		&alternatives,
		&c.ClassifiedAt,
	)
	if err != nil {
		return c, err
	}

	if len(alternatives) > 0 {
		if err := json.Unmarshal(alternatives, &c.Alternatives); err != nil {
			return c, err
		}
	}

	return c, nil
}
