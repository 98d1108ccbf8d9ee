package cases

import (
	"net/url"

	"github.com/caseprep/docket/pkg/query"
	"github.com/caseprep/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "cases", "c").
	Project("id", "ID").
	Project("title", "Title").
	Project("beneficiary", "Beneficiary").
	Project("petitioner", "Petitioner").
	Project("field_of_endeavor", "FieldOfEndeavor").
	Project("visa_type", "VisaType").
	Project("numbering_style", "NumberingStyle").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for case queries. Nil fields
// are ignored. VisaType and Status use exact matching; Title uses
// case-insensitive contains matching.
type Filters struct {
	VisaType *string `json:"visa_type,omitempty"`
	Status   *string `json:"status,omitempty"`
	Title    *string `json:"title,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("VisaType", f.VisaType).
		WhereEquals("Status", f.Status).
		WhereContains("Title", f.Title)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if vt := values.Get("visa_type"); vt != "" {
		f.VisaType = &vt
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	return f
}

func scanCase(s repository.Scanner) (Case, error) {
	var c Case
	err := s.Scan(
		&c.ID,
		&c.Title,
		&c.Beneficiary,
		&c.Petitioner,
		&c.FieldOfEndeavor,
		&c.VisaType,
		&c.NumberingStyle,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
