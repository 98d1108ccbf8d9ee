package exhibits

import (
	"github.com/caseprep/docket/pkg/query"
	"github.com/caseprep/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "exhibits", "e").
	Project("id", "ID").
	Project("case_id", "CaseID").
	Project("document_id", "DocumentID").
	Project("name", "Name").
	Project("category", "Category").
	Project("criterion_letter", "CriterionLetter").
	Project("label", "Label").
	Project("position", "Position").
	Project("page_count", "PageCount").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Position",
}

func scanExhibit(s repository.Scanner) (Exhibit, error) {
	var e Exhibit
	err := s.Scan(
		&e.ID,
		&e.CaseID,
		&e.DocumentID,
		&e.Name,
		&e.Category,
		&e.CriterionLetter,
		&e.Label,
		&e.Position,
		&e.PageCount,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
