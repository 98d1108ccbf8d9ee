package assembly

import (
	"github.com/caseprep/docket/pkg/query"
	"github.com/caseprep/docket/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "packages", "p").
	Project("id", "ID").
	Project("case_id", "CaseID").
	Project("status", "Status").
	Project("step", "Step").
	Project("progress", "Progress").
	Project("message", "Message").
	Project("storage_key", "StorageKey").
	Project("page_count", "PageCount").
	Project("size_bytes", "SizeBytes").
	Project("error", "Error").
	Project("download_count", "DownloadCount").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Project("completed_at", "CompletedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanPackage(s repository.Scanner) (Package, error) {
	var p Package
	err := s.Scan(
		&p.ID,
		&p.CaseID,
		&p.Status,
		&p.Step,
		&p.Progress,
		&p.Message,
		&p.StorageKey,
		&p.PageCount,
		&p.SizeBytes,
		&p.Error,
		&p.DownloadCount,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CompletedAt,
	)
	return p, err
}
