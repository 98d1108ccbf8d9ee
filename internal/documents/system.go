package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/caseprep/docket/pkg/pagination"
	"github.com/caseprep/docket/pkg/storage"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Download(ctx context.Context, id uuid.UUID) (*Document, *storage.DownloadResult, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	CreateBatch(ctx context.Context, caseID uuid.UUID, archive []byte) ([]BatchResult, error)
	Text(ctx context.Context, id uuid.UUID) (string, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
