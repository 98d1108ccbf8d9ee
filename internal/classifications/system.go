package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/caseprep/docket/pkg/pagination"
)

// System defines the public contract for classification domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Classification], error)

	Find(ctx context.Context, documentID uuid.UUID) (*Classification, error)
	Classify(ctx context.Context, documentID uuid.UUID) (*Classification, error)
	ClassifyCase(ctx context.Context, caseID uuid.UUID) ([]CaseResult, error)
	Override(ctx context.Context, documentID uuid.UUID, cmd OverrideCommand) (*Classification, error)
	Delete(ctx context.Context, documentID uuid.UUID) error
}
