package exhibits

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for exhibit domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, caseID uuid.UUID) ([]Exhibit, error)
	Find(ctx context.Context, id uuid.UUID) (*Exhibit, error)
	Build(ctx context.Context, caseID uuid.UUID) ([]Exhibit, error)
	AutoOrder(ctx context.Context, caseID uuid.UUID) ([]Exhibit, error)
	Reorder(ctx context.Context, caseID uuid.UUID, order []int) ([]Exhibit, error)
	Arrange(ctx context.Context, caseID uuid.UUID, instruction string) (*ArrangeResponse, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*Exhibit, error)
	Renumber(ctx context.Context, caseID uuid.UUID) ([]Exhibit, error)
	Validate(ctx context.Context, caseID uuid.UUID) (*ValidationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
