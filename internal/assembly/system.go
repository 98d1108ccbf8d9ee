package assembly

import (
	"context"

	"github.com/google/uuid"

	"github.com/caseprep/docket/pkg/storage"
)

// System defines the public contract for package assembly operations.
type System interface {
	Handler() *Handler

	ListByCase(ctx context.Context, caseID uuid.UUID) ([]Package, error)
	Find(ctx context.Context, id uuid.UUID) (*Package, error)

	// Start accepts a build for a case and runs it in the background. The
	// returned package is in pending status; watch or poll for progress.
	Start(ctx context.Context, caseID uuid.UUID) (*Package, error)

	// Watch delivers progress snapshots until the build reaches a terminal
	// status or ctx is done. For builds that already finished, the current
	// state is delivered once.
	Watch(ctx context.Context, id uuid.UUID) (<-chan Progress, error)

	// Cancel requests cooperative cancellation of a running build.
	Cancel(ctx context.Context, id uuid.UUID) error

	// Download opens the completed artifact and increments the download
	// counter.
	Download(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, string, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
