package assembly

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caseprep/docket/internal/cases"
	"github.com/caseprep/docket/internal/documents"
	"github.com/caseprep/docket/internal/exhibits"
	"github.com/caseprep/docket/pkg/lifecycle"
	"github.com/caseprep/docket/pkg/query"
	"github.com/caseprep/docket/pkg/repository"
	"github.com/caseprep/docket/pkg/storage"
)

type repo struct {
	db        *sql.DB
	cases     cases.System
	exhibits  exhibits.System
	documents documents.System
	storage   storage.System
	tracker   *tracker
	logger    *slog.Logger
	baseCtx   context.Context
	workers   int
	workDir   string
}

// New creates a package assembly repository implementing the System
// interface. Builds run on goroutines rooted in the lifecycle context, so
// process shutdown cancels active builds cooperatively.
func New(
	db *sql.DB,
	lc *lifecycle.Coordinator,
	cs cases.System,
	exs exhibits.System,
	docs documents.System,
	store storage.System,
	logger *slog.Logger,
	workers int,
	workDir string,
) System {
	if workers < 1 {
		workers = 1
	}
	return &repo{
		db:        db,
		cases:     cs,
		exhibits:  exs,
		documents: docs,
		storage:   store,
		tracker:   newTracker(),
		logger:    logger.With("system", "assembly"),
		baseCtx:   lc.Context(),
		workers:   workers,
		workDir:   workDir,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListByCase(ctx context.Context, caseID uuid.UUID) ([]Package, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("CaseID", &caseID).
		Build()

	pkgs, err := repository.QueryMany(ctx, r.db, q, args, scanPackage)
	if err != nil {
		return nil, fmt.Errorf("query packages: %w", err)
	}
	return pkgs, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Package, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPackage)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Start(ctx context.Context, caseID uuid.UUID) (*Package, error) {
	exs, err := r.exhibits.List(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if len(exs) == 0 {
		return nil, ErrNoExhibits
	}

	if _, err := r.cases.SetStatus(ctx, caseID, cases.StatusAssembling); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO packages(id, case_id)
		VALUES ($1, $2)
		RETURNING id, case_id, status, step, progress, message, storage_key, page_count, size_bytes, error, download_count, created_at, updated_at, completed_at`

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Package, error) {
		return repository.QueryOne(ctx, tx, q, []any{uuid.New(), caseID}, scanPackage)
	})
	if err != nil {
		r.revertCase(caseID)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	runCtx, cancel := context.WithCancel(r.baseCtx)
	r.tracker.register(p.ID, cancel)

	go r.run(runCtx, p.ID, caseID, exs)

	r.logger.Info("package build started", "package", p.ID, "case", caseID)
	return &p, nil
}

func (r *repo) Watch(ctx context.Context, id uuid.UUID) (<-chan Progress, error) {
	if sub, ok := r.tracker.subscribe(id); ok {
		out := make(chan Progress, 16)
		go func() {
			defer close(out)
			defer r.tracker.unsubscribe(id, sub)
			for {
				select {
				case <-ctx.Done():
					return
				case p, open := <-sub:
					if !open {
						return
					}
					select {
					case out <- p:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
		return out, nil
	}

	// No active run: deliver the persisted state once.
	p, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make(chan Progress, 1)
	out <- Progress{
		PackageID: p.ID,
		Status:    p.Status,
		Step:      p.Step,
		Percent:   p.Progress,
		Message:   p.Message,
		Error:     p.Error,
	}
	close(out)
	return out, nil
}

func (r *repo) Cancel(ctx context.Context, id uuid.UUID) error {
	p, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	if Terminal(p.Status) {
		return fmt.Errorf("%w: status %s", ErrNotRunning, p.Status)
	}

	if !r.tracker.cancelRun(id) {
		return fmt.Errorf("%w: no active build", ErrNotRunning)
	}

	r.logger.Info("package build cancellation requested", "package", id)
	return nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, string, error) {
	p, err := r.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if p.Status != StatusCompleted || p.StorageKey == nil {
		return nil, "", ErrNotCompleted
	}

	result, err := r.storage.Download(ctx, *p.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("download package blob: %w", err)
	}

	if _, err := r.db.ExecContext(
		ctx,
		"UPDATE packages SET download_count = download_count + 1, updated_at = now() WHERE id = $1",
		id,
	); err != nil {
		r.logger.Warn("download counter update failed", "package", id, "error", err)
	}

	filename := fmt.Sprintf("exhibit-package-%s.pdf", p.CaseID)
	return result, filename, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	if !Terminal(p.Status) {
		return fmt.Errorf("%w: build still active", ErrInvalidRequest)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM packages WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if p.StorageKey != nil {
		if delErr := r.storage.Delete(ctx, *p.StorageKey); delErr != nil {
			r.logger.Warn("blob delete failed after DB delete", "key", *p.StorageKey, "error", delErr)
		}
	}

	r.logger.Info("package deleted", "id", id)
	return nil
}

// persistProgress mirrors a progress snapshot into the packages row.
// Persistence failures are logged, not fatal; the in-memory tracker remains
// the live source while the build runs.
func (r *repo) persistProgress(id uuid.UUID, p Progress) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q := `
		UPDATE packages
		SET status = $2, step = $3, progress = $4, message = $5, error = $6, updated_at = now(),
		    completed_at = CASE WHEN $7 THEN now() ELSE completed_at END
		WHERE id = $1`

	if _, err := r.db.ExecContext(
		ctx, q,
		id, p.Status, p.Step, p.Percent, p.Message, p.Error, Terminal(p.Status),
	); err != nil {
		r.logger.Warn("progress persist failed", "package", id, "error", err)
	}
}

// revertCase returns a case to draft after a failed or cancelled build.
func (r *repo) revertCase(caseID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.cases.SetStatus(ctx, caseID, cases.StatusDraft); err != nil {
		r.logger.Warn("case status revert failed", "case", caseID, "error", err)
	}
}
