package classifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/caseprep/docket/internal/cases"
	"github.com/caseprep/docket/internal/classify"
	"github.com/caseprep/docket/internal/documents"
	"github.com/caseprep/docket/internal/registry"
	"github.com/caseprep/docket/pkg/pagination"
	"github.com/caseprep/docket/pkg/query"
	"github.com/caseprep/docket/pkg/repository"
)

const upsertQuery = `
	INSERT INTO classifications(id, document_id, case_id, criterion_letter, criterion_name, document_type, confidence, reasoning, method, alternatives)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (document_id) DO UPDATE SET
		criterion_letter = EXCLUDED.criterion_letter,
		criterion_name = EXCLUDED.criterion_name,
		document_type = EXCLUDED.document_type,
		confidence = EXCLUDED.confidence,
		reasoning = EXCLUDED.reasoning,
		method = EXCLUDED.method,
		alternatives = EXCLUDED.alternatives,
		classified_at = now()
	RETURNING id, document_id, case_id, criterion_letter, criterion_name, document_type, confidence, reasoning, method, alternatives, classified_at`

type repo struct {
	db         *sql.DB
	documents  documents.System
	cases      cases.System
	backend    classify.Backend
	logger     *slog.Logger
	pagination pagination.Config
	workers    int
}

// New creates a classification repository implementing the System interface.
// Workers bounds parallelism during case-wide classification runs.
func New(
	db *sql.DB,
	docs documents.System,
	cs cases.System,
	backend classify.Backend,
	logger *slog.Logger,
	pagination pagination.Config,
	workers int,
) System {
	if workers < 1 {
		workers = 1
	}
	return &repo{
		db:         db,
		documents:  docs,
		cases:      cs,
		backend:    backend,
		logger:     logger.With("system", "classifications"),
		pagination: pagination,
		workers:    workers,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Classification], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Reasoning", "DocumentType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClassification)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, documentID uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("DocumentID", documentID)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

// Classify runs the classification backend over a document's filename and
// extracted text and upserts the result. The document moves to classified
// status on success.
func (r *repo) Classify(ctx context.Context, documentID uuid.UUID) (*Classification, error) {
	doc, err := r.documents.Find(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}

	c, err := r.cases.Find(ctx, doc.CaseID)
	if err != nil {
		return nil, fmt.Errorf("find case: %w", err)
	}

	text, err := r.documents.Text(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load document text: %w", err)
	}

	result, err := r.backend.Classify(ctx, classify.Input{
		DocumentID: documentID.String(),
		Filename:   doc.Filename,
		Text:       text,
		VisaType:   c.VisaType,
	})
	if err != nil {
		return nil, fmt.Errorf("classify document: %w", err)
	}

	stored, err := r.upsert(ctx, documentID, doc.CaseID, result)
	if err != nil {
		return nil, err
	}

	if err := r.documents.SetStatus(ctx, documentID, documents.StatusClassified); err != nil {
		r.logger.Warn("document status update failed", "id", documentID, "error", err)
	}

	r.logger.Info(
		"document classified",
		"id", documentID,
		"method", stored.Method,
		"document_type", stored.DocumentType,
	)
	return stored, nil
}

// ClassifyCase classifies every document in a case. Documents run in
// parallel up to the worker limit; per-document failures are reported in the
// results rather than aborting the run.
func (r *repo) ClassifyCase(ctx context.Context, caseID uuid.UUID) ([]CaseResult, error) {
	if _, err := r.cases.Find(ctx, caseID); err != nil {
		return nil, err
	}

	ids, err := r.caseDocumentIDs(ctx, caseID)
	if err != nil {
		return nil, err
	}

	results := make([]CaseResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, id := range ids {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			classification, err := r.Classify(gctx, id)
			if err != nil {
				results[i] = CaseResult{DocumentID: id, Error: err.Error()}
				return nil
			}
			results[i] = CaseResult{DocumentID: id, Classification: classification}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("case classified", "case", caseID, "documents", len(ids))
	return results, nil
}

// Override records a manual classification with full confidence. The
// criterion letter must belong to the case's visa type taxonomy.
func (r *repo) Override(ctx context.Context, documentID uuid.UUID, cmd OverrideCommand) (*Classification, error) {
	doc, err := r.documents.Find(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}

	c, err := r.cases.Find(ctx, doc.CaseID)
	if err != nil {
		return nil, fmt.Errorf("find case: %w", err)
	}

	result := classify.Result{
		DocumentID:   documentID.String(),
		Filename:     doc.Filename,
		DocumentType: cmd.DocumentType,
		Confidence:   1.0,
		Reasoning:    cmd.Reasoning,
		Method:       classify.MethodManual,
	}
	if result.Reasoning == "" {
		result.Reasoning = "Manually classified"
	}
	if result.DocumentType == "" {
		result.DocumentType = "other"
	}

	if cmd.CriterionLetter != nil && *cmd.CriterionLetter != "" {
		criterion := registry.FindCriterion(c.VisaType, *cmd.CriterionLetter)
		if criterion == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCriterion, *cmd.CriterionLetter)
		}
		result.CriterionLetter = cmd.CriterionLetter
		result.CriterionName = criterion.Name
	}

	stored, err := r.upsert(ctx, documentID, doc.CaseID, result)
	if err != nil {
		return nil, err
	}

	if err := r.documents.SetStatus(ctx, documentID, documents.StatusClassified); err != nil {
		r.logger.Warn("document status update failed", "id", documentID, "error", err)
	}

	r.logger.Info("classification overridden", "id", documentID)
	return stored, nil
}

func (r *repo) Delete(ctx context.Context, documentID uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM classifications WHERE document_id = $1",
			documentID,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification deleted", "document", documentID)
	return nil
}

func (r *repo) upsert(
	ctx context.Context,
	documentID, caseID uuid.UUID,
	result classify.Result,
) (*Classification, error) {
	alternatives, err := json.Marshal(result.Alternatives)
	if err != nil {
		return nil, fmt.Errorf("marshal alternatives: %w", err)
	}

	args := []any{
		uuid.New(),
		documentID,
		caseID,
		result.CriterionLetter,
		result.CriterionName,
		result.DocumentType,
		result.Confidence,
		result.Reasoning,
		result.Method,
		alternatives,
	}

	stored, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Classification, error) {
		return repository.QueryOne(ctx, tx, upsertQuery, args, scanClassification)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &stored, nil
}

func (r *repo) caseDocumentIDs(ctx context.Context, caseID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT id FROM documents WHERE case_id = $1 ORDER BY uploaded_at",
		caseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query case documents: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
