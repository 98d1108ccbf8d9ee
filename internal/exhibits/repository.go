package exhibits

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/caseprep/docket/internal/arrange"
	"github.com/caseprep/docket/internal/cases"
	"github.com/caseprep/docket/internal/ordering"
	"github.com/caseprep/docket/internal/registry"
	"github.com/caseprep/docket/pkg/query"
	"github.com/caseprep/docket/pkg/repository"
)

// buildCandidatesQuery selects classified documents that do not yet have an
// exhibit, in upload order.
const buildCandidatesQuery = `
	SELECT d.id, d.filename, d.page_count, cl.criterion_letter, cl.criterion_name, cl.document_type
	FROM documents d
	JOIN classifications cl ON cl.document_id = d.id
	WHERE d.case_id = $1
	  AND NOT EXISTS (SELECT 1 FROM exhibits e WHERE e.document_id = d.id)
	ORDER BY d.uploaded_at`

type repo struct {
	db          *sql.DB
	cases       cases.System
	interpreter arrange.Interpreter
	logger      *slog.Logger
}

// New creates an exhibit repository implementing the System interface.
func New(
	db *sql.DB,
	cs cases.System,
	interpreter arrange.Interpreter,
	logger *slog.Logger,
) System {
	return &repo{
		db:          db,
		cases:       cs,
		interpreter: interpreter,
		logger:      logger.With("system", "exhibits"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

// List returns a case's exhibits in position order.
func (r *repo) List(ctx context.Context, caseID uuid.UUID) ([]Exhibit, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("CaseID", &caseID).
		Build()

	exs, err := repository.QueryMany(ctx, r.db, q, args, scanExhibit)
	if err != nil {
		return nil, fmt.Errorf("query exhibits: %w", err)
	}
	return exs, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Exhibit, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanExhibit)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

type buildCandidate struct {
	documentID      uuid.UUID
	filename        string
	pageCount       *int
	criterionLetter *string
	criterionName   string
	documentType    string
}

// Build creates exhibits for every classified document that lacks one. New
// exhibits append after existing ones in upload order; labels follow the
// case's numbering style.
func (r *repo) Build(ctx context.Context, caseID uuid.UUID) ([]Exhibit, error) {
	c, err := r.cases.Find(ctx, caseID)
	if err != nil {
		return nil, err
	}

	style, err := ordering.ParseStyle(c.NumberingStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	candidates, err := r.buildCandidates(ctx, caseID)
	if err != nil {
		return nil, err
	}

	existing, err := r.List(ctx, caseID)
	if err != nil {
		return nil, err
	}
	base := len(existing)

	insert := `
		INSERT INTO exhibits(id, case_id, document_id, name, category, criterion_letter, label, position, page_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for i, cand := range candidates {
			position := base + i

			letter := ""
			if cand.criterionLetter != nil {
				letter = *cand.criterionLetter
			}

			category := cand.documentType
			if cand.criterionName != "" {
				category = cand.criterionName
			}

			pages := 0
			if cand.pageCount != nil {
				pages = *cand.pageCount
			}

			if _, err := tx.ExecContext(ctx, insert,
				uuid.New(),
				caseID,
				cand.documentID,
				displayName(cand.filename),
				category,
				letter,
				ordering.Number(position, style),
				position,
				pages,
			); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("exhibits built", "case", caseID, "created", len(candidates))
	return r.List(ctx, caseID)
}

// AutoOrder places exhibits into the case's visa template order and
// relabels them.
func (r *repo) AutoOrder(ctx context.Context, caseID uuid.UUID) ([]Exhibit, error) {
	c, err := r.cases.Find(ctx, caseID)
	if err != nil {
		return nil, err
	}

	exs, err := r.List(ctx, caseID)
	if err != nil {
		return nil, err
	}

	tmpl, _ := registry.Lookup(c.VisaType)
	assignment := ordering.Assign(orderingItems(exs), tmpl)

	result, err := r.applyOrder(ctx, c, exs, assignment.Order)
	if err != nil {
		return nil, err
	}

	r.logger.Info("exhibits auto-ordered", "case", caseID, "count", len(result))
	return result, nil
}

// Reorder applies an explicit permutation of the current exhibit positions.
func (r *repo) Reorder(ctx context.Context, caseID uuid.UUID, order []int) ([]Exhibit, error) {
	c, err := r.cases.Find(ctx, caseID)
	if err != nil {
		return nil, err
	}

	exs, err := r.List(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if !validOrder(order, len(exs)) {
		return nil, fmt.Errorf("%w: got %v for %d exhibits", ErrInvalidOrder, order, len(exs))
	}

	return r.applyOrder(ctx, c, exs, order)
}

// Arrange interprets a natural-language instruction against the current
// exhibit list. Unknown instructions leave the list untouched and report the
// interpreter's guidance.
func (r *repo) Arrange(ctx context.Context, caseID uuid.UUID, instruction string) (*ArrangeResponse, error) {
	c, err := r.cases.Find(ctx, caseID)
	if err != nil {
		return nil, err
	}

	exs, err := r.List(ctx, caseID)
	if err != nil {
		return nil, err
	}

	view := make([]arrange.Exhibit, len(exs))
	for i, e := range exs {
		view[i] = arrange.Exhibit{
			Name:            e.Name,
			CriterionLetter: e.CriterionLetter,
			PageCount:       e.PageCount,
		}
	}

	result := r.interpreter.Parse(ctx, instruction, view)

	if result.Action == arrange.ActionUnknown {
		return &ArrangeResponse{Result: result, Exhibits: exs}, nil
	}

	reordered, err := r.applyOrder(ctx, c, exs, result.NewOrder)
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"exhibits arranged",
		"case", caseID,
		"action", result.Action,
		"method", result.Method,
	)
	return &ArrangeResponse{Result: result, Exhibits: reordered}, nil
}

// Rename updates an exhibit's display name.
func (r *repo) Rename(ctx context.Context, id uuid.UUID, name string) (*Exhibit, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	q := `
		UPDATE exhibits
		SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, case_id, document_id, name, category, criterion_letter, label, position, page_count, created_at, updated_at`

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Exhibit, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, name}, scanExhibit)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &e, nil
}

// Renumber relabels every exhibit for the case's current numbering style
// without changing positions. Used after the style changes on the case.
func (r *repo) Renumber(ctx context.Context, caseID uuid.UUID) ([]Exhibit, error) {
	c, err := r.cases.Find(ctx, caseID)
	if err != nil {
		return nil, err
	}

	exs, err := r.List(ctx, caseID)
	if err != nil {
		return nil, err
	}

	identity := make([]int, len(exs))
	for i := range identity {
		identity[i] = i
	}

	return r.applyOrder(ctx, c, exs, identity)
}

// Validate reports whether the exhibit list claims enough distinct criteria
// for the case's visa type, plus which criteria remain unclaimed.
func (r *repo) Validate(ctx context.Context, caseID uuid.UUID) (*ValidationResponse, error) {
	c, err := r.cases.Find(ctx, caseID)
	if err != nil {
		return nil, err
	}

	exs, err := r.List(ctx, caseID)
	if err != nil {
		return nil, err
	}

	items := orderingItems(exs)
	tmpl, _ := registry.Lookup(c.VisaType)
	validation := ordering.ValidateCriteriaCount(items, tmpl)

	claimed := make(map[string]bool)
	for _, letter := range ordering.ClaimedCriteria(items) {
		claimed[letter] = true
	}

	var missing []registry.Criterion
	for _, criterion := range registry.Criteria(c.VisaType) {
		if !claimed[criterion.Letter] {
			missing = append(missing, criterion)
		}
	}

	return &ValidationResponse{Validation: validation, Missing: missing}, nil
}

// Delete removes an exhibit and renumbers the remainder.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM exhibits WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if _, err := r.Renumber(ctx, e.CaseID); err != nil {
		r.logger.Warn("renumber after delete failed", "case", e.CaseID, "error", err)
	}

	r.logger.Info("exhibit deleted", "id", id, "case", e.CaseID)
	return nil
}

// applyOrder persists a permutation: exhibit order[i] moves to position i
// and is relabeled for the case's numbering style.
func (r *repo) applyOrder(
	ctx context.Context,
	c *cases.Case,
	exs []Exhibit,
	order []int,
) ([]Exhibit, error) {
	if !validOrder(order, len(exs)) {
		return nil, fmt.Errorf("%w: got %v for %d exhibits", ErrInvalidOrder, order, len(exs))
	}

	style, err := ordering.ParseStyle(c.NumberingStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	update := "UPDATE exhibits SET position = $2, label = $3, updated_at = now() WHERE id = $1"

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for position, idx := range order {
			if _, err := tx.ExecContext(ctx, update,
				exs[idx].ID,
				position,
				ordering.Number(position, style),
			); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return r.List(ctx, c.ID)
}

func (r *repo) buildCandidates(ctx context.Context, caseID uuid.UUID) ([]buildCandidate, error) {
	rows, err := r.db.QueryContext(ctx, buildCandidatesQuery, caseID)
	if err != nil {
		return nil, fmt.Errorf("query build candidates: %w", err)
	}
	defer rows.Close()

	var candidates []buildCandidate
	for rows.Next() {
		var cand buildCandidate
		if err := rows.Scan(
			&cand.documentID,
			&cand.filename,
			&cand.pageCount,
			&cand.criterionLetter,
			&cand.criterionName,
			&cand.documentType,
		); err != nil {
			return nil, fmt.Errorf("scan build candidate: %w", err)
		}
		candidates = append(candidates, cand)
	}

	return candidates, rows.Err()
}

func orderingItems(exs []Exhibit) []ordering.Item {
	items := make([]ordering.Item, len(exs))
	for i, e := range exs {
		items[i] = ordering.Item{
			ID:              e.ID.String(),
			Name:            e.Name,
			Category:        e.Category,
			CriterionLetter: e.CriterionLetter,
			PageCount:       e.PageCount,
		}
	}
	return items
}

func validOrder(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
