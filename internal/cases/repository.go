package cases

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/caseprep/docket/internal/ordering"
	"github.com/caseprep/docket/internal/registry"
	"github.com/caseprep/docket/pkg/pagination"
	"github.com/caseprep/docket/pkg/query"
	"github.com/caseprep/docket/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a case repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "cases"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Case], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Beneficiary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCase)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Case, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Case, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}

	visaType := cmd.VisaType
	if visaType == "" {
		visaType = registry.DefaultVisaType
	}
	if _, exact := registry.Lookup(visaType); !exact {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVisaType, visaType)
	}

	style := cmd.NumberingStyle
	if style == "" {
		style = string(ordering.StyleLetters)
	}
	if _, err := ordering.ParseStyle(style); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStyle, style)
	}

	q := `
		INSERT INTO cases(id, title, beneficiary, petitioner, field_of_endeavor, visa_type, numbering_style)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, beneficiary, petitioner, field_of_endeavor, visa_type, numbering_style, status, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.Title,
		cmd.Beneficiary,
		cmd.Petitioner,
		cmd.FieldOfEndeavor,
		visaType,
		style,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanCase)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case created", "id", c.ID, "visa_type", c.VisaType)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Case, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		if strings.TrimSpace(*cmd.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidRequest)
		}
		current.Title = *cmd.Title
	}
	if cmd.Beneficiary != nil {
		current.Beneficiary = *cmd.Beneficiary
	}
	if cmd.Petitioner != nil {
		current.Petitioner = *cmd.Petitioner
	}
	if cmd.FieldOfEndeavor != nil {
		current.FieldOfEndeavor = *cmd.FieldOfEndeavor
	}
	if cmd.VisaType != nil {
		if _, exact := registry.Lookup(*cmd.VisaType); !exact {
			return nil, fmt.Errorf("%w: %s", ErrInvalidVisaType, *cmd.VisaType)
		}
		current.VisaType = *cmd.VisaType
	}
	if cmd.NumberingStyle != nil {
		if _, err := ordering.ParseStyle(*cmd.NumberingStyle); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStyle, *cmd.NumberingStyle)
		}
		current.NumberingStyle = *cmd.NumberingStyle
	}

	q := `
		UPDATE cases
		SET title = $2, beneficiary = $3, petitioner = $4, field_of_endeavor = $5,
			visa_type = $6, numbering_style = $7, updated_at = now()
		WHERE id = $1
		RETURNING id, title, beneficiary, petitioner, field_of_endeavor, visa_type, numbering_style, status, created_at, updated_at`

	updateArgs := []any{
		id,
		current.Title,
		current.Beneficiary,
		current.Petitioner,
		current.FieldOfEndeavor,
		current.VisaType,
		current.NumberingStyle,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		return repository.QueryOne(ctx, tx, q, updateArgs, scanCase)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case updated", "id", c.ID)
	return &c, nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Case, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, status)
	}

	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, status)
	}

	q := `
		UPDATE cases
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, title, beneficiary, petitioner, field_of_endeavor, visa_type, numbering_style, status, created_at, updated_at`

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, status}, scanCase)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case status changed", "id", id, "status", status)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM cases WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case deleted", "id", id)
	return nil
}
