package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/postgres"
)

type Repository interface {
	Get(ctx context.Context, vn string) (*Visit, error)
	ListByCN(ctx context.Context, cn string) ([]Visit, error)
	Create(ctx context.Context, vn, cn string, in Input) (*Visit, error)
	Update(ctx context.Context, vn string, in Input) (*Visit, error)
	Delete(ctx context.Context, vn string) (bool, error)
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context, vn string) (*Visit, error) {
	var v Visit
	err := r.db.GetContext(ctx, &v, fmt.Sprintf(getVisitSQL, table), vn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("visit", vn)
	}
	if err != nil {
		return nil, fmt.Errorf("get visit: %w", err)
	}
	return &v, nil
}

func (r *repo) ListByCN(ctx context.Context, cn string) ([]Visit, error) {
	out := []Visit{}
	err := r.db.SelectContext(ctx, &out, fmt.Sprintf(listVisitsByCNSQL, table), cn)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return out, nil
}

func (r *repo) Create(ctx context.Context, vn, cn string, in Input) (*Visit, error) {
	cols, vals := in.fields()
	cols = append([]string{"vn", "cn"}, cols...)
	vals = append([]any{vn, cn}, vals...)

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = postgres.QuoteIdent(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "), visitColumns)

	var v Visit
	if err := r.db.GetContext(ctx, &v, q, vals...); err != nil {
		return nil, fmt.Errorf("create visit: %w", err)
	}
	return &v, nil
}

func (r *repo) Update(ctx context.Context, vn string, in Input) (*Visit, error) {
	cols, vals := in.fields()
	if len(cols) == 0 {
		return r.Get(ctx, vn)
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", postgres.QuoteIdent(c), i+1)
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE vn = $%d RETURNING %s",
		table, strings.Join(sets, ", "), len(cols)+1, visitColumns)

	var v Visit
	err := r.db.GetContext(ctx, &v, q, append(vals, vn)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("visit", vn)
	}
	if err != nil {
		return nil, fmt.Errorf("update visit: %w", err)
	}
	return &v, nil
}

func (r *repo) Delete(ctx context.Context, vn string) (bool, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(deleteVisitSQL, table), vn)
	if err != nil {
		return false, fmt.Errorf("delete visit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete visit: %w", err)
	}
	return n > 0, nil
}
