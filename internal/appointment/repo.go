package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/postgres"
)

type Repository interface {
	Columns(ctx context.Context) []string
	List(ctx context.Context, f Filter) ([]Appointment, error)
	ListByCN(ctx context.Context, cn string) ([]Appointment, error)
	GetByCode(ctx context.Context, code string) (*Appointment, error)
	Insert(ctx context.Context, p Payload) (*Appointment, error)
	Update(ctx context.Context, code string, p Payload) (*Appointment, error)
	SetVN(ctx context.Context, code, vn string) error
	Delete(ctx context.Context, code string) (bool, error)
}

type repo struct {
	db      *sqlx.DB
	logger  *zap.Logger
	columns columnCache
}

func New(db *sqlx.DB, logger *zap.Logger) Repository {
	return &repo{db: db, logger: logger}
}

func (r *repo) Columns(ctx context.Context) []string {
	return r.columns.get(ctx, r.db, r.logger)
}

func (r *repo) List(ctx context.Context, f Filter) ([]Appointment, error) {
	q, args := BuildListQuery(r.Columns(ctx), f)
	out, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}

func (r *repo) ListByCN(ctx context.Context, cn string) ([]Appointment, error) {
	q := fmt.Sprintf(listByCNSQL, selectList(r.Columns(ctx)), table)
	out, err := r.query(ctx, q, cn)
	if err != nil {
		return nil, fmt.Errorf("list appointments for customer: %w", err)
	}
	return out, nil
}

func (r *repo) GetByCode(ctx context.Context, code string) (*Appointment, error) {
	q := fmt.Sprintf(getByCodeSQL, selectList(r.Columns(ctx)), table)
	a, err := r.queryOne(ctx, q, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("appointment", code)
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *repo) Insert(ctx context.Context, p Payload) (*Appointment, error) {
	cols := r.Columns(ctx)
	fields, values := p.entries(cols)

	placeholders := make([]string, len(fields))
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = postgres.QuoteIdent(f)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "), selectList(cols))

	a, err := r.queryOne(ctx, q, values...)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return a, nil
}

func (r *repo) Update(ctx context.Context, code string, p Payload) (*Appointment, error) {
	cols := r.Columns(ctx)
	fields, values := p.entries(cols)
	if len(fields) == 0 {
		return r.GetByCode(ctx, code)
	}

	sets := make([]string, len(fields))
	for i, f := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", postgres.QuoteIdent(f), i+1)
	}
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE "appoint_code" = $%d RETURNING %s`,
		table, strings.Join(sets, ", "), len(fields)+1, selectList(cols))

	a, err := r.queryOne(ctx, q, append(values, code)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("appointment", code)
	}
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

func (r *repo) SetVN(ctx context.Context, code, vn string) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(linkVisitSQL, table), vn, code)
	if err != nil {
		return fmt.Errorf("link visit to appointment: %w", err)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, code string) (bool, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(deleteByCodeSQL, table), code)
	if err != nil {
		return false, fmt.Errorf("delete appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete appointment: %w", err)
	}
	return n > 0, nil
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]Appointment, error) {
	rows, err := r.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Appointment{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		out = append(out, Normalize(row))
	}
	return out, rows.Err()
}

func (r *repo) queryOne(ctx context.Context, q string, args ...any) (*Appointment, error) {
	row := map[string]any{}
	if err := r.db.QueryRowxContext(ctx, q, args...).MapScan(row); err != nil {
		return nil, err
	}
	a := Normalize(row)
	return &a, nil
}

// entries returns the payload's non-null values whose column exists, in
// column order so the generated SQL is stable.
func (p Payload) entries(cols []string) ([]string, []any) {
	var (
		fields []string
		values []any
	)
	for _, c := range cols {
		v, ok := p[c]
		if !ok || v == nil {
			continue
		}
		fields = append(fields, c)
		values = append(values, v)
	}
	return fields, values
}
