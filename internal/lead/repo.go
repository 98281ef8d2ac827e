package lead

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

// Record is one lead row keyed by column name.
type Record map[string]any

type Repository interface {
	All(ctx context.Context) (columns []string, rows [][]any, err error)
	Insert(ctx context.Context, fields []string, values []any) (Record, error)
	Update(ctx context.Context, id int64, fields []string, values []any) (Record, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Calendar(ctx context.Context, q string, args []any) ([]Record, error)
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) All(ctx context.Context) ([]string, [][]any, error) {
	rows, err := r.db.QueryxContext(ctx, fmt.Sprintf(listAllLeadsSQL, table))
	if err != nil {
		return nil, nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("list leads: %w", err)
	}

	out := [][]any{}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, nil, fmt.Errorf("list leads: %w", err)
		}
		for i := range vals {
			vals[i] = jsonValue(vals[i])
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("list leads: %w", err)
	}
	return cols, out, nil
}

func (r *repo) Insert(ctx context.Context, fields []string, values []any) (Record, error) {
	cols := make([]string, 0, len(fields)+2)
	placeholders := make([]string, 0, len(fields)+2)
	for i, f := range fields {
		cols = append(cols, postgres.QuoteIdent(f))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	cols = append(cols, "created_at", "updated_at")
	placeholders = append(placeholders, "NOW()", "NOW()")

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	rec, err := r.queryOne(ctx, q, values...)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return rec, nil
}

func (r *repo) Update(ctx context.Context, id int64, fields []string, values []any) (Record, error) {
	sets := make([]string, 0, len(fields)+1)
	for i, f := range fields {
		sets = append(sets, fmt.Sprintf("%s = $%d", postgres.QuoteIdent(f), i+1))
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		table, strings.Join(sets, ", "), len(fields)+1)

	rec, err := r.queryOne(ctx, q, append(values, id)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("lead", fmt.Sprint(id))
	}
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return rec, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(deleteLeadSQL, table), id)
	if err != nil {
		return false, fmt.Errorf("delete lead: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete lead: %w", err)
	}
	return n > 0, nil
}

func (r *repo) Calendar(ctx context.Context, q string, args []any) ([]Record, error) {
	rows, err := r.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("lead calendar: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec := Record{}
		if err := rows.MapScan(rec); err != nil {
			return nil, fmt.Errorf("lead calendar: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lead calendar: %w", err)
	}
	return out, nil
}

func (r *repo) queryOne(ctx context.Context, q string, args ...any) (Record, error) {
	rec := Record{}
	if err := r.db.QueryRowxContext(ctx, q, args...).MapScan(rec); err != nil {
		return nil, err
	}
	for k, v := range rec {
		rec[k] = jsonValue(v)
	}
	return rec, nil
}

// jsonValue converts driver byte slices to text so they encode as strings.
func jsonValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
