package lead

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/apperr"
)

// Actions accepted by Apply.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// managed columns are set by the database and ignored in client payloads.
var managed = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// Sheet is the spreadsheet-style view of every lead: a header row of Thai
// labels followed by one row per lead, newest first.
type Sheet struct {
	Rows         [][]any
	TotalRecords int
}

// Result is the outcome of Apply.
type Result struct {
	Message string
	Data    Record
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sqlx.DB, logger *zap.Logger) *Service {
	return &Service{
		repo:   New(db),
		logger: logger,
	}
}

func (s *Service) Sheet(ctx context.Context) (*Sheet, error) {
	cols, rows, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = ThaiLabel(c)
	}
	return &Sheet{
		Rows:         append([][]any{header}, rows...),
		TotalRecords: len(rows),
	}, nil
}

// Apply runs a create, update or delete described by action against the lead
// in data. Keys in data may be Thai labels or column names.
func (s *Service) Apply(ctx context.Context, action string, data map[string]any) (*Result, error) {
	switch action {
	case ActionCreate:
		fields, values, err := translate(data)
		if err != nil {
			return nil, err
		}
		rec, err := s.repo.Insert(ctx, fields, values)
		if err != nil {
			return nil, err
		}
		return &Result{Message: "Customer created successfully", Data: rec}, nil

	case ActionUpdate:
		id, err := leadID(data)
		if err != nil {
			return nil, err
		}
		fields, values, err := translate(data)
		if err != nil {
			return nil, err
		}
		rec, err := s.repo.Update(ctx, id, fields, values)
		if err != nil {
			return nil, err
		}
		return &Result{Message: "Customer updated successfully", Data: rec}, nil

	case ActionDelete:
		id, err := leadID(data)
		if err != nil {
			return nil, err
		}
		ok, err := s.repo.Delete(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.NotFound("lead", strconv.FormatInt(id, 10))
		}
		return &Result{Message: "Customer deleted successfully"}, nil
	}
	return nil, apperr.Validation("Invalid action")
}

// Calendar returns leads booked for a consult or surgery matching f, ordered
// by the relevant date and then appointment time.
func (s *Service) Calendar(ctx context.Context, f CalendarFilter) ([]CalendarEntry, error) {
	q, args, err := BuildCalendarQuery(f)
	if err != nil {
		return nil, err
	}
	recs, err := s.repo.Calendar(ctx, q, args)
	if err != nil {
		return nil, err
	}

	out := make([]CalendarEntry, len(recs))
	for i, rec := range recs {
		out[i] = toCalendarEntry(rec)
	}
	s.logger.Debug("lead calendar", zap.Int("count", len(out)), zap.Any("filters", f.Echo()))
	return out, nil
}

// translate maps payload keys to columns and returns them sorted by column
// name so the generated SQL is stable.
func translate(data map[string]any) ([]string, []any, error) {
	byColumn := make(map[string]any, len(data))
	for k, v := range data {
		col, ok := ResolveColumn(k)
		if !ok {
			return nil, nil, apperr.Validation("unknown field %q", k)
		}
		if managed[col] {
			continue
		}
		switch v.(type) {
		case nil, string, float64, bool, json.Number:
		default:
			return nil, nil, apperr.Validation("field %q must be a scalar value", k)
		}
		byColumn[col] = v
	}

	fields := make([]string, 0, len(byColumn))
	for c := range byColumn {
		fields = append(fields, c)
	}
	sort.Strings(fields)

	values := make([]any, len(fields))
	for i, c := range fields {
		values[i] = byColumn[c]
	}
	return fields, values, nil
}

// leadID reads the integer id from data, accepting JSON numbers and numeric
// strings.
func leadID(data map[string]any) (int64, error) {
	v, ok := data["id"]
	if !ok || v == nil {
		return 0, apperr.Validation("id is required")
	}
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && x > 0 {
			return int64(x), nil
		}
	case json.Number:
		if n, err := x.Int64(); err == nil && n > 0 {
			return n, nil
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, apperr.Validation("invalid id %v", v)
}
