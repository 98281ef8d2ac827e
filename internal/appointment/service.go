package appointment

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/apperr"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sqlx.DB, logger *zap.Logger) *Service {
	return &Service{
		repo:   New(db, logger),
		logger: logger,
	}
}

// Columns returns the select list in use, probing the schema on first call.
func (s *Service) Columns(ctx context.Context) []string {
	return s.repo.Columns(ctx)
}

// HasVisitLink reports whether the deployed table carries the vn column.
func (s *Service) HasVisitLink(ctx context.Context) bool {
	return hasColumn(s.repo.Columns(ctx), "vn")
}

func (s *Service) List(ctx context.Context, f Filter) ([]Appointment, error) {
	return s.repo.List(ctx, f)
}

// ListByCN returns a customer's appointments, newest first. A blank customer
// code matches nothing.
func (s *Service) ListByCN(ctx context.Context, cn string) ([]Appointment, error) {
	if strings.TrimSpace(cn) == "" {
		return []Appointment{}, nil
	}
	return s.repo.ListByCN(ctx, cn)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Appointment, error) {
	if code == "" {
		return nil, apperr.Validation("appoint_code is required")
	}
	return s.repo.GetByCode(ctx, code)
}

// CreateForCustomer inserts an appointment owned by customer cn. The
// payload's code is always replaced by cn.
func (s *Service) CreateForCustomer(ctx context.Context, cn string, p Payload) (*Appointment, error) {
	if strings.TrimSpace(cn) == "" {
		return nil, apperr.Validation("cn is required")
	}
	if err := checkScalars(p); err != nil {
		return nil, err
	}
	code, _ := p["appoint_code"].(string)
	if strings.TrimSpace(code) == "" {
		return nil, apperr.Validation("appoint_code is required")
	}

	values := make(Payload, len(p)+1)
	for k, v := range p {
		values[k] = v
	}
	values["code"] = cn

	return s.repo.Insert(ctx, values)
}

// UpdateByCode applies the non-null payload fields. A payload with nothing
// to change returns the current record.
func (s *Service) UpdateByCode(ctx context.Context, code string, p Payload) (*Appointment, error) {
	if code == "" {
		return nil, apperr.Validation("appoint_code is required")
	}
	if err := checkScalars(p); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, code, p)
}

// LinkVisit records vn on the appointment. It does nothing when either
// value is empty or the table has no vn column.
func (s *Service) LinkVisit(ctx context.Context, code, vn string) error {
	if code == "" || vn == "" {
		return nil
	}
	if !s.HasVisitLink(ctx) {
		s.logger.Warn(`attempted to update column "vn" on b_appointment, but the column is unavailable`,
			zap.String("appoint_code", code),
			zap.String("vn", vn),
		)
		return nil
	}
	return s.repo.SetVN(ctx, code, vn)
}

func (s *Service) DeleteByCode(ctx context.Context, code string) error {
	if code == "" {
		return apperr.Validation("appoint_code is required")
	}
	ok, err := s.repo.Delete(ctx, code)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("appointment", code)
	}
	return nil
}

// checkScalars rejects nested JSON values, which have no column type.
func checkScalars(p Payload) error {
	for k, v := range p {
		switch v.(type) {
		case nil, string, float64, int, int64, bool:
		default:
			return apperr.Validation("field %q must be a scalar value", k)
		}
	}
	return nil
}
