package visit

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/apperr"
)

// AppointmentLinker records a visit number on an appointment.
type AppointmentLinker interface {
	LinkVisit(ctx context.Context, appointCode, vn string) error
}

type Service struct {
	repo   Repository
	linker AppointmentLinker
	logger *zap.Logger
	newVN  func() string
}

func NewService(db *sqlx.DB, linker AppointmentLinker, logger *zap.Logger) *Service {
	return &Service{
		repo:   New(db),
		linker: linker,
		logger: logger,
		newVN:  uuid.NewString,
	}
}

func (s *Service) Get(ctx context.Context, vn string) (*Visit, error) {
	if vn == "" {
		return nil, apperr.Validation("vn is required")
	}
	return s.repo.Get(ctx, vn)
}

func (s *Service) ListByCN(ctx context.Context, cn string) ([]Visit, error) {
	if strings.TrimSpace(cn) == "" {
		return []Visit{}, nil
	}
	return s.repo.ListByCN(ctx, cn)
}

// Create stores a visit for customer cn under a freshly generated visit
// number. When in names an appointment, the appointment is linked to the new
// visit; a failed link is logged and does not fail the create.
func (s *Service) Create(ctx context.Context, cn string, in Input) (*Visit, error) {
	if strings.TrimSpace(cn) == "" {
		return nil, apperr.Validation("cn is required to create a visit")
	}
	if in.Status == nil || *in.Status == "" {
		status := defaultStatus
		in.Status = &status
	}

	v, err := s.repo.Create(ctx, s.newVN(), cn, in)
	if err != nil {
		return nil, err
	}

	if in.AppointCode != nil && *in.AppointCode != "" && s.linker != nil {
		if err := s.linker.LinkVisit(ctx, *in.AppointCode, v.VN); err != nil {
			s.logger.Warn("visit created but appointment link failed",
				zap.String("vn", v.VN),
				zap.String("appoint_code", *in.AppointCode),
				zap.Error(err),
			)
		}
	}
	return v, nil
}

// Update merges the provided fields into the visit.
func (s *Service) Update(ctx context.Context, vn string, in Input) (*Visit, error) {
	if vn == "" {
		return nil, apperr.Validation("vn is required")
	}
	in.AppointCode = nil
	return s.repo.Update(ctx, vn, in)
}

func (s *Service) Delete(ctx context.Context, vn string) error {
	if vn == "" {
		return apperr.Validation("vn is required")
	}
	ok, err := s.repo.Delete(ctx, vn)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("visit", vn)
	}
	return nil
}
