package admin

import (
	"context"

	"bjh.co.th/clinicops/internal/appointment"
	"bjh.co.th/clinicops/internal/postgres"
	"bjh.co.th/clinicops/internal/respcache"
)

type Service struct {
	appointments *appointment.Service
	caches       []*respcache.Cache
}

func NewService(a *appointment.Service, caches ...*respcache.Cache) *Service {
	return &Service{
		appointments: a,
		caches:       caches,
	}
}

// -------------------------
// Schema
// -------------------------

func (s *Service) GetSchema() SchemaResponse {
	return SchemaResponse{
		Schema: postgres.Schema,
		Script: postgres.SchemaScript(),
	}
}

func (s *Service) GetAppointmentColumns(ctx context.Context) AppointmentColumnsResponse {
	return AppointmentColumnsResponse{
		Table:        postgres.Table("b_appointment"),
		Columns:      s.appointments.Columns(ctx),
		HasVisitLink: s.appointments.HasVisitLink(ctx),
	}
}

// -------------------------
// Response caches
// -------------------------

func (s *Service) GetCacheStats() []CacheStats {
	out := make([]CacheStats, 0, len(s.caches))
	for _, c := range s.caches {
		out = append(out, stats(c))
	}
	return out
}

// FlushCaches empties every response cache and reports what was dropped.
func (s *Service) FlushCaches() []CacheStats {
	out := s.GetCacheStats()
	for _, c := range s.caches {
		c.Flush()
	}
	return out
}

func stats(c *respcache.Cache) CacheStats {
	return CacheStats{
		Name:    c.Name(),
		Entries: c.Len(),
		TTL:     c.TTL().Seconds(),
	}
}
