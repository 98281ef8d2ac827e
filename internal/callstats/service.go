// Package callstats reports contact-centre call volumes and records calls.
package callstats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"bjh.co.th/clinicops/internal/apperr"
	"bjh.co.th/clinicops/internal/phone"
	"bjh.co.th/clinicops/internal/postgres"
)

const (
	defaultCallType   = "outgoing"
	defaultCallStatus = "answered"
)

type Service struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithClock sets the clock used to resolve "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *sqlx.DB, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{db: db, logger: logger, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Today is the current UTC calendar date as YYYY-MM-DD.
func (s *Service) Today() string {
	return s.now().UTC().Format(time.DateOnly)
}

// Matrix returns per-slot, per-agent call figures for date (today when
// empty). Slots or agents without data are zero-filled.
func (s *Service) Matrix(ctx context.Context, date string) (*Matrix, error) {
	if date == "" {
		date = s.Today()
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, apperr.Validation("invalid date %q, expected YYYY-MM-DD", date)
	}

	stats := []Stat{}
	q := fmt.Sprintf(hourlyStatsSQL, postgres.Table("hourly_call_stats"), postgres.Table("agents"))
	if err := s.db.SelectContext(ctx, &stats, q, date); err != nil {
		return nil, fmt.Errorf("get hourly call stats: %w", err)
	}
	return buildMatrix(date, stats), nil
}

func buildMatrix(date string, stats []Stat) *Matrix {
	type key struct{ slot, agent string }
	bySlot := make(map[key]Stat, len(stats))
	for _, st := range stats {
		if _, dup := bySlot[key{st.HourSlot, st.AgentID}]; !dup {
			bySlot[key{st.HourSlot, st.AgentID}] = st
		}
	}

	m := &Matrix{
		Date:      date,
		TableData: make([]Row, 0, len(HourSlots)),
		Totals:    Row{HourSlot: TotalsLabel, Agents: make(map[string]Cell, len(AgentIDs))},
		RawData:   stats,
	}
	for _, slot := range HourSlots {
		row := Row{HourSlot: slot, Agents: make(map[string]Cell, len(AgentIDs))}
		for _, id := range AgentIDs {
			st := bySlot[key{slot, id}]
			name := st.AgentName
			c := Cell{AgentName: &name}
			c.add(st)
			row.Agents[id] = c
		}
		m.TableData = append(m.TableData, row)
	}

	// totals cover every row for the agent, including slots outside the grid
	for _, id := range AgentIDs {
		var c Cell
		for _, st := range stats {
			if st.AgentID == id {
				c.add(st)
			}
		}
		m.Totals.Agents[id] = c
	}
	return m
}

// LogCall stores a call. Call type and status default to outgoing and
// answered; a parseable phone number is stored in E.164 form.
func (s *Service) LogCall(ctx context.Context, in CallLogInput) (*CallLog, error) {
	if in.AgentID == "" || strings.TrimSpace(in.StartTime) == "" {
		return nil, apperr.Validation("agent_id and start_time are required")
	}
	if in.CallType == "" {
		in.CallType = defaultCallType
	}
	if in.CallStatus == "" {
		in.CallStatus = defaultCallStatus
	}
	if in.CustomerPhone != nil {
		p := phone.Normalize(*in.CustomerPhone)
		in.CustomerPhone = &p
	}

	var out CallLog
	err := s.db.GetContext(ctx, &out, fmt.Sprintf(insertCallLogSQL, postgres.Table("call_logs")),
		string(in.AgentID),
		in.CustomerPhone,
		in.CustomerName,
		in.CallType,
		in.CallStatus,
		in.StartTime,
		in.EndTime,
		in.DurationSeconds,
		in.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("save call log: %w", err)
	}

	s.logger.Info("call logged",
		zap.Int64("id", out.ID),
		zap.String("agent_id", out.AgentID),
		zap.String("call_type", out.CallType),
	)
	return &out, nil
}

// PhoneCountToday counts distinct customers tagged "phone" today.
func (s *Service) PhoneCountToday(ctx context.Context) (int, string, error) {
	today := s.Today()
	var n int
	q := fmt.Sprintf(phoneCountTodaySQL, postgres.Table("fb_customer_tags"), postgres.Table("fb_tags"))
	if err := s.db.GetContext(ctx, &n, q, today); err != nil {
		return 0, today, fmt.Errorf("count phone tags: %w", err)
	}
	return n, today, nil
}
