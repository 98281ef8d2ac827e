package callstats

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// HourSlots and AgentIDs fix the matrix layout.
var (
	HourSlots = []string{"11-12", "12-13", "13-14", "14-15", "15-16", "16-17", "17-18", "18-19"}
	AgentIDs  = []string{"101", "102", "103", "104", "105", "106", "107", "108"}
)

// TotalsLabel is the hour_slot of the totals row.
const TotalsLabel = "รวม"

// Stat is one hourly_call_stats row joined with the agent name.
type Stat struct {
	HourSlot             string `db:"hour_slot" json:"hour_slot"`
	AgentID              string `db:"agent_id" json:"agent_id"`
	OutgoingCalls        int    `db:"outgoing_calls" json:"outgoing_calls"`
	IncomingCalls        int    `db:"incoming_calls" json:"incoming_calls"`
	SuccessfulCalls      int    `db:"successful_calls" json:"successful_calls"`
	TotalDurationSeconds int    `db:"total_duration_seconds" json:"total_duration_seconds"`
	AgentName            string `db:"agent_name" json:"agent_name"`
}

// Cell is one agent's figures in a row. Totals carry no agent name.
type Cell struct {
	OutgoingCalls        int     `json:"outgoing_calls"`
	IncomingCalls        int     `json:"incoming_calls"`
	SuccessfulCalls      int     `json:"successful_calls"`
	TotalDurationSeconds int     `json:"total_duration_seconds"`
	AgentName            *string `json:"agent_name,omitempty"`
}

func (c *Cell) add(s Stat) {
	c.OutgoingCalls += s.OutgoingCalls
	c.IncomingCalls += s.IncomingCalls
	c.SuccessfulCalls += s.SuccessfulCalls
	c.TotalDurationSeconds += s.TotalDurationSeconds
}

// Row is one hour slot (or the totals row) with a cell per agent. It encodes
// flat, as {"hour_slot": ..., "agent_101": {...}, ...}.
type Row struct {
	HourSlot string
	Agents   map[string]Cell
}

func (r Row) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Agents)+1)
	out["hour_slot"] = r.HourSlot
	for id, c := range r.Agents {
		out["agent_"+id] = c
	}
	return json.Marshal(out)
}

type Matrix struct {
	Date      string
	TableData []Row
	Totals    Row
	RawData   []Stat
}

// AgentID accepts either a JSON string or number.
type AgentID string

func (a *AgentID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = AgentID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = AgentID(n.String())
	return nil
}

// CallLogInput is a call to record. AgentID and StartTime are required.
type CallLogInput struct {
	AgentID         AgentID `json:"agent_id"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerName    *string `json:"customer_name"`
	CallType        string  `json:"call_type"`
	CallStatus      string  `json:"call_status"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time"`
	DurationSeconds *int    `json:"duration_seconds"`
	Notes           *string `json:"notes"`
}

type CallLog struct {
	ID              int64      `db:"id" json:"id"`
	AgentID         string     `db:"agent_id" json:"agent_id"`
	CustomerPhone   *string    `db:"customer_phone" json:"customer_phone"`
	CustomerName    *string    `db:"customer_name" json:"customer_name"`
	CallType        string     `db:"call_type" json:"call_type"`
	CallStatus      string     `db:"call_status" json:"call_status"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	EndTime         *time.Time `db:"end_time" json:"end_time"`
	DurationSeconds *int       `db:"duration_seconds" json:"duration_seconds"`
	Notes           *string    `db:"notes" json:"notes"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
