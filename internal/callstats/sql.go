package callstats

// Templates take quoted table names.
const hourlyStatsSQL = `
SELECT s.hour_slot, s.agent_id, s.outgoing_calls, s.incoming_calls, s.successful_calls,
	s.total_duration_seconds, COALESCE(a.agent_name, '') AS agent_name
FROM %s AS s
LEFT JOIN %s AS a ON a.agent_id = s.agent_id
WHERE s.date = $1
ORDER BY s.hour_slot ASC
`

const insertCallLogSQL = `
INSERT INTO %s (
	agent_id, customer_phone, customer_name, call_type, call_status,
	start_time, end_time, duration_seconds, notes
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, agent_id, customer_phone, customer_name, call_type, call_status,
	start_time, end_time, duration_seconds, notes, created_at
`

const phoneCountTodaySQL = `
SELECT COUNT(DISTINCT ct.customer_id)
FROM %s AS ct
JOIN %s AS t ON t.id = ct.tag_id
WHERE t.name = 'phone'
	AND ct.assigned_at::date = $1::date
`
