package admin

// -------------------------
// Schema DTOs
// -------------------------

type SchemaResponse struct {
	Schema string `json:"schema"`
	Script string `json:"script"`
}

type AppointmentColumnsResponse struct {
	Table        string   `json:"table"`
	Columns      []string `json:"columns"`
	HasVisitLink bool     `json:"hasVisitLink"`
}

// -------------------------
// Cache DTOs
// -------------------------

type CacheStats struct {
	Name    string  `json:"name"`
	Entries int     `json:"entries"`
	TTL     float64 `json:"ttlSeconds"`
}

type CacheFlushResponse struct {
	Success bool         `json:"success"`
	Flushed []CacheStats `json:"flushed"`
}
