package respcache

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts cache lookups by outcome.
type Metrics struct {
	lookups *prometheus.CounterVec
}

// NewMetrics registers the cache counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicops",
			Subsystem: "response_cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups by cache name and outcome.",
		}, []string{"cache", "status"}),
	}
	reg.MustRegister(m.lookups)
	return m
}

func (m *Metrics) observe(cache string, s Status) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(cache, string(s)).Inc()
}

// Lookups returns the counter for one cache and outcome.
func (m *Metrics) Lookups(cache string, s Status) prometheus.Counter {
	return m.lookups.WithLabelValues(cache, string(s))
}
