package dispatcher

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the dispatcher's Prometheus collectors.
type Metrics struct {
	Updates        *prometheus.CounterVec
	Replies        prometheus.Counter
	HandleDuration prometheus.Histogram
}

// NewMetrics creates and registers the dispatcher metrics. Pass
// prometheus.DefaultRegisterer for the usual process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelrep_updates_total",
				Help: "Inbound updates processed, by outcome",
			},
			[]string{"outcome"},
		),
		Replies: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "fuelrep_replies_total",
				Help: "Outbound replies delivered to the transport",
			},
		),
		HandleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "fuelrep_handle_duration_seconds",
				Help: "Duration of one update through the state machine",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Updates, m.Replies, m.HandleDuration)
	}
	return m
}

const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeIgnored = "ignored"
)
