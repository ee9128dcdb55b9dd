package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Poll outcomes.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the monitor's Prometheus instruments.
type Metrics struct {
	Polls        *prometheus.CounterVec
	StageChanges *prometheus.CounterVec
	CurrentStage *prometheus.GaugeVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esp",
			Subsystem: "watcher",
			Name:      "polls_total",
			Help:      "Status polls by result.",
		}, []string{"result"}),
		StageChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esp",
			Subsystem: "watcher",
			Name:      "stage_changes_total",
			Help:      "Observed stage changes by region.",
		}, []string{"region"}),
		CurrentStage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "esp",
			Name:      "current_stage",
			Help:      "Last observed load-shedding stage by region.",
		}, []string{"region"}),
	}
	reg.MustRegister(m.Polls, m.StageChanges, m.CurrentStage)
	return m
}

// API counts upstream ESP calls made by the HTTP API.
type API struct {
	Upstream *prometheus.CounterVec
}

// NewAPI creates the API instruments and registers them with reg.
func NewAPI(reg prometheus.Registerer) *API {
	m := &API{
		Upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esp",
			Subsystem: "api",
			Name:      "upstream_requests_total",
			Help:      "Upstream ESP calls by endpoint and result.",
		}, []string{"endpoint", "result"}),
	}
	reg.MustRegister(m.Upstream)
	return m
}
