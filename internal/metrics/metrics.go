package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values for the days counter.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the collectors for one run and the registry they are registered in
type Metrics struct {
	registry *prometheus.Registry

	days          *prometheus.CounterVec
	eventsFound   prometheus.Counter
	eventsWritten prometheus.Gauge
	fetchDur      prometheus.Histogram
	lastSuccessTS prometheus.Gauge
}

// New creates the run collectors and registers them with a fresh registry
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.days = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cga_events",
		Name:      "days_total",
		Help:      "Number of days fetched by outcome",
	}, []string{"status"})
	m.eventsFound = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cga_events",
		Name:      "rows_found_total",
		Help:      "Event rows extracted before deduplication",
	})
	m.eventsWritten = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cga_events",
		Name:      "events_written",
		Help:      "Events in the last written calendar",
	})
	m.fetchDur = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cga_events",
		Name:      "day_duration_seconds",
		Help:      "Time spent fetching and parsing one day",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20},
	})
	m.lastSuccessTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cga_events",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful calendar write",
	})

	m.registry.MustRegister(m.days, m.eventsFound, m.eventsWritten, m.fetchDur, m.lastSuccessTS)

	// Pre-create both outcomes so a clean run still exports an error series of 0.
	m.days.WithLabelValues(StatusOK)
	m.days.WithLabelValues(StatusError)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveDay records one day's outcome, rows found and duration.
func (m *Metrics) ObserveDay(err error, found int, took time.Duration) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.days.WithLabelValues(status).Inc()
	m.eventsFound.Add(float64(found))
	m.fetchDur.Observe(took.Seconds())
}

// ObserveWrite records a successful calendar write.
func (m *Metrics) ObserveWrite(count int, at time.Time) {
	m.eventsWritten.Set(float64(count))
	m.lastSuccessTS.Set(float64(at.Unix()))
}

// WriteTextfile writes every metric to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
