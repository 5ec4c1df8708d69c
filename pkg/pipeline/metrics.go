package pipeline

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "addlabels"

// Label outcome values of the labels counter.
const (
	OutcomeNew      = "new"
	OutcomeModified = "modified"
	OutcomeRetained = "retained"
	OutcomeNone     = "none"
)

// Metrics holds the run counters.
type Metrics struct {
	subjects prometheus.Counter
	labels   *prometheus.CounterVec
	files    *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		subjects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "subjects_total",
			Help:      "Total number of subjects visited",
		}),

		labels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "labels_total",
			Help:      "Subjects by labelling outcome",
		}, []string{"outcome"}),

		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_total",
			Help:      "Input files by processing status",
		}, []string{"status"}),
	}

	for _, collector := range []prometheus.Collector{m.subjects, m.labels, m.files} {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	// Export every series, including the ones that stay at zero.
	for _, outcome := range []string{OutcomeNew, OutcomeModified, OutcomeRetained, OutcomeNone} {
		m.labels.WithLabelValues(outcome)
	}
	for _, status := range []FileStatus{StatusOK, StatusParseError, StatusWriteError} {
		m.files.WithLabelValues(string(status))
	}

	return m, nil
}

// Observe adds one file's outcome to the counters.
func (m *Metrics) Observe(file FileReport) {
	if m == nil {
		return
	}

	m.subjects.Add(float64(file.Stats.Subjects))
	m.labels.WithLabelValues(OutcomeNew).Add(float64(file.Stats.NewLabels))
	m.labels.WithLabelValues(OutcomeModified).Add(float64(file.Stats.ModifiedLabels))
	m.labels.WithLabelValues(OutcomeRetained).Add(float64(file.Stats.RetainedLabels))
	m.labels.WithLabelValues(OutcomeNone).Add(float64(file.Stats.NoLabelMade))
	m.files.WithLabelValues(string(file.Status)).Inc()
}
