package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder knows how to record engine API call measurements.
type Recorder interface {
	ObserveEngineOperation(operation string, result string, duration time.Duration)
}

// Noop is a recorder that discards all measurements.
const Noop = noop(false)

type noop bool

var _ Recorder = Noop

func (noop) ObserveEngineOperation(operation string, result string, duration time.Duration) {}

// PrometheusRecorder is a Prometheus implementation of Recorder.
type PrometheusRecorder struct {
	engineOpsTotal    *prometheus.CounterVec
	engineOpsDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder returns a new Prometheus recorder registered on the
// received registerer.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		engineOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nifictl",
			Subsystem: "engine_api",
			Name:      "operations_total",
			Help:      "Total number of engine API operations.",
		}, []string{"operation", "result"}),
		engineOpsDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nifictl",
			Subsystem: "engine_api",
			Name:      "operation_duration_seconds",
			Help:      "Duration of engine API operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(r.engineOpsTotal, r.engineOpsDuration)

	return r
}

var _ Recorder = &PrometheusRecorder{}

func (r *PrometheusRecorder) ObserveEngineOperation(operation string, result string, duration time.Duration) {
	r.engineOpsTotal.WithLabelValues(operation, result).Inc()
	r.engineOpsDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
